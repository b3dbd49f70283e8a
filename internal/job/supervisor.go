package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/sniperz/shorts-downloader/internal/backend"
	"github.com/sniperz/shorts-downloader/internal/event"
	"github.com/sniperz/shorts-downloader/internal/model"
	"github.com/sniperz/shorts-downloader/internal/store"
)

var (
	ErrAlreadyActive = errors.New("job already active")
	ErrNotActive     = errors.New("job not active")
	ErrShuttingDown  = errors.New("supervisor shutting down")
	ErrUnknownItem   = errors.New("unknown item")
)

// Default supervisor options
const (
	DefaultFetchWorkers = 4
	DefaultFetchTimeout = 5 * time.Second
	DefaultEventBuffer  = 256
)

// Handle identifies one running job instance. The supervisor is the only
// writer of its liveness; callers hold it to correlate terminal events.
type Handle struct {
	ID     string        // unique per run
	Kind   model.JobKind // Extraction, Acquisition or Fetch
	ItemID int           // auxiliary key for fetch jobs, -1 otherwise

	token *Token
	done  bool // guarded by the supervisor mutex
}

func newHandle(kind model.JobKind, itemID int) *Handle {
	return &Handle{
		ID:     uuid.NewString(),
		Kind:   kind,
		ItemID: itemID,
		token:  NewToken(),
	}
}

// Options configures a Supervisor; zero values pick the defaults
type Options struct {
	FetchWorkers int           // bound on concurrent thumbnail fetches
	FetchTimeout time.Duration // per-thumbnail request bound
	EventBuffer  int           // event channel capacity
}

// Supervisor owns every job lifecycle: it enforces at-most-one live job
// per kind, tracks the fan-out set of fetch jobs keyed by item id, owns
// the event channel the jobs publish to, and provides the blocking
// Quiesce used before teardown.
type Supervisor struct {
	backend backend.Backend
	store   *store.Store

	events    chan event.Event
	closeOnce sync.Once

	fetchSem     *semaphore.Weighted
	fetchTimeout time.Duration

	mu          sync.Mutex
	extraction  *Handle
	acquisition *Handle
	fetches     map[int]*Handle
	quiescing   bool

	wg sync.WaitGroup
}

// New creates a supervisor publishing to a fresh event channel
func New(b backend.Backend, st *store.Store, opts Options) *Supervisor {
	if opts.FetchWorkers <= 0 {
		opts.FetchWorkers = DefaultFetchWorkers
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = DefaultEventBuffer
	}
	return &Supervisor{
		backend:      b,
		store:        st,
		events:       make(chan event.Event, opts.EventBuffer),
		fetchSem:     semaphore.NewWeighted(int64(opts.FetchWorkers)),
		fetchTimeout: opts.FetchTimeout,
		fetches:      make(map[int]*Handle),
	}
}

// Events returns the channel all jobs publish to. The channel is closed
// once Quiesce has observed every job's terminal event, so consumers can
// range over it.
func (s *Supervisor) Events() <-chan event.Event {
	return s.events
}

// Store returns the item collection the jobs operate on
func (s *Supervisor) Store() *store.Store {
	return s.store
}

// StartExtraction starts the channel enumeration job. The previous run's
// records are discarded. Returns ErrAlreadyActive while an extraction job
// is live.
func (s *Supervisor) StartExtraction(ctx context.Context, sources []model.ChannelSource) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quiescing {
		return nil, ErrShuttingDown
	}
	if s.extraction != nil {
		return nil, fmt.Errorf("%s: %w", model.JobExtraction, ErrAlreadyActive)
	}

	s.store.Clear()
	h := newHandle(model.JobExtraction, -1)
	s.extraction = h
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runExtraction(ctx, h, sources)
	}()
	return h, nil
}

// StartAcquisition starts the sequential download job over a snapshot of
// the current collection. Returns ErrAlreadyActive while an acquisition
// job is live.
func (s *Supervisor) StartAcquisition(ctx context.Context, destDir string) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quiescing {
		return nil, ErrShuttingDown
	}
	if s.acquisition != nil {
		return nil, fmt.Errorf("%s: %w", model.JobAcquisition, ErrAlreadyActive)
	}

	snapshot := s.store.Snapshot()
	h := newHandle(model.JobAcquisition, -1)
	s.acquisition = h
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runAcquisition(ctx, h, snapshot, destDir)
	}()
	return h, nil
}

// StartFetch starts a thumbnail fetch job for one item. The extraction
// job calls this on every discovery; the presentation layer may also call
// it to refresh a single item.
func (s *Supervisor) StartFetch(ctx context.Context, itemID int) (*Handle, error) {
	item, ok := s.store.Get(itemID)
	if !ok {
		return nil, fmt.Errorf("item %d: %w", itemID, ErrUnknownItem)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quiescing {
		return nil, ErrShuttingDown
	}
	if _, live := s.fetches[itemID]; live {
		return nil, fmt.Errorf("%s %d: %w", model.JobFetch, itemID, ErrAlreadyActive)
	}

	h := newHandle(model.JobFetch, itemID)
	s.fetches[itemID] = h
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runFetch(ctx, h, item)
	}()
	return h, nil
}

// CancelExtraction requests a cooperative stop of the live extraction job
func (s *Supervisor) CancelExtraction() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.extraction == nil {
		return fmt.Errorf("%s: %w", model.JobExtraction, ErrNotActive)
	}
	slog.Debug("stop requested", "job", model.JobExtraction, "run", s.extraction.ID)
	s.extraction.token.Stop()
	return nil
}

// CancelAcquisition requests a cooperative stop of the live acquisition
// job. An item already in progress is allowed to finish or fail first.
func (s *Supervisor) CancelAcquisition() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.acquisition == nil {
		return fmt.Errorf("%s: %w", model.JobAcquisition, ErrNotActive)
	}
	slog.Debug("stop requested", "job", model.JobAcquisition, "run", s.acquisition.ID)
	s.acquisition.token.Stop()
	return nil
}

// CancelFetch requests a stop of one live fetch job. A fetch already
// inside its backend call is not preempted; a queued one skips the call
// and degrades to the fallback artifact.
func (s *Supervisor) CancelFetch(itemID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, live := s.fetches[itemID]
	if !live {
		return fmt.Errorf("%s %d: %w", model.JobFetch, itemID, ErrNotActive)
	}
	slog.Debug("stop requested", "job", model.JobFetch, "item", itemID, "run", h.ID)
	h.token.Stop()
	return nil
}

// Quiesce issues a stop request to every live job and blocks until all of
// them, including every in-flight fetch job, have emitted their terminal
// event. On full drain the event channel is closed. A ctx deadline makes
// Quiesce return early with ctx.Err(); stop requests stay issued.
func (s *Supervisor) Quiesce(ctx context.Context) error {
	s.mu.Lock()
	s.quiescing = true
	if s.extraction != nil {
		s.extraction.token.Stop()
	}
	if s.acquisition != nil {
		s.acquisition.token.Stop()
	}
	for _, h := range s.fetches {
		h.token.Stop()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.closeOnce.Do(func() { close(s.events) })
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// emit publishes one event. Jobs only emit while registered in the live
// set, and the channel closes only after every job returned, so a send
// never races the close.
func (s *Supervisor) emit(ev event.Event) {
	s.events <- ev
}

// finish removes the job from the live set and emits its terminal event,
// exactly once even if a job body reports termination twice.
func (s *Supervisor) finish(h *Handle, terminal event.Event) {
	s.mu.Lock()
	if h.done {
		s.mu.Unlock()
		return
	}
	h.done = true
	switch h.Kind {
	case model.JobExtraction:
		if s.extraction == h {
			s.extraction = nil
		}
	case model.JobAcquisition:
		if s.acquisition == h {
			s.acquisition = nil
		}
	case model.JobFetch:
		delete(s.fetches, h.ItemID)
	}
	s.mu.Unlock()

	s.emit(terminal)
}
