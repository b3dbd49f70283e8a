package job_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/sniperz/shorts-downloader/internal/backend"
	"github.com/sniperz/shorts-downloader/internal/event"
	"github.com/sniperz/shorts-downloader/internal/job"
	"github.com/sniperz/shorts-downloader/internal/model"
	"github.com/sniperz/shorts-downloader/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeBackend lets each test script the media collaborator. Nil hooks
// fall back to benign defaults.
type fakeBackend struct {
	enumerate    func(ctx context.Context, source string) ([]backend.RawEntry, error)
	fetchPrimary func(ctx context.Context, url, destDir string) error
	fetchBytes   func(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}

func (f *fakeBackend) Enumerate(ctx context.Context, source string) ([]backend.RawEntry, error) {
	if f.enumerate == nil {
		return nil, nil
	}
	return f.enumerate(ctx, source)
}

func (f *fakeBackend) FetchPrimary(ctx context.Context, url, destDir string) error {
	if f.fetchPrimary == nil {
		return nil
	}
	return f.fetchPrimary(ctx, url, destDir)
}

func (f *fakeBackend) FetchBytes(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if f.fetchBytes == nil {
		return backend.FallbackThumbnail, nil
	}
	return f.fetchBytes(ctx, url, timeout)
}

// recorder drains the supervisor's event channel on a dedicated goroutine
type recorder struct {
	mu     sync.Mutex
	events []event.Event
	done   chan struct{}
}

func record(s *job.Supervisor) *recorder {
	r := &recorder{done: make(chan struct{})}
	go func() {
		for ev := range s.Events() {
			r.mu.Lock()
			r.events = append(r.events, ev)
			r.mu.Unlock()
		}
		close(r.done)
	}()
	return r
}

// all returns the events recorded so far; safe to call any time
func (r *recorder) all() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Event(nil), r.events...)
}

// wait blocks until the event channel closed (after a full Quiesce)
func (r *recorder) wait(t *testing.T) []event.Event {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(10 * time.Second):
		t.Fatal("event channel never closed")
	}
	return r.all()
}

// waitForFinished blocks until n JobFinished events for kind were recorded
func (r *recorder) waitForFinished(t *testing.T, kind model.JobKind, n int) {
	t.Helper()
	r.waitFor(t, func(events []event.Event) bool {
		count := 0
		for _, ev := range ofKind(events, event.KindJobFinished) {
			if ev.Job == kind {
				count++
			}
		}
		return count >= n
	})
}

// waitFor polls until pred holds over the recorded events
func (r *recorder) waitFor(t *testing.T, pred func([]event.Event) bool) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for {
		if pred(r.all()) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition never met, events: %+v", r.all())
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func ofKind(events []event.Event, kind event.Kind) []event.Event {
	var out []event.Event
	for _, ev := range events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func newSupervisor(b backend.Backend) (*job.Supervisor, *store.Store) {
	st := store.New()
	return job.New(b, st, job.Options{FetchWorkers: 4, FetchTimeout: time.Second}), st
}
