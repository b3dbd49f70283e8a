package job

import (
	"context"
	"log/slog"

	"github.com/sniperz/shorts-downloader/internal/backend"
	"github.com/sniperz/shorts-downloader/internal/event"
	"github.com/sniperz/shorts-downloader/internal/model"
)

// runFetch retrieves one item's thumbnail. Any failure degrades to the
// fallback artifact so the consumer always receives an AuxiliaryReady,
// and the job always terminates with JobFinished carrying the item id.
func (s *Supervisor) runFetch(ctx context.Context, h *Handle, item model.Item) {
	artifact, fallback := s.fetchArtifact(ctx, h, item)
	if !fallback {
		s.store.MarkThumbLoaded(item.ID)
	}
	s.emit(event.AuxiliaryReady(item.ID, artifact, fallback))
	s.finish(h, event.JobFinished(model.JobFetch, item.ID))
}

// fetchArtifact performs the single bounded backend call. The worker
// semaphore caps concurrent fetches; a job whose stop was requested while
// queued skips the call entirely.
func (s *Supervisor) fetchArtifact(ctx context.Context, h *Handle, item model.Item) ([]byte, bool) {
	if item.ThumbnailURL == "" {
		return backend.FallbackThumbnail, true
	}

	if err := s.fetchSem.Acquire(ctx, 1); err != nil {
		return backend.FallbackThumbnail, true
	}
	defer s.fetchSem.Release(1)

	if h.token.Stopped() {
		return backend.FallbackThumbnail, true
	}

	data, err := s.backend.FetchBytes(ctx, item.ThumbnailURL, s.fetchTimeout)
	if err != nil {
		slog.Debug("thumbnail degraded to fallback", "run", h.ID, "item", item.ID, "url", item.ThumbnailURL, "error", err)
		return backend.FallbackThumbnail, true
	}
	return data, false
}
