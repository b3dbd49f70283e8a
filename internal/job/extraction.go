package job

import (
	"context"
	"log/slog"

	"github.com/sniperz/shorts-downloader/internal/backend"
	"github.com/sniperz/shorts-downloader/internal/event"
	"github.com/sniperz/shorts-downloader/internal/model"
)

// runExtraction processes sources strictly one at a time in input order.
// A failing source is logged and skipped; the run goes on. The token is
// checked before every source and every entry, and a fetch job is started
// for each discovered item.
func (s *Supervisor) runExtraction(ctx context.Context, h *Handle, sources []model.ChannelSource) {
	total := len(sources)
	slog.Info("extraction started", "run", h.ID, "sources", total)

	for idx, src := range sources {
		if h.token.Stopped() {
			slog.Info("extraction canceled", "run", h.ID, "processed", idx, "total", total)
			s.finish(h, event.JobCanceled(model.JobExtraction, -1))
			return
		}
		s.emit(event.Progress(model.JobExtraction, idx+1, total))

		entries, err := s.backend.Enumerate(ctx, src.String())
		if err != nil {
			slog.Error("channel enumeration failed", "source", src.String(), "error", err)
			continue
		}

		for _, entry := range entries {
			if h.token.Stopped() {
				slog.Info("extraction canceled", "run", h.ID, "processed", idx, "total", total)
				s.finish(h, event.JobCanceled(model.JobExtraction, -1))
				return
			}
			if !backend.IsShortsURL(entry.URL) {
				continue
			}
			if backend.ShortsVideoID(entry.URL) == "" {
				slog.Warn("skipping entry with unparseable identifier", "url", entry.URL)
				continue
			}

			item := s.store.Append(entry.Title, entry.URL, backend.ThumbnailURL(entry.URL))
			s.emit(event.Discovered(item))
			if _, err := s.StartFetch(ctx, item.ID); err != nil {
				slog.Debug("fetch job not started", "item", item.ID, "error", err)
			}
		}
	}

	slog.Info("extraction finished", "run", h.ID, "items", s.store.Len())
	s.finish(h, event.JobFinished(model.JobExtraction, -1))
}
