package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sniperz/shorts-downloader/internal/event"
	"github.com/sniperz/shorts-downloader/internal/model"
	"github.com/sniperz/shorts-downloader/internal/platform"
)

// runAcquisition downloads every snapshot item sequentially. A failing
// destination directory is fatal to the job; a failing item only marks
// that item Failed. The token is checked before claiming each item, so
// an item already in progress finishes or fails before the job exits.
func (s *Supervisor) runAcquisition(ctx context.Context, h *Handle, items []model.Item, destDir string) {
	if err := platform.CreateDirectoryIfNotExists(destDir); err != nil {
		slog.Error("cannot create destination directory", "run", h.ID, "dir", destDir, "error", err)
		s.finish(h, event.JobFailed(model.JobAcquisition, fmt.Sprintf("creating destination %s: %v", destDir, err)))
		return
	}

	total := len(items)
	slog.Info("acquisition started", "run", h.ID, "items", total, "dir", destDir)

	for idx, item := range items {
		if h.token.Stopped() {
			slog.Info("acquisition canceled", "run", h.ID, "processed", idx, "total", total)
			s.finish(h, event.JobCanceled(model.JobAcquisition, -1))
			return
		}

		if err := s.store.SetStatus(item.ID, model.StatusInProgress); err != nil {
			slog.Warn("cannot claim item", "item", item.ID, "error", err)
			s.emit(event.Progress(model.JobAcquisition, idx+1, total))
			continue
		}
		s.emit(event.StatusChanged(item.ID, model.StatusInProgress))

		status := model.StatusFinished
		if err := s.backend.FetchPrimary(ctx, item.URL, destDir); err != nil {
			slog.Error("download failed", "item", item.ID, "url", item.URL, "error", err)
			status = model.StatusFailed
		}
		if err := s.store.SetStatus(item.ID, status); err != nil {
			slog.Warn("status update failed", "item", item.ID, "error", err)
		}
		s.emit(event.StatusChanged(item.ID, status))
		s.emit(event.Progress(model.JobAcquisition, idx+1, total))
	}

	slog.Info("acquisition finished", "run", h.ID, "items", total)
	s.finish(h, event.JobFinished(model.JobAcquisition, -1))
}
