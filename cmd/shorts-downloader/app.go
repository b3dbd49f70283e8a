package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sniperz/shorts-downloader/internal/backend"
	"github.com/sniperz/shorts-downloader/internal/config"
	"github.com/sniperz/shorts-downloader/internal/event"
	"github.com/sniperz/shorts-downloader/internal/job"
	"github.com/sniperz/shorts-downloader/internal/model"
	"github.com/sniperz/shorts-downloader/internal/platform"
	"github.com/sniperz/shorts-downloader/internal/store"
)

const quiesceGrace = 30 * time.Second

// app wires the backend, the store and the supervisor together and
// consumes the event stream for the duration of one command.
type app struct {
	sup *job.Supervisor

	// terminal events of the extraction and acquisition jobs, forwarded
	// by the consumer goroutine
	terminals chan event.Event
	drained   chan struct{}
}

func newApp(settings *config.Settings) *app {
	be := backend.NewYTDLP()
	if settings.Format != "" {
		be.SetFormat(settings.Format)
	}

	a := &app{
		sup: job.New(be, store.New(), job.Options{
			FetchWorkers: settings.FetchWorkers,
			FetchTimeout: settings.FetchTimeout,
			EventBuffer:  settings.EventBuffer,
		}),
		terminals: make(chan event.Event, 8),
		drained:   make(chan struct{}),
	}
	go a.consume()
	return a
}

// consume renders every supervisor event and forwards the terminal
// events of the two sequential jobs. Runs until the event channel
// closes on quiesce.
func (a *app) consume() {
	defer close(a.drained)
	for ev := range a.sup.Events() {
		switch ev.Kind {
		case event.KindDiscovered:
			slog.Info("discovered", "id", ev.Item.ID, "title", ev.Item.DisplayTitle(), "url", ev.Item.URL)
		case event.KindProgress:
			slog.Info("progress", "job", ev.Job, "completed", ev.Completed, "total", ev.Total)
		case event.KindStatusChanged:
			if ev.Status.IsTerminal() {
				slog.Info("status changed", "item", ev.ItemID, "status", ev.Status)
			} else {
				slog.Debug("status changed", "item", ev.ItemID, "status", ev.Status)
			}
		case event.KindAuxiliaryReady:
			slog.Debug("thumbnail ready", "item", ev.ItemID, "fallback", ev.Fallback, "bytes", len(ev.Artifact))
		case event.KindJobFinished:
			slog.Info("job finished", "job", ev.Job)
		case event.KindJobCanceled:
			slog.Warn("job canceled", "job", ev.Job)
		case event.KindJobFailed:
			slog.Error("job failed", "job", ev.Job, "reason", ev.Reason)
		}

		if ev.Terminal() && ev.Job != model.JobFetch {
			a.terminals <- ev
		}
	}
}

// await blocks until the named job reaches its terminal event or ctx is
// canceled. Returns the event and true, or false on cancellation.
func (a *app) await(ctx context.Context, kind model.JobKind) (event.Event, bool) {
	for {
		select {
		case ev := <-a.terminals:
			if ev.Job == kind {
				return ev, true
			}
		case <-ctx.Done():
			return event.Event{}, false
		}
	}
}

// shutdown cancels everything still live and drains the supervisor.
func (a *app) shutdown() {
	_ = a.sup.CancelExtraction()
	_ = a.sup.CancelAcquisition()

	ctx, cancel := context.WithTimeout(context.Background(), quiesceGrace)
	defer cancel()
	if err := a.sup.Quiesce(ctx); err != nil {
		slog.Warn("shutdown did not drain in time", "err", err)
		return
	}
	<-a.drained
}

func doRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sources, err := loadSources()
	if err != nil {
		return err
	}

	a := newApp(settings)
	defer a.shutdown()

	if _, err := a.sup.StartExtraction(ctx, sources); err != nil {
		return err
	}
	ev, ok := a.await(ctx, model.JobExtraction)
	if !ok {
		return ctx.Err()
	}
	if ev.Kind != event.KindJobFinished {
		return fmt.Errorf("scraping did not complete: %s", ev.Kind)
	}

	total := a.sup.Store().Len()
	if total == 0 {
		slog.Info("no shorts found, nothing to download")
		return writeCSV(a.sup.Store())
	}
	slog.Info("collection complete", "videos", total, "dir", settings.DownloadDir)

	if _, err := a.sup.StartAcquisition(ctx, settings.DownloadDir); err != nil {
		return err
	}
	ev, ok = a.await(ctx, model.JobAcquisition)
	if !ok {
		return ctx.Err()
	}
	if ev.Kind == event.KindJobFailed {
		return errors.New(ev.Reason)
	}

	return writeCSV(a.sup.Store())
}

func doDownload(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newApp(settings)
	defer a.shutdown()

	f, err := os.Open(flagFromCSV)
	if err != nil {
		return fmt.Errorf("opening %s: %w", flagFromCSV, err)
	}
	err = a.sup.Store().ImportCSV(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", flagFromCSV, err)
	}

	total := a.sup.Store().Len()
	slog.Info("video list loaded", "path", flagFromCSV, "videos", total, "dir", settings.DownloadDir)

	if _, err := a.sup.StartAcquisition(ctx, settings.DownloadDir); err != nil {
		return err
	}
	ev, ok := a.await(ctx, model.JobAcquisition)
	if !ok {
		return ctx.Err()
	}
	if ev.Kind == event.KindJobFailed {
		return errors.New(ev.Reason)
	}
	return nil
}

func doScrape(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sources, err := loadSources()
	if err != nil {
		return err
	}

	a := newApp(settings)
	defer a.shutdown()

	if _, err := a.sup.StartExtraction(ctx, sources); err != nil {
		return err
	}
	ev, ok := a.await(ctx, model.JobExtraction)
	if !ok {
		return ctx.Err()
	}
	if ev.Kind != event.KindJobFinished {
		return fmt.Errorf("scraping did not complete: %s", ev.Kind)
	}

	if flagCSVPath == "" {
		return a.sup.Store().ExportCSV(os.Stdout)
	}
	return writeCSV(a.sup.Store())
}

// loadSources resolves the channel list from --channels or the built-in
// defaults and validates every entry.
func loadSources() ([]model.ChannelSource, error) {
	raw := platform.DefaultChannels
	if flagChannelsFile != "" {
		lines, err := platform.LoadChannelsFromFile(flagChannelsFile)
		if err != nil {
			return nil, fmt.Errorf("reading channel list: %w", err)
		}
		raw = lines
	}

	sources, invalid := model.NormalizeSources(raw)
	for _, line := range invalid {
		slog.Warn("skipping invalid channel URL", "line", line)
	}
	if len(sources) == 0 {
		return nil, errors.New("no valid channel URLs to scrape")
	}
	return sources, nil
}

func writeCSV(st *store.Store) error {
	if flagCSVPath == "" {
		return nil
	}
	f, err := os.Create(flagCSVPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", flagCSVPath, err)
	}
	defer func() {
		_ = f.Close()
	}()
	if err := st.ExportCSV(f); err != nil {
		return fmt.Errorf("writing %s: %w", flagCSVPath, err)
	}
	slog.Info("video list exported", "path", flagCSVPath)
	return nil
}
