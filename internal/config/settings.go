package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sniperz/shorts-downloader/internal/platform"
)

// Environment variable names
const (
	EnvDownloadDir  = "SHORTS_DOWNLOAD_DIR"
	EnvFetchWorkers = "SHORTS_FETCH_WORKERS"
	EnvFetchTimeout = "SHORTS_FETCH_TIMEOUT"
	EnvFormat       = "SHORTS_FORMAT"
)

// Default values
const (
	DefaultFetchWorkers = 4
	DefaultFetchTimeout = 5 * time.Second
	DefaultEventBuffer  = 256
	MaxFetchWorkers     = 32
)

// Settings holds application configuration
type Settings struct {
	DownloadDir  string        // destination for downloaded videos
	FetchWorkers int           // bound on concurrent thumbnail fetches
	FetchTimeout time.Duration // per-thumbnail request bound
	EventBuffer  int           // supervisor event channel capacity
	Format       string        // yt-dlp format selector
}

// Load builds Settings from defaults and environment. A .env file in the
// working directory is honored when present.
func Load() *Settings {
	_ = godotenv.Load()

	s := &Settings{
		FetchWorkers: DefaultFetchWorkers,
		FetchTimeout: DefaultFetchTimeout,
		EventBuffer:  DefaultEventBuffer,
	}

	if dir := os.Getenv(EnvDownloadDir); dir != "" {
		s.DownloadDir = dir
	} else if dir, err := platform.GetHomeDownloadsDir(); err == nil {
		s.DownloadDir = dir
	}

	if v := os.Getenv(EnvFetchWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.FetchWorkers = clampWorkers(n)
		}
	}
	if v := os.Getenv(EnvFetchTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			s.FetchTimeout = d
		}
	}
	s.Format = os.Getenv(EnvFormat)

	return s
}

func clampWorkers(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxFetchWorkers {
		return MaxFetchWorkers
	}
	return n
}
