package backend

import (
	"context"
	"time"
)

// RawEntry is one child entry returned by channel enumeration, before the
// shorts membership filter is applied.
type RawEntry struct {
	ID    string
	Title string
	URL   string
}

// Backend is the external media collaborator. Implementations may retry
// internally; callers treat every operation as a black box with a single
// success/error outcome.
type Backend interface {
	// Enumerate resolves a channel source into its child entries.
	Enumerate(ctx context.Context, source string) ([]RawEntry, error)

	// FetchPrimary downloads the media at url into destDir.
	FetchPrimary(ctx context.Context, url, destDir string) error

	// FetchBytes retrieves a small side artifact, bounded by timeout.
	FetchBytes(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}
