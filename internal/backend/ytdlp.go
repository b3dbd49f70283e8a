package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/lrstanley/go-ytdlp"
)

// Download defaults mirroring the desktop app's yt-dlp options
const (
	DefaultFormat           = "mp4/best"
	DefaultFilenameTemplate = "%(title)s.%(ext)s"
	DefaultMaxRetries       = 3
)

// YTDLP implements Backend's enumerate and primary-fetch operations on top
// of yt-dlp. Thumbnail bytes are delegated to an embedded HTTP fetcher so
// a single value satisfies the whole Backend interface.
type YTDLP struct {
	format           string
	filenameTemplate string
	maxRetries       int

	*ThumbnailFetcher
}

// NewYTDLP creates a yt-dlp backed media backend
func NewYTDLP() *YTDLP {
	return &YTDLP{
		format:           DefaultFormat,
		filenameTemplate: DefaultFilenameTemplate,
		maxRetries:       DefaultMaxRetries,
		ThumbnailFetcher: NewThumbnailFetcher(),
	}
}

// SetFormat overrides the download format selector
func (y *YTDLP) SetFormat(format string) {
	if format != "" {
		y.format = format
	}
}

// Enumerate lists a channel source's child entries using flat extraction:
// no media is touched, only the entry metadata is read.
func (y *YTDLP) Enumerate(ctx context.Context, source string) ([]RawEntry, error) {
	dl := ytdlp.New().
		Quiet().
		FlatPlaylist().
		SkipDownload().
		IgnoreErrors().
		DumpJSON()

	result, err := dl.Run(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("enumerating %s: %w", source, err)
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("parsing entries for %s: %w", source, err)
	}

	var entries []RawEntry
	for _, in := range info {
		if len(in.Entries) > 0 {
			for _, e := range in.Entries {
				entries = appendEntry(entries, e)
			}
			continue
		}
		entries = appendEntry(entries, in)
	}
	return entries, nil
}

func appendEntry(entries []RawEntry, info *ytdlp.ExtractedInfo) []RawEntry {
	if info == nil {
		return entries
	}
	url := strVal(info.URL)
	if url == "" && info.ID != "" {
		url = "https://www.youtube.com/shorts/" + info.ID
	}
	if url == "" {
		return entries
	}
	return append(entries, RawEntry{
		ID:    info.ID,
		Title: strVal(info.Title),
		URL:   url,
	})
}

// FetchPrimary downloads the media at url into destDir. Transient-failure
// retries are yt-dlp's own via its retries flag, so fragment-level errors
// are retried without re-running the whole extraction.
func (y *YTDLP) FetchPrimary(ctx context.Context, url, destDir string) error {
	dl := ytdlp.New().
		Quiet().
		NoWarnings().
		Format(y.format).
		Retries(retriesValue(y.maxRetries)).
		RestrictFilenames().
		Output(filepath.Join(destDir, y.filenameTemplate))

	if _, err := dl.Run(ctx, url); err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	return nil
}

// retriesValue renders a retry count for yt-dlp's retries flag; negative
// counts collapse to zero rather than being passed through.
func retriesValue(n int) string {
	if n < 0 {
		n = 0
	}
	return strconv.Itoa(n)
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
