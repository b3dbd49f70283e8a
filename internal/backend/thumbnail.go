package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Thumbnail payloads above this size are rejected as malformed
const maxThumbnailBytes = 4 << 20

// FallbackThumbnail is the placeholder artifact substituted whenever a
// thumbnail cannot be fetched. A 1x1 transparent GIF: tiny, decodable by
// any consumer.
var FallbackThumbnail = []byte{
	'G', 'I', 'F', '8', '9', 'a',
	0x01, 0x00, 0x01, 0x00, 0x80, 0x00, 0x00,
	0x00, 0x00, 0x00, 0xff, 0xff, 0xff,
	0x21, 0xf9, 0x04, 0x01, 0x00, 0x00, 0x00, 0x00,
	0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00,
	0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// ThumbnailFetcher retrieves thumbnail bytes over HTTP
type ThumbnailFetcher struct {
	client *http.Client
}

// NewThumbnailFetcher creates a thumbnail fetcher with a shared client.
// The per-request bound comes from the timeout passed to FetchBytes.
func NewThumbnailFetcher() *ThumbnailFetcher {
	return &ThumbnailFetcher{client: &http.Client{}}
}

// FetchBytes downloads at most maxThumbnailBytes from url within timeout
// and validates that the payload looks like an image.
func (f *ThumbnailFetcher) FetchBytes(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty thumbnail URL")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building thumbnail request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("thumbnail request failed: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxThumbnailBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading thumbnail body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty thumbnail payload")
	}
	if len(data) > maxThumbnailBytes {
		return nil, fmt.Errorf("thumbnail payload exceeds %d bytes", maxThumbnailBytes)
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil, fmt.Errorf("thumbnail payload is not an image")
	}
	return data, nil
}
