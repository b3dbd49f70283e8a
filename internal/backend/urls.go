package backend

import (
	"fmt"
	"regexp"
	"strings"
)

// Thumbnail URL template keyed by video id
const thumbnailURLTemplate = "https://img.youtube.com/vi/%s/hqdefault.jpg"

var shortsIDPattern = regexp.MustCompile(`/shorts/([^?/]+)`)

// IsShortsURL reports whether the entry structurally qualifies as a Short
func IsShortsURL(url string) bool {
	return strings.Contains(url, "/shorts/")
}

// ShortsVideoID extracts the video id from a shorts URL, or "" when the
// identifier cannot be parsed.
func ShortsVideoID(url string) string {
	m := shortsIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// ThumbnailURL derives the best-effort thumbnail URL for a shorts video
// URL. Returns "" when no video id is derivable.
func ThumbnailURL(videoURL string) string {
	id := ShortsVideoID(videoURL)
	if id == "" {
		return ""
	}
	return fmt.Sprintf(thumbnailURLTemplate, id)
}
