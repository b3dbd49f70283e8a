package model

import "strings"

// DefaultTitle is used when the backend reports no title for an entry
const DefaultTitle = "No Title"

// Item represents a single discovered Shorts video
type Item struct {
	ID           int        // position of first discovery, never reused within a run
	Title        string     // display title, DefaultTitle when unavailable
	URL          string     // canonical video URL
	ThumbnailURL string     // best-effort thumbnail URL, may be empty
	Status       ItemStatus // download status, owned by the acquisition job
	ThumbLoaded  bool       // thumbnail artifact fetched, owned by fetch jobs
}

// DisplayTitle returns the title, falling back to the URL when the title
// is missing or is itself a URL.
func (it Item) DisplayTitle() string {
	if it.Title != "" && it.Title != DefaultTitle && !strings.HasPrefix(it.Title, "http") {
		return it.Title
	}
	if it.URL != "" {
		return it.URL
	}
	return it.Title
}
