package model

import (
	"net/url"
	"strings"
)

// YouTube host suffixes accepted for channel sources
var youtubeHosts = []string{"youtube.com", "www.youtube.com", "m.youtube.com"}

// ChannelSource is a channel URL whose shorts tab gets enumerated
type ChannelSource string

// String returns the source URL
func (c ChannelSource) String() string {
	return string(c)
}

// Valid reports whether the source is a well-formed YouTube channel URL.
// Accepted forms are handle (/@name), /channel/ and /c/ URLs, with or
// without a trailing /shorts segment.
func (c ChannelSource) Valid() bool {
	u, err := url.Parse(string(c))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Host)
	ok := false
	for _, h := range youtubeHosts {
		if host == h {
			ok = true
			break
		}
	}
	if !ok {
		return false
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return false
	}
	first := strings.SplitN(path, "/", 2)[0]
	switch {
	case strings.HasPrefix(first, "@") && len(first) > 1:
		return true
	case first == "channel", first == "c", first == "user":
		return len(path) > len(first)+1
	}
	return false
}

// NormalizeSources trims, de-duplicates and validates raw source strings,
// preserving input order. Invalid entries never reach a job; they are
// returned separately so the caller can report each one.
func NormalizeSources(raw []string) (valid []ChannelSource, invalid []string) {
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		src := ChannelSource(r)
		if src.Valid() {
			valid = append(valid, src)
		} else {
			invalid = append(invalid, r)
		}
	}
	return valid, invalid
}
