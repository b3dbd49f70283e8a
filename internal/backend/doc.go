package backend

// Package backend wraps the external media collaborators: channel
// enumeration and video download via yt-dlp (github.com/lrstanley/go-ytdlp)
// and thumbnail retrieval over plain HTTP. The rest of the app only sees
// the Backend interface.
