package job

import "sync/atomic"

// Token is a per-job cancellation flag. Stop is idempotent and may be
// called from any goroutine; Stopped is a cheap non-blocking read polled
// from the job's own goroutine. A token belongs to exactly one job
// instance and is never reused for a later run.
type Token struct {
	stopped atomic.Bool
}

// NewToken creates a fresh token for one job instance
func NewToken() *Token {
	return &Token{}
}

// Stop requests a cooperative stop
func (t *Token) Stop() {
	t.stopped.Store(true)
}

// Stopped reports whether a stop was requested
func (t *Token) Stopped() bool {
	return t.stopped.Load()
}
