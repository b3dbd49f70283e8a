package job

// Package job implements the orchestration core: per-run cancellation
// tokens, the supervisor owning every job lifecycle and the event channel,
// and the three job bodies (extraction, acquisition, thumbnail fetch).
// Jobs never let a backend error escape; each terminates via exactly one
// terminal event observed by the supervisor.
