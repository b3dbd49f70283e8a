package event

// Package event defines the value types flowing from background jobs to the
// consuming presentation layer. Events from the same job arrive in emission
// order; no ordering holds across concurrent jobs beyond each job's events
// preceding its own terminal event.
