package model

// ItemStatus represents the download status of a discovered item
type ItemStatus string

const (
	// StatusNotStarted means the item was discovered but no download claimed it yet
	StatusNotStarted ItemStatus = "NotStarted"

	// StatusInProgress means a download job has claimed the item
	StatusInProgress ItemStatus = "InProgress"

	// StatusFinished means the item downloaded successfully
	StatusFinished ItemStatus = "Finished"

	// StatusFailed means the download failed for this item
	StatusFailed ItemStatus = "Failed"
)

// String returns the string representation of ItemStatus
func (s ItemStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status is a final state
func (s ItemStatus) IsTerminal() bool {
	return s == StatusFinished || s == StatusFailed
}

// CanTransitionTo reports whether moving from s to next is a legal
// status transition. Status never regresses and never skips InProgress.
func (s ItemStatus) CanTransitionTo(next ItemStatus) bool {
	switch s {
	case StatusNotStarted:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusFinished || next == StatusFailed
	default:
		return false
	}
}
