package event

import "github.com/sniperz/shorts-downloader/internal/model"

// Kind discriminates the event union
type Kind string

const (
	KindDiscovered     Kind = "Discovered"
	KindProgress       Kind = "Progress"
	KindStatusChanged  Kind = "StatusChanged"
	KindAuxiliaryReady Kind = "AuxiliaryReady"
	KindJobFinished    Kind = "JobFinished"
	KindJobCanceled    Kind = "JobCanceled"
	KindJobFailed      Kind = "JobFailed"
)

// Event is an immutable value pushed by jobs onto the supervisor's event
// channel. Only the fields relevant to the Kind are populated. ItemID is
// meaningful for StatusChanged and AuxiliaryReady, and doubles as the
// auxiliary key for fetch-job terminal events.
type Event struct {
	Kind      Kind
	Job       model.JobKind
	Item      model.Item // Discovered
	ItemID    int
	Status    model.ItemStatus // StatusChanged
	Completed int              // Progress
	Total     int              // Progress
	Artifact  []byte           // AuxiliaryReady
	Fallback  bool             // AuxiliaryReady: artifact is the placeholder
	Reason    string           // JobFailed
}

// Terminal reports whether the event ends the emitting job.
func (e Event) Terminal() bool {
	return e.Kind == KindJobFinished || e.Kind == KindJobCanceled || e.Kind == KindJobFailed
}

// Discovered announces a freshly appended item record.
func Discovered(item model.Item) Event {
	return Event{Kind: KindDiscovered, Job: model.JobExtraction, Item: item, ItemID: item.ID}
}

// Progress reports completed out of total units for a job kind.
func Progress(job model.JobKind, completed, total int) Event {
	return Event{Kind: KindProgress, Job: job, Completed: completed, Total: total}
}

// StatusChanged reports an item status transition.
func StatusChanged(itemID int, status model.ItemStatus) Event {
	return Event{Kind: KindStatusChanged, Job: model.JobAcquisition, ItemID: itemID, Status: status}
}

// AuxiliaryReady carries an item's thumbnail bytes, or the fallback
// placeholder when the fetch degraded.
func AuxiliaryReady(itemID int, artifact []byte, fallback bool) Event {
	return Event{Kind: KindAuxiliaryReady, Job: model.JobFetch, ItemID: itemID, Artifact: artifact, Fallback: fallback}
}

// JobFinished is the normal terminal event for a job. For fetch jobs
// itemID carries the auxiliary key; other kinds pass a negative id.
func JobFinished(job model.JobKind, itemID int) Event {
	return Event{Kind: KindJobFinished, Job: job, ItemID: itemID}
}

// JobCanceled is the terminal event of a job that observed its stop request.
func JobCanceled(job model.JobKind, itemID int) Event {
	return Event{Kind: KindJobCanceled, Job: job, ItemID: itemID}
}

// JobFailed is the terminal event of a job that hit a fatal error.
func JobFailed(job model.JobKind, reason string) Event {
	return Event{Kind: KindJobFailed, Job: job, ItemID: -1, Reason: reason}
}
