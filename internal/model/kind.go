package model

// JobKind identifies the type of a background job
type JobKind string

const (
	// JobExtraction enumerates channel sources into item records
	JobExtraction JobKind = "Extraction"

	// JobAcquisition downloads every item in a snapshot sequentially
	JobAcquisition JobKind = "Acquisition"

	// JobFetch fetches one item's thumbnail artifact
	JobFetch JobKind = "Fetch"
)

// String returns the string representation of JobKind
func (k JobKind) String() string {
	return string(k)
}
