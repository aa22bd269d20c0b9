package domain

import "time"

// JobStatus is the lifecycle state of a detection job.
type JobStatus string

const (
	Pending   JobStatus = "pending"
	Detecting JobStatus = "detecting"
	Completed JobStatus = "completed"
	Failed    JobStatus = "failed"
	// Rejected jobs carry hints that cannot be resolved; they succeed once
	// the hints are corrected.
	Rejected JobStatus = "rejected"
	// Skipped jobs point at content that is neither markup nor text.
	Skipped JobStatus = "skipped"
)

// Job is a URL queued for language detection, with optional caller hints
// that take precedence over hints derived from the fetched page.
type Job struct {
	ID    int64
	URL   string
	Hints RawHints
}

// FetchedPage is a fetched document transcoded to UTF-8.
type FetchedPage struct {
	FinalURL    string
	ContentType string
	Body        []byte
	PlainText   bool
	IsNonText   bool
	// Hints are derived from the response and the document itself.
	Hints RawHints
}

// StoredResult is a detection result as persisted and published.
type StoredResult struct {
	JobID      int64     `json:"job_id"`
	URL        string    `json:"url"`
	Engine     string    `json:"engine"`
	Result     Result    `json:"result"`
	DetectedAt time.Time `json:"detected_at"`
}
