package download

// State is the lifecycle stage of one table row during a download run.
type State string

const (
	// Pending means the row was not reached yet.
	Pending State = "Pending"
	// Downloading means the row is being fetched and processed.
	Downloading State = "Downloading"
	// Processed means audio was written and the row is flagged as done.
	Processed State = "Processed"
	// Failed means fetching or processing failed. The row stays retryable.
	Failed State = "Failed"
	// SkippedAlreadyDone means the row was flagged and its audio found
	// on disk, so nothing was fetched.
	SkippedAlreadyDone State = "SkippedAlreadyDone"
)

// String returns the string representation of State.
func (s State) String() string {
	return string(s)
}

// IsFinished returns true if the row will not change state again
// during the run.
func (s State) IsFinished() bool {
	return s == Processed || s == Failed || s == SkippedAlreadyDone
}
