package model

// FileStatus represents what happened to a file in the current session
type FileStatus string

const (
	// FileStatusPending means the file is queued and has not been converted yet
	FileStatusPending FileStatus = "Pending"

	// FileStatusConverted means the last batch wrote an output file for it
	FileStatusConverted FileStatus = "Converted"

	// FileStatusFailed means the last batch could not convert it
	FileStatusFailed FileStatus = "Failed"
)

// String returns the string representation of FileStatus
func (fs FileStatus) String() string {
	return string(fs)
}

// IsFinished returns true if a batch has produced a result for the file
func (fs FileStatus) IsFinished() bool {
	return fs == FileStatusConverted || fs == FileStatusFailed
}

// BatchState is the state of the conversion worker. There is no paused
// state; a running batch either finishes or is cancelled back to idle.
type BatchState string

const (
	BatchStateIdle    BatchState = "Idle"
	BatchStateRunning BatchState = "Running"
)

// String returns the string representation of BatchState
func (bs BatchState) String() string {
	return string(bs)
}

// IsActive returns true while a batch is running
func (bs BatchState) IsActive() bool {
	return bs == BatchStateRunning
}
