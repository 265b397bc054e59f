package domain

// Status is the outcome of running a compile command.
type Status int

const (
	// StatusNotStarted is the status of an attempt that has not run yet.
	StatusNotStarted Status = iota
	// StatusSuccess means no error marker was seen in the output.
	StatusSuccess
	// StatusFailed means an error marker was seen in the output.
	StatusFailed
	// StatusNeedsClean means the generator reported that its arguments do not match the previous build.
	StatusNeedsClean
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not-started"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusNeedsClean:
		return "needs-clean"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further execution follows the status.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}
