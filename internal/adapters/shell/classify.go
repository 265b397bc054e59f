package shell

import "strings"

// LineKind is the classification of one line of build output.
type LineKind int

const (
	// LineNormal is echoed verbatim.
	LineNormal LineKind = iota
	// LineError marks the command as failed.
	LineError
	// LineNeedsClean asks for a clean rebuild because the generator arguments changed.
	LineNeedsClean
)

// String returns the kind name.
func (k LineKind) String() string {
	switch k {
	case LineError:
		return "error"
	case LineNeedsClean:
		return "needs-clean"
	default:
		return "normal"
	}
}

const (
	needsCleanMarker = "do not match previous"
	errorMarker      = " error"
)

// falsePositives are literal substrings of toolchain output that contain the
// error marker without reporting an error. They are matched case-sensitively.
var falsePositives = []string{
	"Structured output",
	"0 Error",
	"pnglibconf.h: Permission denied",
	"has no symbols",
}

// Classify decides what a single line of build output means.
//
// The argument mismatch marker wins over the error marker. The error marker is
// a plain substring match on the lowercased line, so " error_handler.cpp" counts.
// The false positive carve-outs are matched case-sensitively.
func Classify(line string) LineKind {
	lower := strings.ToLower(line)
	if strings.Contains(lower, needsCleanMarker) {
		return LineNeedsClean
	}
	if !strings.Contains(lower, errorMarker) {
		return LineNormal
	}
	for _, fp := range falsePositives {
		if strings.Contains(line, fp) {
			return LineNormal
		}
	}
	return LineError
}
