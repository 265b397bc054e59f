package domain

import (
	"fmt"
	"time"
)

// ArtifactRecord is the recorded state of a file copied into the plugin.
type ArtifactRecord struct {
	Destination string    `json:"destination,omitzero"`
	Source      string    `json:"source,omitzero"`
	Hash        string    `json:"hash,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}

// ArtifactProblem describes a recorded artifact that no longer matches disk.
type ArtifactProblem struct {
	Destination string
	// Missing is set when the file no longer exists.
	Missing bool
	// Expected and Actual hold the recorded and current hashes.
	Expected string
	Actual   string
}

// FormatHash renders a content hash the way artifact records store it.
func FormatHash(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
