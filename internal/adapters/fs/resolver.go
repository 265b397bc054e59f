package fs

import (
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/zerr"
)

// Resolver selects the direct entries of a directory by glob pattern.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveFiles returns the regular files directly in dir whose base name matches
// any of the patterns, sorted and deduplicated. No match is not an error.
func (r *Resolver) ResolveFiles(dir string, patterns ...string) ([]string, error) {
	uniquePaths := make(map[string]bool)

	for _, pattern := range patterns {
		path := filepath.Join(dir, pattern)

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to stat match"), "path", match)
			}
			if info.Mode().IsRegular() {
				uniquePaths[match] = true
			}
		}
	}

	result := make([]string, 0, len(uniquePaths))
	for path := range uniquePaths {
		result = append(result, path)
	}
	sort.Strings(result)

	return result, nil
}
