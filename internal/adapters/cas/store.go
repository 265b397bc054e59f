// Package cas implements the artifact state store.
package cas

import (
	"cmp"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/rivebuild/internal/core/domain"
	"go.trai.ch/rivebuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*Store)(nil)

// Store implements ports.ArtifactStore using a flat JSON file keyed by destination.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.ArtifactRecord
}

// NewStore creates a new ArtifactStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.ArtifactRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open is a ports.StoreOpener backed by NewStore.
func Open(path string) (ports.ArtifactStore, error) {
	return NewStore(path)
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read artifact store"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal artifact store"), "path", s.path)
	}

	return nil
}

// save must be called with the write lock held.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal artifact store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for artifact store")
	}

	// Write to a sibling file first so an interrupted build never leaves a truncated store.
	tmp := s.path + ".tmp"
	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write artifact store")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return zerr.Wrap(err, "failed to replace artifact store")
	}

	return nil
}

// Get retrieves the record for a destination path.
func (s *Store) Get(destination string) (*domain.ArtifactRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.cache[filepath.Clean(destination)]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the records and persists the store once.
func (s *Store) Put(records ...domain.ArtifactRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range records {
		record.Destination = filepath.Clean(record.Destination)
		s.cache[record.Destination] = record
	}
	return s.save()
}

// All returns every record sorted by destination.
func (s *Store) All() ([]domain.ArtifactRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.ArtifactRecord, 0, len(s.cache))
	for _, record := range s.cache {
		records = append(records, record)
	}
	slices.SortFunc(records, func(a, b domain.ArtifactRecord) int {
		return cmp.Compare(a.Destination, b.Destination)
	})
	return records, nil
}
