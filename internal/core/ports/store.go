package ports

import "go.trai.ch/rivebuild/internal/core/domain"

// ArtifactStore defines the interface for storing and retrieving artifact records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Get retrieves the record for a destination path.
	// Returns nil, nil if not found.
	Get(destination string) (*domain.ArtifactRecord, error)

	// Put stores the records.
	Put(records ...domain.ArtifactRecord) error

	// All returns every record sorted by destination.
	All() ([]domain.ArtifactRecord, error)
}

// StoreOpener opens the artifact store persisted at path.
type StoreOpener func(path string) (ArtifactStore, error)
