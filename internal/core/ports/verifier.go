package ports

import (
	"context"

	"go.trai.ch/rivebuild/internal/core/domain"
)

// Verifier defines the interface for checking recorded artifacts against disk.
//
//go:generate mockgen -destination=mocks/verifier_mock.go -package=mocks -source=verifier.go
type Verifier interface {
	// VerifyArtifacts returns the records whose destination is missing or whose content changed.
	VerifyArtifacts(ctx context.Context, records []domain.ArtifactRecord) ([]domain.ArtifactProblem, error)
}
