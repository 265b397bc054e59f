package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/rivebuild/internal/core/domain"
	"go.trai.ch/rivebuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// verifyConcurrency bounds the number of artifacts hashed at once.
const verifyConcurrency = 8

var _ ports.Verifier = (*Verifier)(nil)

// Verifier compares recorded artifacts with the files on disk.
type Verifier struct {
	hasher ports.Hasher
}

// NewVerifier creates a new Verifier.
func NewVerifier(hasher ports.Hasher) *Verifier {
	return &Verifier{hasher: hasher}
}

// VerifyArtifacts re-hashes every recorded destination and returns the records
// that are missing or modified, in input order.
func (v *Verifier) VerifyArtifacts(ctx context.Context, records []domain.ArtifactRecord) ([]domain.ArtifactProblem, error) {
	results := make([]*domain.ArtifactProblem, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyConcurrency)

	for i, rec := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			problem, err := v.verify(rec)
			if err != nil {
				return err
			}
			results[i] = problem
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var problems []domain.ArtifactProblem
	for _, p := range results {
		if p != nil {
			problems = append(problems, *p)
		}
	}
	return problems, nil
}

func (v *Verifier) verify(rec domain.ArtifactRecord) (*domain.ArtifactProblem, error) {
	if _, err := os.Stat(rec.Destination); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return &domain.ArtifactProblem{Destination: rec.Destination, Missing: true, Expected: rec.Hash}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", rec.Destination)
	}

	sum, err := v.hasher.ComputeFileHash(rec.Destination)
	if err != nil {
		return nil, err
	}
	actual := domain.FormatHash(sum)
	if actual == rec.Hash {
		return nil, nil
	}
	return &domain.ArtifactProblem{Destination: rec.Destination, Expected: rec.Hash, Actual: actual}, nil
}
