package fs_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rivebuild/internal/adapters/fs"
	"go.trai.ch/rivebuild/internal/core/domain"
)

func TestVerifier_VerifyArtifacts(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "rive.lib")
	changed := filepath.Join(dir, "rive_zlib.lib")
	missing := filepath.Join(dir, "rive_libpng.lib")
	writeFile(t, good, "rive")
	writeFile(t, changed, "zlib")

	hasher := fs.NewHasher(fs.NewWalker())
	hashOf := func(path string) string {
		sum, err := hasher.ComputeFileHash(path)
		require.NoError(t, err)
		return domain.FormatHash(sum)
	}

	records := []domain.ArtifactRecord{
		{Destination: good, Hash: hashOf(good)},
		{Destination: changed, Hash: hashOf(changed)},
		{Destination: missing, Hash: "0000000000000001"},
	}
	writeFile(t, changed, "zlib rebuilt")

	problems, err := fs.NewVerifier(hasher).VerifyArtifacts(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, problems, 2)

	assert.Equal(t, changed, problems[0].Destination)
	assert.False(t, problems[0].Missing)
	assert.Equal(t, hashOf(changed), problems[0].Actual)

	assert.Equal(t, missing, problems[1].Destination)
	assert.True(t, problems[1].Missing)
}

func TestVerifier_VerifyArtifacts_AllGood(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rive.a")
	writeFile(t, path, "rive")

	hasher := fs.NewHasher(fs.NewWalker())
	sum, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)

	problems, err := fs.NewVerifier(hasher).VerifyArtifacts(context.Background(), []domain.ArtifactRecord{
		{Destination: path, Hash: domain.FormatHash(sum)},
	})
	require.NoError(t, err)
	assert.Empty(t, problems)
}
