package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rivebuild/internal/adapters/telemetry"
	"go.trai.ch/rivebuild/internal/core/domain"
	"go.trai.ch/rivebuild/internal/core/ports"
)

func TestNoOp_Record(t *testing.T) {
	tel := telemetry.NewNoOp()

	ctx, v := tel.Record(context.Background(), "sync includes", ports.WithGroup("includes"))
	require.NotNil(t, v)

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, v, fromCtx)

	n, err := v.Stdout().Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	v.Log(domain.LogLevelWarn, "ignored")
	v.Skipped()
	v.Complete(errors.New("ignored"))
	assert.NoError(t, tel.Journal("/nonexistent/progress.jsonl"))
	assert.NoError(t, tel.Close())
}
