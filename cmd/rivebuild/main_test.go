package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rivebuild/internal/app"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name         string
		args         func(pluginRoot string) []string
		expectedExit int
	}{
		{
			name:         "version",
			args:         func(_ string) []string { return []string{"version"} },
			expectedExit: 0,
		},
		{
			name:         "verify with empty state",
			args:         func(root string) []string { return []string{"verify", "-C", root} },
			expectedExit: 0,
		},
		{
			name: "build with missing runtime",
			args: func(root string) []string {
				return []string{"build", filepath.Join(root, "no-runtime"), "-C", root}
			},
			expectedExit: 1,
		},
		{
			name:         "unknown command",
			args:         func(_ string) []string { return []string{"deploy"} },
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			exit := run(tt.args(root))
			assert.Equal(t, tt.expectedExit, exit)
		})
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "rivebuild.yaml"), []byte("version: \"9\"\n"), 0o600))

	hostOS := func(a *app.App) { a.WithHostOS("darwin") }
	assert.Equal(t, 1, run([]string{"sync-includes", "-C", root}, hostOS))
}
