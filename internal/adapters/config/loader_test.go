package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rivebuild/internal/adapters/config"
	"go.trai.ch/rivebuild/internal/core/domain"
	"go.trai.ch/rivebuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func noEnv(string) string { return "" }

func newLoader(t *testing.T, getenv func(string) string) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	return config.NewLoaderWithEnv(mockLogger, getenv)
}

func TestLoad_Success(t *testing.T) {
	content := `
version: "1"
runtime: /src/rive-runtime
gm: ../GMPlugin
out: build/out
generator: build_rive.sh
macosDeploymentTarget: "12.0"
state: state/artifacts.json
targets: [rive, rive_decoders]
testTargets: [gms]
`
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "rivebuild.yaml"), []byte(content), 0o600))

	project, err := newLoader(t, noEnv).Load(root, "")
	require.NoError(t, err)

	assert.Equal(t, root, project.PluginRoot)
	assert.Equal(t, "/src/rive-runtime", project.Runtime)
	assert.Equal(t, filepath.Join(root, "..", "GMPlugin"), project.GM)
	assert.Equal(t, filepath.Join(root, "build", "out"), project.OutRoot)
	assert.Equal(t, "build_rive.sh", project.Generator)
	assert.Equal(t, "12.0", project.MacDeploymentTarget)
	assert.Equal(t, filepath.Join(root, "state", "artifacts.json"), project.StatePath)
	assert.Equal(t, []string{"rive", "rive_decoders"}, project.Targets)
	assert.Equal(t, []string{"gms"}, project.TestTargets)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	root := t.TempDir()

	project, err := newLoader(t, noEnv).Load(root, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "..", "..", "..", "runtime"), project.Runtime)
	assert.Equal(t, filepath.Join(root, "..", "GM"), project.GM)
	assert.Empty(t, project.OutRoot, "out root defaults to the runtime checkout")
	assert.Equal(t, domain.DefaultGenerator, project.Generator)
	assert.Equal(t, domain.DefaultMacDeploymentTarget, project.MacDeploymentTarget)
	assert.Equal(t, filepath.Join(root, ".rivebuild", "state.json"), project.StatePath)
	assert.Equal(t, domain.DefaultTargets, project.Targets)
	assert.Equal(t, domain.DefaultTestTargets, project.TestTargets)

	project.Targets[0] = "mutated"
	assert.Equal(t, "rive", domain.DefaultTargets[0], "defaults are copied")
}

func TestLoad_EnvironmentOverridesOut(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "rivebuild.yaml"), []byte("out: from-file\n"), 0o600))

	getenv := func(key string) string {
		if key == config.OutEnvVar {
			return "/tmp/rive-out"
		}
		return ""
	}

	project, err := newLoader(t, getenv).Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/rive-out", project.OutRoot)
}

func TestLoad_ExplicitPath(t *testing.T) {
	root := t.TempDir()
	other := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(other, []byte("generator: premake5-beta\n"), 0o600))

	project, err := newLoader(t, noEnv).Load(root, other)
	require.NoError(t, err)
	assert.Equal(t, "premake5-beta", project.Generator)
	assert.Equal(t, root, project.PluginRoot)
}

func TestLoad_EmptyFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "rivebuild.yaml"), nil, 0o600))

	project, err := newLoader(t, noEnv).Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGenerator, project.Generator)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		is      error
	}{
		{name: "malformed yaml", content: "targets: [rive\n"},
		{name: "unknown key", content: "tragets: [rive]\n"},
		{name: "wrong type", content: "targets: rive: x\n"},
		{name: "unsupported version", content: "version: \"2\"\n", is: config.ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(root, "rivebuild.yaml"), []byte(tt.content), 0o600))

			_, err := newLoader(t, noEnv).Load(root, "")
			require.Error(t, err)
			if tt.is != nil {
				require.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestLoad_ReadError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "rivebuild.yaml"), 0o750))

	_, err := newLoader(t, noEnv).Load(root, "")
	require.Error(t, err)
}
