package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rivebuild/cmd/rivebuild/commands"
	"go.trai.ch/rivebuild/internal/adapters/telemetry"
	"go.trai.ch/rivebuild/internal/app"
	"go.trai.ch/rivebuild/internal/build"
	"go.trai.ch/rivebuild/internal/core/domain"
	"go.trai.ch/rivebuild/internal/core/ports"
	"go.trai.ch/rivebuild/internal/core/ports/mocks"
	"go.trai.ch/rivebuild/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader    *mocks.MockConfigLoader
	toolchain *mocks.MockToolchain
	verifier  *mocks.MockVerifier
	store     *mocks.MockArtifactStore
	runner    *mocks.MockCommandRunner
	sync      *mocks.MockSynchronizer
	cli       *commands.CLI
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		toolchain: mocks.NewMockToolchain(ctrl),
		verifier:  mocks.NewMockVerifier(ctrl),
		store:     mocks.NewMockArtifactStore(ctrl),
		runner:    mocks.NewMockCommandRunner(ctrl),
		sync:      mocks.NewMockSynchronizer(ctrl),
	}
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	pipe := pipeline.New(f.runner, f.sync, mocks.NewMockHasher(ctrl), telemetry.NewNoOp(), logger)
	opener := func(string) (ports.ArtifactStore, error) { return f.store, nil }
	a := app.New(f.loader, f.toolchain, pipe, f.verifier, opener, telemetry.NewNoOp(), logger).WithHostOS("darwin")
	f.cli = commands.New(a)
	return f
}

func project(t *testing.T) *domain.Project {
	t.Helper()
	return &domain.Project{
		PluginRoot: "/plugin",
		Runtime:    t.TempDir(),
		Generator:  domain.DefaultGenerator,
		Targets:    []string{"rive"},
	}
}

func TestBuild_FlagsReachApp(t *testing.T) {
	f := newFixture(t)
	proj := project(t)
	runtimeDir := t.TempDir()

	f.loader.EXPECT().Load("/plugin", "custom.yaml").Return(proj, nil)
	f.toolchain.EXPECT().Prepare(gomock.Any(), domain.PlatformMac, proj).Return(domain.ToolEnv{BuildTool: "make"}, nil)
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cmd domain.Command) (domain.Status, error) {
		if cmd.Name == domain.DefaultGenerator {
			assert.Contains(t, cmd.Args, "--raw_shaders")
		}
		return domain.StatusSuccess, nil
	}).AnyTimes()
	f.sync.EXPECT().Sync(gomock.Any()).Return(nil, nil).AnyTimes()
	f.sync.EXPECT().Reset(gomock.Any()).Return(nil).Times(2)
	f.sync.EXPECT().Mirror(gomock.Any()).Return(nil).Times(5)
	f.sync.EXPECT().ConvertShaders(gomock.Any()).Return(nil, nil)

	f.cli.SetArgs([]string{"build", runtimeDir, "-C", "/plugin", "-c", "custom.yaml", "-t", "-r", "-p", "mac"})
	require.NoError(t, f.cli.Execute(context.Background()))

	assert.Equal(t, runtimeDir, proj.Runtime)
	assert.True(t, proj.Tests)
	assert.True(t, proj.RawShaders)
	assert.Equal(t, []domain.Platform{domain.PlatformMac}, proj.Platforms)
}

func TestBuild_TooManyArgs(t *testing.T) {
	f := newFixture(t)
	f.cli.SetArgs([]string{"build", "a", "b"})
	assert.Error(t, f.cli.Execute(context.Background()))
}

func TestSyncIncludes(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".", "").Return(project(t), nil)
	f.sync.EXPECT().Reset(gomock.Any()).Return(nil).Times(2)
	f.sync.EXPECT().Mirror(gomock.Any()).Return(nil).Times(5)
	f.sync.EXPECT().ConvertShaders(gomock.Any()).Return(nil, nil)

	f.cli.SetArgs([]string{"sync-includes"})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestVerify_Mismatch(t *testing.T) {
	f := newFixture(t)
	records := []domain.ArtifactRecord{{Destination: "/plugin/rive.a", Hash: "1"}}
	f.loader.EXPECT().Load(".", "").Return(project(t), nil)
	f.store.EXPECT().All().Return(records, nil)
	f.verifier.EXPECT().VerifyArtifacts(gomock.Any(), records).
		Return([]domain.ArtifactProblem{{Destination: "/plugin/rive.a", Missing: true}}, nil)

	f.cli.SetArgs([]string{"verify"})
	err := f.cli.Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrArtifactMismatch)
}

func TestVersion(t *testing.T) {
	f := newFixture(t)
	var out bytes.Buffer
	f.cli.SetOutput(&out)
	f.cli.SetArgs([]string{"version"})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Equal(t, "rivebuild version "+build.Version+"\n", out.String())
}

func TestRoot_Help(t *testing.T) {
	f := newFixture(t)
	var out bytes.Buffer
	f.cli.SetOutput(&out)
	f.cli.SetArgs([]string{"--help"})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "sync-includes")
}
