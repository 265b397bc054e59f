// Package app implements the application layer for rivebuild.
package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"

	"go.trai.ch/rivebuild/internal/core/domain"
	"go.trai.ch/rivebuild/internal/core/ports"
	"go.trai.ch/rivebuild/internal/engine/pipeline"
	"go.trai.ch/rivebuild/internal/engine/plan"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	toolchain    ports.Toolchain
	pipeline     *pipeline.Pipeline
	verifier     ports.Verifier
	openStore    ports.StoreOpener
	telemetry    ports.Telemetry
	logger       ports.Logger
	goos         string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	toolchain ports.Toolchain,
	pipe *pipeline.Pipeline,
	verifier ports.Verifier,
	openStore ports.StoreOpener,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		toolchain:    toolchain,
		pipeline:     pipe,
		verifier:     verifier,
		openStore:    openStore,
		telemetry:    telemetry,
		logger:       logger,
		goos:         runtime.GOOS,
	}
}

// WithHostOS overrides the host operating system the platform set is derived from.
func (a *App) WithHostOS(goos string) *App {
	a.goos = goos
	return a
}

// Options configures a run.
type Options struct {
	// PluginRoot is the plugin receiving the artifacts. Defaults to the working directory.
	PluginRoot string
	// ConfigPath is the configuration file, relative to PluginRoot.
	ConfigPath string
	// Runtime overrides the runtime checkout location.
	Runtime string
	// Tests also builds the test targets.
	Tests bool
	// RawShaders passes --raw_shaders to the generator.
	RawShaders bool
	// Platforms restricts the build to these platforms.
	Platforms []string
}

// Build compiles every selected platform in release then debug and finishes with the include sync.
func (a *App) Build(ctx context.Context, opts Options) (*pipeline.Report, error) {
	project, err := a.load(opts)
	if err != nil {
		return nil, err
	}

	platforms, err := a.selectPlatforms(project)
	if err != nil {
		return nil, err
	}

	store, err := a.openRun(project)
	if err != nil {
		return nil, err
	}

	planner := plan.New(project)
	plans := make([]*domain.Plan, 0, 2*len(platforms)+1)
	for _, platform := range platforms {
		tool, err := a.toolchain.Prepare(ctx, platform, project)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to prepare toolchain"), "platform", platform.String())
		}
		for _, variant := range domain.Variants {
			p, err := planner.Platform(platform, variant, tool)
			if err != nil {
				return nil, err
			}
			plans = append(plans, p)
		}
	}
	plans = append(plans, planner.Includes(a.goos))

	report, err := a.pipeline.Run(ctx, store, plans...)
	if err != nil {
		return report, zerr.Wrap(err, "build execution failed")
	}
	a.logger.Info("Built " + strconv.Itoa(len(report.Copied)) + " artifacts")
	return report, nil
}

// SyncIncludes replaces the header and shader trees of the plugin without compiling.
func (a *App) SyncIncludes(ctx context.Context, opts Options) (*pipeline.Report, error) {
	project, err := a.load(opts)
	if err != nil {
		return nil, err
	}

	store, err := a.openRun(project)
	if err != nil {
		return nil, err
	}

	report, err := a.pipeline.Run(ctx, store, plan.New(project).Includes(a.goos))
	if err != nil {
		return report, zerr.Wrap(err, "include sync failed")
	}
	return report, nil
}

// Verify checks every recorded artifact against the plugin tree.
func (a *App) Verify(ctx context.Context, opts Options) ([]domain.ArtifactProblem, error) {
	project, err := a.configLoader.Load(opts.PluginRoot, opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	store, err := a.openStore(project.StatePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open artifact store")
	}

	records, err := store.All()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read artifact records")
	}

	problems, err := a.verifier.VerifyArtifacts(ctx, records)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to verify artifacts")
	}

	for _, p := range problems {
		if p.Missing {
			a.logger.Warn("missing artifact " + p.Destination)
			continue
		}
		a.logger.Warn("modified artifact " + p.Destination + " (expected " + p.Expected + ", got " + p.Actual + ")")
	}
	if len(problems) > 0 {
		return problems, zerr.With(zerr.Wrap(domain.ErrArtifactMismatch, "artifacts changed since the last build"), "count", len(problems))
	}

	a.logger.Info("Verified " + strconv.Itoa(len(records)) + " artifacts")
	return nil, nil
}

// load resolves the project and applies command line overrides.
func (a *App) load(opts Options) (*domain.Project, error) {
	project, err := a.configLoader.Load(opts.PluginRoot, opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Runtime != "" {
		rt, err := filepath.Abs(opts.Runtime)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to resolve runtime path")
		}
		project.Runtime = rt
	}
	if project.OutRoot == "" {
		project.OutRoot = filepath.Join(project.Runtime, "out")
	}
	project.Tests = project.Tests || opts.Tests
	project.RawShaders = project.RawShaders || opts.RawShaders

	for _, name := range opts.Platforms {
		p, err := domain.ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(project.Platforms, p) {
			project.Platforms = append(project.Platforms, p)
		}
	}

	info, err := os.Stat(project.Runtime)
	if err != nil || !info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrRuntimeNotFound, "runtime checkout not found"), "path", project.Runtime)
		}
		return nil, zerr.Wrap(err, "failed to stat runtime")
	}

	a.logger.Info("using runtime location " + project.Runtime)
	return project, nil
}

// openRun opens the artifact store and attaches the progress journal next to it.
func (a *App) openRun(project *domain.Project) (ports.ArtifactStore, error) {
	store, err := a.openStore(project.StatePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open artifact store")
	}
	if err := a.telemetry.Journal(project.JournalPath()); err != nil {
		return nil, zerr.Wrap(err, "failed to open progress journal")
	}
	return store, nil
}

// selectPlatforms returns the host platforms in build order, restricted to the requested ones.
func (a *App) selectPlatforms(project *domain.Project) ([]domain.Platform, error) {
	host, err := domain.HostPlatforms(a.goos)
	if err != nil {
		return nil, err
	}
	if len(project.Platforms) == 0 {
		return host, nil
	}

	for _, p := range project.Platforms {
		if !slices.Contains(host, p) {
			return nil, zerr.With(zerr.Wrap(domain.ErrPlatformNotBuildable, "platform not built by this host"),
				"platform", p.String())
		}
	}

	selected := make([]domain.Platform, 0, len(project.Platforms))
	for _, p := range host {
		if slices.Contains(project.Platforms, p) {
			selected = append(selected, p)
		}
	}
	return selected, nil
}
