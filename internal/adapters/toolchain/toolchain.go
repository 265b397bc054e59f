// Package toolchain prepares the native build tools of each target platform.
package toolchain

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/rivebuild/internal/core/domain"
	"go.trai.ch/rivebuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// requiredVisualStudio is the product line MSBuild is taken from.
	requiredVisualStudio = "2022"
	// makeTool builds gmake2 projects.
	makeTool = "make"
	// vswhereFallback is where the Visual Studio installer places vswhere.
	vswhereFallback = `Microsoft Visual Studio\Installer\vswhere.exe`
)

var _ ports.Toolchain = (*Toolchain)(nil)

// Toolchain implements ports.Toolchain for MSBuild and the Xcode command line tools.
type Toolchain struct {
	logger ports.Logger
	host   Host

	mu      sync.Mutex
	msbuild string
	sdkPath string
}

// New creates a Toolchain probing the local machine.
func New(logger ports.Logger) *Toolchain {
	return NewWithHost(logger, LocalHost())
}

// NewWithHost creates a Toolchain probing host.
func NewWithHost(logger ports.Logger, host Host) *Toolchain {
	return &Toolchain{logger: logger, host: host}
}

// Prepare locates the build tool of platform and returns the environment its
// commands run with. Lookups are cached for the lifetime of the Toolchain.
func (t *Toolchain) Prepare(ctx context.Context, platform domain.Platform, project *domain.Project) (domain.ToolEnv, error) {
	switch platform {
	case domain.PlatformWindows:
		msbuild, err := t.findMSBuild(ctx)
		if err != nil {
			return domain.ToolEnv{}, err
		}
		return domain.ToolEnv{BuildTool: msbuild}, nil

	case domain.PlatformAndroid:
		msbuild, err := t.findMSBuild(ctx)
		if err != nil {
			return domain.ToolEnv{}, err
		}
		env := map[string]string{}
		if ndk := t.host.Getenv("NDK_ROOT"); ndk != "" && t.host.Getenv("NDK_PATH") == "" {
			env["NDK_PATH"] = ndk
		}
		return domain.ToolEnv{BuildTool: msbuild, Env: env}, nil

	case domain.PlatformMac, domain.PlatformIOS:
		if _, err := t.findSDK(ctx); err != nil {
			return domain.ToolEnv{}, err
		}
		return domain.ToolEnv{
			BuildTool: makeTool,
			Env:       map[string]string{"MACOSX_DEPLOYMENT_TARGET": project.MacDeploymentTarget},
		}, nil

	default:
		return domain.ToolEnv{}, zerr.With(zerr.Wrap(domain.ErrInvalidPlatform, "no toolchain"), "platform", string(platform))
	}
}

// findMSBuild asks vswhere for MSBuild installations and picks the Visual Studio 2022 one.
func (t *Toolchain) findMSBuild(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.msbuild != "" {
		return t.msbuild, nil
	}

	out, err := t.vswhere(ctx, "-products", "*", "-requires", "Microsoft.Component.MSBuild", "-find", "MSBuild", "-format", "json", "-utf8")
	if err != nil {
		return "", zerr.Wrap(errors.Join(domain.ErrMSBuildNotFound, err), "failed to run vswhere")
	}

	var installs []string
	if err := json.Unmarshal(out, &installs); err != nil {
		return "", zerr.Wrap(err, "failed to parse vswhere output")
	}

	for _, dir := range installs {
		if !strings.Contains(dir, requiredVisualStudio) {
			continue
		}
		candidate := filepath.Join(dir, "Current", "Bin", "MSBuild.exe")
		if !t.host.Exists(candidate) {
			return "", zerr.With(zerr.Wrap(domain.ErrMSBuildNotFound, "invalid MSBuild path"), "path", candidate)
		}
		t.logger.Info("Using MSBuild at " + candidate)
		t.msbuild = candidate
		return candidate, nil
	}

	return "", zerr.With(zerr.Wrap(domain.ErrMSBuildNotFound, "no Visual Studio 2022 installation"), "installations", len(installs))
}

// vswhere runs vswhere from PATH, falling back to the installer location.
func (t *Toolchain) vswhere(ctx context.Context, args ...string) ([]byte, error) {
	out, err := t.host.Output(ctx, "vswhere", args...)
	if err == nil {
		return out, nil
	}
	programFiles := t.host.Getenv("ProgramFiles(x86)")
	if programFiles == "" {
		return nil, err
	}
	return t.host.Output(ctx, filepath.Join(programFiles, vswhereFallback), args...)
}

// findSDK resolves the macOS SDK used by the Xcode command line tools.
func (t *Toolchain) findSDK(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sdkPath != "" {
		return t.sdkPath, nil
	}

	out, err := t.host.Output(ctx, "xcrun", "--sdk", "macosx", "--show-sdk-path")
	if err != nil {
		return "", zerr.Wrap(err, "failed to determine macOS SDK path")
	}
	t.sdkPath = strings.TrimSpace(string(out))
	t.logger.Info("Using SDK at: " + t.sdkPath)
	return t.sdkPath, nil
}
