// Package config provides the configuration loader for rivebuild.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/rivebuild/internal/core/domain"
	"go.trai.ch/rivebuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// OutEnvVar overrides the out root of every build tree.
const OutEnvVar = "RIVE_BUILD_OUT"

// ErrUnsupportedVersion is returned when the configuration declares an unknown schema version.
var ErrUnsupportedVersion = zerr.New("unsupported configuration version")

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
	getenv func(string) string
}

// NewLoader creates a new Loader reading overrides from the process environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger, getenv: os.Getenv}
}

// NewLoaderWithEnv creates a new Loader reading overrides through getenv.
func NewLoaderWithEnv(logger ports.Logger, getenv func(string) string) *Loader {
	return &Loader{logger: logger, getenv: getenv}
}

// Load reads the configuration file at path, resolving it and every relative
// path it contains against pluginRoot. A missing file yields the defaults.
func (l *Loader) Load(pluginRoot, path string) (*domain.Project, error) {
	root, err := filepath.Abs(pluginRoot)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve plugin root"), "path", pluginRoot)
	}

	if path == "" {
		path = domain.DefaultConfigFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	var file Rivefile
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.logger.Info("no configuration at " + path + ", using defaults")
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	default:
		if file, err = parse(data); err != nil {
			return nil, zerr.With(err, "path", path)
		}
	}

	return l.resolve(root, file), nil
}

// parse decodes a configuration document, rejecting unknown keys.
func parse(data []byte) (Rivefile, error) {
	var file Rivefile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Rivefile{}, zerr.Wrap(err, "failed to parse config file")
	}

	if file.Version != "" && file.Version != SupportedVersion {
		return Rivefile{}, zerr.With(zerr.Wrap(ErrUnsupportedVersion, "cannot load configuration"), "version", file.Version)
	}
	return file, nil
}

// resolve applies defaults and the environment override on top of the file.
func (l *Loader) resolve(root string, file Rivefile) *domain.Project {
	project := &domain.Project{
		PluginRoot:          root,
		Runtime:             pathOr(root, file.Runtime, filepath.Join("..", "..", "..", "runtime")),
		GM:                  pathOr(root, file.GM, filepath.Join("..", "GM")),
		Generator:           valueOr(file.Generator, domain.DefaultGenerator),
		MacDeploymentTarget: valueOr(file.MacOSDeploymentTarget, domain.DefaultMacDeploymentTarget),
		StatePath:           pathOr(root, file.State, domain.DefaultStatePath),
		Targets:             listOr(file.Targets, domain.DefaultTargets),
		TestTargets:         listOr(file.TestTargets, domain.DefaultTestTargets),
	}

	if file.Out != "" {
		project.OutRoot = pathOr(root, file.Out, "")
	}
	if env := l.getenv(OutEnvVar); env != "" {
		project.OutRoot = pathOr(root, env, "")
	}

	return project
}

func pathOr(root, value, fallback string) string {
	if value == "" {
		value = fallback
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func listOr(value, fallback []string) []string {
	if len(value) == 0 {
		return slices.Clone(fallback)
	}
	return slices.Clone(value)
}
