package ports

import "go.trai.ch/rivebuild/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path, resolving relative paths against pluginRoot.
	// A missing file yields the default project.
	Load(pluginRoot, path string) (*domain.Project, error)
}
