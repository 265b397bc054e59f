package ports

import "go.trai.ch/rivebuild/internal/core/domain"

// Synchronizer defines the interface for placing build outputs into the plugin tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=synchronizer.go -destination=mocks/mock_synchronizer.go -package=mocks
type Synchronizer interface {
	// Sync copies the files selected by rule and returns what was written.
	// It returns domain.ErrSourceMissing without touching the destination when
	// rule.Src does not exist.
	Sync(rule domain.CopyRule) ([]domain.CopiedFile, error)

	// Mirror copies a whole directory tree.
	Mirror(rule domain.MirrorRule) error

	// Reset deletes a directory and optionally recreates it.
	Reset(rule domain.ResetRule) error

	// SimRename renames the static libraries of a simulator build.
	SimRename(rule domain.SimRenameRule) error

	// ConvertShaders copies minified generated shaders as shader includes.
	ConvertShaders(rule domain.ShaderRule) ([]domain.CopiedFile, error)
}
