package ports

import (
	"context"

	"go.trai.ch/rivebuild/internal/core/domain"
)

// Toolchain prepares the native toolchain of a target platform.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// Prepare locates the platform build tool and returns the environment
	// overrides every command of the platform runs with.
	Prepare(ctx context.Context, platform domain.Platform, project *domain.Project) (domain.ToolEnv, error)
}
