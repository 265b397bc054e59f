// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/rivebuild/internal/core/domain"
)

// CommandRunner defines the interface for running external build commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd and classifies its combined output.
	//
	// The returned status is derived from the output text only. A non-zero exit
	// code does not fail the run. An error is returned when the process could
	// not be started or its output could not be read, together with StatusFailed.
	Run(ctx context.Context, cmd domain.Command) (domain.Status, error)
}
