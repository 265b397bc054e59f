// Package main is the entry point for the rivebuild tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/grindlemire/graft"
	"go.trai.ch/rivebuild/cmd/rivebuild/commands"
	"go.trai.ch/rivebuild/internal/app"
	"go.trai.ch/rivebuild/internal/core/domain"
	_ "go.trai.ch/rivebuild/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string, opts ...func(*app.App)) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	defer func() { _ = components.Telemetry.Close() }()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		if !errors.Is(err, domain.ErrBuildExecutionFailed) {
			// Step failures are logged by the pipeline as they happen.
			components.Logger.Error(err)
		}
		_, _ = color.New(color.FgRed).Fprintf(color.Error, "Exiting due to errors...\n%+v\n", err)
		return 1
	}
	return 0
}
