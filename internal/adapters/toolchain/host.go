package toolchain

import (
	"context"
	"os"
	"os/exec"
)

// Host is the view of the machine the toolchain inspects.
type Host struct {
	// Output runs a program and returns its standard output.
	Output func(ctx context.Context, name string, args ...string) ([]byte, error)
	// Getenv reads an environment variable.
	Getenv func(key string) string
	// Exists reports whether a file exists.
	Exists func(path string) bool
}

// LocalHost inspects the running machine.
func LocalHost() Host {
	return Host{
		Output: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output() //nolint:gosec // fixed lookup commands
		},
		Getenv: os.Getenv,
		Exists: func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && !info.IsDir()
		},
	}
}
