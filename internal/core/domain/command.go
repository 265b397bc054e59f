package domain

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// CleanArg is the argument that turns a build_rive.sh invocation into its clean variant.
	CleanArg = "clean"
	// BuildRiveScript is the generator wrapper shipped with the runtime.
	BuildRiveScript = "build_rive.sh"
)

// Command is a single external process invocation.
type Command struct {
	// Name is the executable, resolved against PATH when not absolute.
	Name string
	// Args are the arguments passed to the executable.
	Args []string
	// Dir is the working directory of the process.
	Dir string
	// Env holds overrides merged over the process environment.
	Env map[string]string
}

// Argv returns the executable followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// Clone returns a deep copy of the command.
func (c Command) Clone() Command {
	c.Args = slices.Clone(c.Args)
	if c.Env != nil {
		c.Env = maps.Clone(c.Env)
	}
	return c
}

// CleanVariant returns a copy of the command with the clean argument inserted first.
func (c Command) CleanVariant() Command {
	clean := c.Clone()
	clean.Args = append([]string{CleanArg}, c.Args...)
	return clean
}

// AcceptsCleanArg reports whether a generator takes CleanArg as its first argument.
func AcceptsCleanArg(generator string) bool {
	return strings.TrimSuffix(filepath.Base(generator), filepath.Ext(generator)) ==
		strings.TrimSuffix(BuildRiveScript, filepath.Ext(BuildRiveScript))
}

// WithEnv returns a copy of the command with extra environment overrides applied.
// Overrides already present on the command win.
func (c Command) WithEnv(env map[string]string) Command {
	if len(env) == 0 {
		return c
	}
	merged := maps.Clone(env)
	maps.Copy(merged, c.Env)
	c.Env = merged
	c.Args = slices.Clone(c.Args)
	return c
}

// CompileAttempt is one invocation of the generator or the toolchain for a
// (platform, architecture, variant) tuple. It runs once and, when its output
// asks for a clean rebuild, once more with Clean.
type CompileAttempt struct {
	Label   string
	Command Command
	Clean   *Command
	// CleanDir is deleted before Clean runs.
	CleanDir string
	Status   Status
}

// NewCompileAttempt creates an attempt without a clean variant.
func NewCompileAttempt(label string, cmd Command) *CompileAttempt {
	return &CompileAttempt{Label: label, Command: cmd}
}

// NewGeneratorAttempt creates an attempt with the clean variant of the generator.
// build_rive.sh is rerun with CleanArg first. Any other generator (premake5) is
// rerun unchanged after outDir, the tree it writes, is deleted.
func NewGeneratorAttempt(label string, cmd Command, outDir string) *CompileAttempt {
	if AcceptsCleanArg(cmd.Name) {
		clean := cmd.CleanVariant()
		return &CompileAttempt{Label: label, Command: cmd, Clean: &clean}
	}
	clean := cmd.Clone()
	return &CompileAttempt{Label: label, Command: cmd, Clean: &clean, CleanDir: outDir}
}

// ToolEnv is the prepared native toolchain of a platform.
type ToolEnv struct {
	// BuildTool is the executable that compiles generated projects (MSBuild or make).
	BuildTool string
	// Env holds environment overrides for every command of the platform.
	Env map[string]string
}
