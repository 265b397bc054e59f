// Package shell provides the command runner adapter.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"go.trai.ch/rivebuild/internal/core/domain"
	"go.trai.ch/rivebuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxLineSize bounds a single line of build output. Linkers print long lines.
const maxLineSize = 4 * 1024 * 1024

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
	stdout io.Writer
	stderr io.Writer

	errorColor *color.Color
	warnColor  *color.Color
}

// NewRunner creates a Runner echoing to the console.
func NewRunner(logger ports.Logger) *Runner {
	return NewRunnerWithOutput(logger, color.Output, color.Error)
}

// NewRunnerWithOutput creates a Runner echoing to the given writers.
func NewRunnerWithOutput(logger ports.Logger, stdout, stderr io.Writer) *Runner {
	return &Runner{
		logger:     logger,
		stdout:     stdout,
		stderr:     stderr,
		errorColor: color.New(color.FgRed, color.Bold),
		warnColor:  color.New(color.FgYellow),
	}
}

// Run executes the command with stdout and stderr merged into one pipe and
// classifies every line it prints.
//
// The process environment is os.Environ() overridden by cmd.Env.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) (domain.Status, error) {
	if cmd.Name == "" {
		return domain.StatusFailed, domain.ErrEmptyCommand
	}

	r.logger.Info("Executing " + Display(cmd))

	cmdEnv := resolveEnvironment(os.Environ(), cmd.Env)

	// Bare names are resolved against the merged PATH. Relative paths are
	// resolved by os/exec against the working directory.
	executable := cmd.Name
	if filepath.Base(cmd.Name) == cmd.Name {
		if lp, err := lookPath(cmd.Name, cmdEnv); err == nil {
			executable = lp
		}
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return domain.StatusFailed, zerr.Wrap(err, "failed to create output pipe")
	}
	defer pr.Close() //nolint:errcheck // read end, nothing to flush

	proc := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // build commands are assembled by the planner
	if len(proc.Args) > 0 {
		proc.Args[0] = cmd.Name
	}
	proc.Dir = cmd.Dir
	proc.Env = cmdEnv
	proc.Stdout = pw
	proc.Stderr = pw
	configureProcess(proc)

	if err := proc.Start(); err != nil {
		_ = pw.Close()
		err = zerr.With(zerr.Wrap(err, "failed to start command"), "command", cmd.Name)
		return domain.StatusFailed, zerr.With(err, "dir", cmd.Dir)
	}
	// The child holds its own copy of the write end. Closing ours lets the
	// reader see EOF once the child exits.
	_ = pw.Close()

	// Processes that escaped the kill may still hold the write end. Closing
	// the read end on cancellation unblocks the scanner.
	stop := context.AfterFunc(ctx, func() { _ = pr.Close() })
	defer stop()

	status, readErr := r.drain(ctx, pr)
	waitErr := proc.Wait()

	if ctx.Err() != nil {
		return domain.StatusFailed, zerr.With(zerr.Wrap(ctx.Err(), "command interrupted"), "command", cmd.Name)
	}
	if readErr != nil {
		return domain.StatusFailed, zerr.With(readErr, "command", cmd.Name)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return domain.StatusFailed, zerr.With(zerr.Wrap(waitErr, "failed to wait for command"), "command", cmd.Name)
		}
		// Only the output decides the status.
		r.logger.Warn(fmt.Sprintf("%s exited with code %d", cmd.Name, exitErr.ExitCode()))
	}

	return status, nil
}

// drain reads the merged output line by line until EOF.
func (r *Runner) drain(ctx context.Context, out io.Reader) (domain.Status, error) {
	vertex, hasVertex := ports.VertexFromContext(ctx)

	status := domain.StatusSuccess
	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Text()

		switch Classify(line) {
		case LineNeedsClean:
			status = domain.StatusNeedsClean
			_, _ = r.warnColor.Fprintln(r.stderr, line)
			if hasVertex {
				_, _ = fmt.Fprintln(vertex.Stderr(), line)
			}
		case LineError:
			if status != domain.StatusNeedsClean {
				status = domain.StatusFailed
			}
			_, _ = r.errorColor.Fprintln(r.stderr, line)
			if hasVertex {
				_, _ = fmt.Fprintln(vertex.Stderr(), line)
			}
		default:
			_, _ = fmt.Fprintln(r.stdout, line)
			if hasVertex {
				_, _ = fmt.Fprintln(vertex.Stdout(), line)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		// Keep the child from blocking on a full pipe.
		_, _ = io.Copy(io.Discard, out)
		return domain.StatusFailed, zerr.Wrap(err, "failed to read command output")
	}
	return status, nil
}

// resolveEnvironment merges environment variables with the defined priority.
// Overrides replace system values, except PATH which is prepended.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	order := make([]string, 0, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for k, v := range overrides {
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		if k == "PATH" {
			if sysPath := envMap[k]; sysPath != "" && v != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
