//go:build unix

package shell

import (
	"os/exec"
	"syscall"
)

// configureProcess starts the command in its own process group. Cancelling
// kills the whole group, so compilers spawned by make or the generator stop too.
func configureProcess(proc *exec.Cmd) {
	proc.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	proc.Cancel = func() error {
		return syscall.Kill(-proc.Process.Pid, syscall.SIGKILL)
	}
}
