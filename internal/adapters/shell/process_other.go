//go:build !unix

package shell

import "os/exec"

// configureProcess keeps the default cancellation, which kills the direct child only.
func configureProcess(_ *exec.Cmd) {}
