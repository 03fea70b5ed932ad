//go:build !windows

package converter

import (
	"os/exec"
	"syscall"
)

func configureDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

func shellCommand(path string) *exec.Cmd {
	return exec.Command("/bin/sh", "-c", `exec "$0"`, path)
}
