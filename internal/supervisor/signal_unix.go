//go:build unix

package supervisor

import (
	stderrors "errors"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setProcessGroup starts the child as the leader of a new process group so
// signals reach anything it forks.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func terminateGroup(pid int) error {
	return signalGroup(pid, unix.SIGTERM)
}

func killGroup(pid int) error {
	return signalGroup(pid, unix.SIGKILL)
}

func signalGroup(pid int, sig unix.Signal) error {
	err := unix.Kill(-pid, sig)
	if stderrors.Is(err, unix.ESRCH) {
		return nil
	}

	return err
}

// processAlive reports whether pid still exists (zombies included).
func processAlive(pid int) bool {
	return unix.Kill(pid, 0) == nil
}
