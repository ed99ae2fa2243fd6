//go:build !unix

package supervisor

import (
	"os"
	"os/exec"
)

func setProcessGroup(*exec.Cmd) {}

// Without process groups, termination signals only the direct child and
// there is no graceful signal, so both steps kill.
func terminateGroup(pid int) error {
	return killGroup(pid)
}

func killGroup(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}

	return p.Kill()
}

func processAlive(pid int) bool {
	_, err := os.FindProcess(pid)

	return err == nil
}
