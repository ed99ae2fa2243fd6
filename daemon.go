package rigctld

import (
	"context"

	"github.com/wagiedev/rigctld-sdk-go/internal/launch"
	"github.com/wagiedev/rigctld-sdk-go/internal/supervisor"
)

// Spawn starts rigctld with cfg and waits until its port accepts connections.
//
// The returned handle is Ready. The caller owns it and must call Stop.
// Spawn does not check whether the port is already in use; see LockPort.
//
// Errors are DaemonSpawnError with kind ExecutableNotFound, LaunchFailed
// (including an exit before the port opened) or ReadinessTimeout. A cancelled
// ctx kills the child and returns the context error.
func Spawn(ctx context.Context, cfg DaemonConfig, opts ...Option) (*DaemonHandle, error) {
	return supervisor.Spawn(ctx, cfg, applyOptions(opts))
}

// DaemonExists reports whether program resolves on PATH. Nothing is executed.
func DaemonExists(program string) bool {
	return launch.Exists(program)
}

// DaemonVersion runs "program --version" and returns its trimmed output.
func DaemonVersion(ctx context.Context, program string) (string, error) {
	return launch.Version(ctx, program)
}

// DaemonArgs returns the command line Spawn would pass to rigctld for cfg.
func DaemonArgs(cfg DaemonConfig) []string {
	return launch.BuildArgs(cfg)
}

// LockPort takes an exclusive advisory lock on port for the calling process.
// It returns ErrPortLocked when another lifecycle already holds it.
func LockPort(port int) (*PortLock, error) {
	return supervisor.LockPort(port)
}
