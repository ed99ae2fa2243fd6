//go:build integration

package integration

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	rigctld "github.com/wagiedev/rigctld-sdk-go"
)

// requireRigctld skips the test when no rigctld is installed.
func requireRigctld(t *testing.T) rigctld.DaemonConfig {
	t.Helper()

	cfg := rigctld.NewDaemonConfig()
	if !rigctld.DaemonExists(cfg.Program) {
		t.Skipf("%s not installed", cfg.Program)
	}

	return cfg
}

func freePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	return port
}

// spawnDummy runs the dummy rig on a free port and stops it on cleanup.
func spawnDummy(t *testing.T, ctx context.Context) (rigctld.DaemonConfig, *rigctld.DaemonHandle) {
	t.Helper()

	cfg := requireRigctld(t).WithPort(freePort(t))

	handle, err := rigctld.Spawn(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, handle.Stop(context.Background()))
	})

	return cfg, handle
}

func dial(t *testing.T, ctx context.Context, cfg rigctld.DaemonConfig) rigctld.Rig {
	t.Helper()

	rig, err := rigctld.Dial(ctx, cfg.Host, cfg.Port, rigctld.WithTimeout(time.Second))
	require.NoError(t, err)

	t.Cleanup(func() { _ = rig.Close() })

	return rig
}

func portFree(addr string) bool {
	conn, err := net.DialTimeout("tcp", addr, 200*time.Millisecond)
	if err != nil {
		return true
	}

	_ = conn.Close()

	return false
}
