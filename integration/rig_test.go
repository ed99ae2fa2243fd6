//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	rigctld "github.com/wagiedev/rigctld-sdk-go"
)

func TestLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := requireRigctld(t).WithPort(freePort(t))

	handle, err := rigctld.Spawn(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, rigctld.DaemonReady, handle.State())
	require.True(t, handle.Running())

	rig := dial(t, ctx, cfg)
	require.NoError(t, rig.Close())

	require.NoError(t, handle.Stop(ctx))
	require.Equal(t, rigctld.DaemonStopped, handle.State())
	require.False(t, handle.Running())
	require.True(t, portFree(cfg.Addr()))

	require.NoError(t, handle.Stop(ctx), "second stop is a no-op")
}

func TestDaemonNotRunning(t *testing.T) {
	_, err := rigctld.Dial(context.Background(), "127.0.0.1", freePort(t))

	connErr, ok := errors.AsType[*rigctld.ConnectionError](err)
	require.True(t, ok, "expected ConnectionError, got %v", err)
	require.Equal(t, rigctld.ConnectionRefused, connErr.Kind)
}

func TestVersion(t *testing.T) {
	cfg := requireRigctld(t)

	version, err := rigctld.DaemonVersion(context.Background(), cfg.Program)
	require.NoError(t, err)
	require.Contains(t, version, "Hamlib")
}

func TestRigFrequency(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, _ := spawnDummy(t, ctx)
	rig := dial(t, ctx, cfg)

	before, err := rig.GetFrequency(ctx)
	require.NoError(t, err)
	require.NotEqual(t, float64(7123000), before)

	require.NoError(t, rig.SetFrequency(ctx, 7123000))

	after, err := rig.GetFrequency(ctx)
	require.NoError(t, err)
	require.Equal(t, float64(7123000), after)
}

func TestRigMode(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, _ := spawnDummy(t, ctx)
	rig := dial(t, ctx, cfg)

	modeBefore, passbandBefore, err := rig.GetMode(ctx)
	require.NoError(t, err)
	require.NotEqual(t, rigctld.ModeLSB, modeBefore)
	require.NotEqual(t, uint32(1234), passbandBefore)

	require.NoError(t, rig.SetMode(ctx, rigctld.ModeLSB, 1234))

	modeAfter, passbandAfter, err := rig.GetMode(ctx)
	require.NoError(t, err)
	require.Equal(t, rigctld.ModeLSB, modeAfter)
	require.Equal(t, uint32(1234), passbandAfter)
}

func TestRigPowerState(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, _ := spawnDummy(t, ctx)
	rig := dial(t, ctx, cfg)

	state, err := rig.GetPowerState(ctx)
	require.NoError(t, err)
	require.Equal(t, rigctld.PowerOn, state)
}

func TestSamePortTwice(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, first := spawnDummy(t, ctx)

	// The first daemon answers the probe, so the second spawn reports Ready
	// and then dies on bind.
	second, err := rigctld.Spawn(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(func() { _ = second.Stop(context.Background()) })

	select {
	case <-second.Exited():
	case <-ctx.Done():
		t.Fatal("second rigctld kept running on a taken port")
	}

	require.Equal(t, rigctld.DaemonCrashed, second.State())
	require.True(t, first.Running())

	rig := dial(t, ctx, cfg)

	_, err = rig.GetFrequency(ctx)
	require.NoError(t, err)
}

func TestScenarioPort8001(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := requireRigctld(t).WithPort(8001)
	if !portFree(cfg.Addr()) {
		t.Skip("port 8001 in use")
	}

	handle, err := rigctld.Spawn(ctx, cfg)
	require.NoError(t, err)

	rig := dial(t, ctx, cfg)

	hz, err := rigctld.ParseFrequency("7123.4 kHz")
	require.NoError(t, err)
	require.NoError(t, rig.SetFrequency(ctx, hz))

	got, err := rig.GetFrequency(ctx)
	require.NoError(t, err)
	require.Equal(t, float64(7123400), got)

	require.NoError(t, rig.Close())
	require.NoError(t, handle.Stop(ctx))
	require.True(t, portFree(cfg.Addr()))
}

// TestDeviceIC7200 needs a radio: set RIGCTLD_IC7200_DEVICE=/dev/ttyUSB0.
func TestDeviceIC7200(t *testing.T) {
	device := os.Getenv("RIGCTLD_IC7200_DEVICE")
	if device == "" {
		t.Skip("RIGCTLD_IC7200_DEVICE not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	speed := 19200
	if s := os.Getenv("RIGCTLD_IC7200_SPEED"); s != "" {
		var err error

		speed, err = strconv.Atoi(s)
		require.NoError(t, err)
	}

	cfg := requireRigctld(t).
		WithPort(freePort(t)).
		WithModel(3061).
		WithSerialSpeed(speed).
		WithCIVAddress(0x76).
		WithRigFile(device)

	handle, err := rigctld.Spawn(ctx, cfg)
	require.NoError(t, err)

	defer func() { require.NoError(t, handle.Stop(context.Background())) }()

	rig := dial(t, ctx, cfg)

	_, err = rig.GetFrequency(ctx)
	require.NoError(t, err)

	_, _, err = rig.GetMode(ctx)
	require.NoError(t, err)
}
