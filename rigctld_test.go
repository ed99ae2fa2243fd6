package rigctld_test

import (
	"context"
	"errors"
	"flag"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	rigctld "github.com/wagiedev/rigctld-sdk-go"
	"github.com/wagiedev/rigctld-sdk-go/internal/sim"
)

const fakeDaemonEnv = "RIGCTLD_SDK_FAKE_DAEMON"

func TestMain(m *testing.M) {
	if os.Getenv(fakeDaemonEnv) == "1" {
		os.Exit(runFakeDaemon(os.Args[1:]))
	}

	os.Exit(m.Run())
}

// runFakeDaemon serves the simulator on rigctld's -T/-t switches until SIGTERM.
func runFakeDaemon(args []string) int {
	fs := flag.NewFlagSet("rigctld", flag.ContinueOnError)
	host := fs.String("T", "127.0.0.1", "listen address")
	port := fs.Int("t", 4532, "listen port")
	fs.Int("m", 1, "model")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	srv, err := sim.Listen(net.JoinHostPort(*host, strconv.Itoa(*port)), nil)
	if err != nil {
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Serve(ctx); err != nil {
		return 1
	}

	return 0
}

func startSim(t *testing.T) (string, int) {
	t.Helper()

	srv, err := sim.Start(context.Background(), "127.0.0.1:0", nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = srv.Close() })

	return "127.0.0.1", srv.Port()
}

func TestDial_RoundTrips(t *testing.T) {
	ctx := context.Background()
	host, port := startSim(t)

	rig, err := rigctld.Dial(ctx, host, port, rigctld.WithTimeout(time.Second))
	require.NoError(t, err)

	defer rig.Close()

	hz, err := rig.GetFrequency(ctx)
	require.NoError(t, err)
	require.Equal(t, float64(145000000), hz)

	require.NoError(t, rig.SetFrequency(ctx, 14074000))

	hz, err = rig.GetFrequency(ctx)
	require.NoError(t, err)
	require.Equal(t, float64(14074000), hz)

	require.NoError(t, rig.SetMode(ctx, rigctld.ModeUSB, 2400))

	mode, passband, err := rig.GetMode(ctx)
	require.NoError(t, err)
	require.Equal(t, rigctld.ModeUSB, mode)
	require.Equal(t, uint32(2400), passband)

	require.NoError(t, rig.SetPowerState(ctx, rigctld.StandBy))

	state, err := rig.GetPowerState(ctx)
	require.NoError(t, err)
	require.Equal(t, rigctld.StandBy, state)

	resp, err := rig.Do(ctx, rigctld.GetFrequencyCommand{})
	require.NoError(t, err)

	freq, ok := resp.(*rigctld.FrequencyResponse)
	require.True(t, ok)
	require.Equal(t, float64(14074000), freq.Hz)
}

func TestDial_UnsupportedCommandIsRigError(t *testing.T) {
	ctx := context.Background()
	host, port := startSim(t)

	rig, err := rigctld.Dial(ctx, host, port)
	require.NoError(t, err)

	defer rig.Close()

	_, err = rig.Do(ctx, rigctld.RawCommand{Command: "get_vfo"})

	rigErr, ok := errors.AsType[*rigctld.RigError](err)
	require.True(t, ok, "expected RigError, got %v", err)
	require.Equal(t, -4, rigErr.Code)
	require.Equal(t, "RIG_ENIMPL", rigErr.Name())
}

func TestDial_Refused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	_, err = rigctld.Dial(context.Background(), "127.0.0.1", port)

	connErr, ok := errors.AsType[*rigctld.ConnectionError](err)
	require.True(t, ok, "expected ConnectionError, got %v", err)
	require.Equal(t, rigctld.ConnectionRefused, connErr.Kind)
}

// staticTransport answers every request with the same reply.
type staticTransport struct {
	reply  string
	closed bool
}

func (s *staticTransport) Exchange(context.Context, []byte) ([]byte, error) {
	return []byte(s.reply), nil
}

func (s *staticTransport) Close() error {
	s.closed = true

	return nil
}

func TestDial_WithTransport(t *testing.T) {
	tr := &staticTransport{reply: "get_freq:;Frequency: 7074000;RPRT 0\n"}

	rig, err := rigctld.Dial(context.Background(), "unused", 0, rigctld.WithTransport(tr))
	require.NoError(t, err)

	hz, err := rig.GetFrequency(context.Background())
	require.NoError(t, err)
	require.Equal(t, float64(7074000), hz)

	require.NoError(t, rig.Close())
	require.True(t, tr.closed)
}

func TestNewRig_EchoMismatch(t *testing.T) {
	rig := rigctld.NewRig(&staticTransport{reply: "get_mode:;Mode: USB;Passband: 2400;RPRT 0\n"})

	_, err := rig.GetFrequency(context.Background())

	protoErr, ok := errors.AsType[*rigctld.ProtocolError](err)
	require.True(t, ok, "expected ProtocolError, got %v", err)
	require.Equal(t, rigctld.ProtocolMismatch, protoErr.Kind)
}

func TestWithRig(t *testing.T) {
	ctx := context.Background()
	host, port := startSim(t)

	var got float64

	err := rigctld.WithRig(ctx, host, port, func(rig rigctld.Rig) error {
		var err error

		got, err = rig.GetFrequency(ctx)

		return err
	})
	require.NoError(t, err)
	require.Equal(t, float64(145000000), got)

	sentinel := errors.New("callback failed")

	err = rigctld.WithRig(ctx, host, port, func(rigctld.Rig) error { return sentinel })
	require.ErrorIs(t, err, sentinel)
}

func TestWithRig_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rigctld.WithRig(ctx, "127.0.0.1", 4532, func(rigctld.Rig) error {
		t.Error("callback should not be called with cancelled context")

		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWithDaemon(t *testing.T) {
	t.Setenv(fakeDaemonEnv, "1")

	exe, err := os.Executable()
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	ctx := context.Background()
	cfg := rigctld.NewDaemonConfig().WithProgram(exe).WithPort(port)

	var handle *rigctld.DaemonHandle

	err = rigctld.WithDaemon(ctx, cfg, func(d *rigctld.DaemonHandle) error {
		handle = d
		require.Equal(t, rigctld.DaemonReady, d.State())

		return rigctld.WithRig(ctx, cfg.Host, cfg.Port, func(rig rigctld.Rig) error {
			hz, err := rigctld.ParseFrequency("7123.4 kHz")
			if err != nil {
				return err
			}

			if err := rig.SetFrequency(ctx, hz); err != nil {
				return err
			}

			got, err := rig.GetFrequency(ctx)
			require.Equal(t, float64(7123400), got)

			return err
		})
	}, rigctld.WithPollInterval(10*time.Millisecond), rigctld.WithGracePeriod(time.Second))
	require.NoError(t, err)

	require.Equal(t, rigctld.DaemonStopped, handle.State())
	require.False(t, handle.Running())

	conn, err := net.DialTimeout("tcp", cfg.Addr(), 200*time.Millisecond)
	if err == nil {
		_ = conn.Close()
	}

	require.Error(t, err, "port should be free after WithDaemon returns")
}

func TestWithDaemon_SpawnFailure(t *testing.T) {
	cfg := rigctld.NewDaemonConfig().WithProgram(filepath.Join(t.TempDir(), "no-such-rigctld"))

	err := rigctld.WithDaemon(context.Background(), cfg, func(*rigctld.DaemonHandle) error {
		t.Error("callback should not run when spawn fails")

		return nil
	})

	spawnErr, ok := errors.AsType[*rigctld.DaemonSpawnError](err)
	require.True(t, ok, "expected DaemonSpawnError, got %v", err)
	require.Equal(t, rigctld.ExecutableNotFound, spawnErr.Kind)
}

func TestDaemonArgs(t *testing.T) {
	cfg := rigctld.NewDaemonConfig().
		WithModel(3061).
		WithRigFile("/dev/ttyUSB0").
		WithSerialSpeed(19200).
		WithCIVAddress(0x76).
		WithPort(8001)

	require.Equal(t, []string{
		"-T", "127.0.0.1", "-t", "8001", "-m", "3061",
		"-r", "/dev/ttyUSB0", "-s", "19200", "-c", "118",
	}, rigctld.DaemonArgs(cfg))
}

func TestDaemonExists(t *testing.T) {
	require.False(t, rigctld.DaemonExists(filepath.Join(t.TempDir(), "missing")))
}

func TestLoadDaemonProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ic7200.toml")
	require.NoError(t, os.WriteFile(path, []byte("[daemon]\nmodel = 3061\ncivaddr_typo = 1\n"), 0o600))

	_, err := rigctld.LoadDaemonProfile(path)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[daemon]\nmodel = 3061\nport = 8001\n"), 0o600))

	cfg, err := rigctld.LoadDaemonProfile(path)
	require.NoError(t, err)
	require.Equal(t, 3061, cfg.Model)
	require.Equal(t, 8001, cfg.Port)
	require.Equal(t, "127.0.0.1", cfg.Host)
}

func TestParseFrequency(t *testing.T) {
	hz, err := rigctld.ParseFrequency("7.1234 MHz")
	require.NoError(t, err)
	require.Equal(t, float64(7123400), hz)
	require.Equal(t, "7.1234 MHz", rigctld.FormatFrequency(hz))

	_, err = rigctld.ParseFrequency("7 MW")
	require.Error(t, err)
}

func TestParseModeAndPowerState(t *testing.T) {
	mode, err := rigctld.ParseMode("PKTUSB")
	require.NoError(t, err)
	require.Equal(t, rigctld.ModePKTUSB, mode)

	_, err = rigctld.ParseMode("usb")
	require.Error(t, err)

	state, err := rigctld.ParsePowerState("off")
	require.NoError(t, err)
	require.Equal(t, rigctld.PowerOff, state)
}

func TestErrorSentinels(t *testing.T) {
	var rigErr rigctld.RigctldError = &rigctld.RigError{Code: -1}

	require.True(t, rigErr.IsRigctldError())
	require.ErrorIs(t, rigErr, &rigctld.RigError{Code: -1})
	require.NotErrorIs(t, rigErr, &rigctld.RigError{Code: -2})
	require.NotErrorIs(t, rigctld.ErrTransportClosed, rigctld.ErrTransportPoisoned)
}
