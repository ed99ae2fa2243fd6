package rigctld

import (
	"context"

	"github.com/wagiedev/rigctld-sdk-go/internal/client"
)

// Rig is a connection to one rigctld daemon.
//
// Every call is one request and one reply on a shared connection; concurrent
// calls are serialized. There are no retries. A call that fails on the
// connection closes it, and every later call returns ErrTransportPoisoned.
//
// Example usage:
//
//	rig, err := rigctld.Dial(ctx, "127.0.0.1", 4532,
//	    rigctld.WithTimeout(500*time.Millisecond),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rig.Close()
//
//	if err := rig.SetMode(ctx, rigctld.ModeUSB, 2400); err != nil {
//	    log.Fatal(err)
//	}
type Rig interface {
	// GetFrequency returns the current VFO frequency in Hz.
	GetFrequency(ctx context.Context) (float64, error)

	// SetFrequency tunes the current VFO. hz is sent as written; no unit
	// conversion happens. Use ParseFrequency for "7.1234 MHz" style input.
	SetFrequency(ctx context.Context, hz float64) error

	// GetMode returns the operating mode and passband in Hz.
	GetMode(ctx context.Context) (Mode, uint32, error)

	// SetMode sets the operating mode. A passband of 0 asks the rig for its
	// default width for the mode.
	SetMode(ctx context.Context, mode Mode, passband uint32) error

	// GetPowerState returns the rig power status.
	GetPowerState(ctx context.Context) (PowerState, error)

	// SetPowerState powers the rig off, on or into standby.
	SetPowerState(ctx context.Context, state PowerState) error

	// Do sends any Command and returns its decoded Response.
	// Use RawCommand for commands without a typed wrapper.
	Do(ctx context.Context, cmd Command) (Response, error)

	// Close closes the connection. Safe to call multiple times.
	Close() error
}

// Compile-time verification that the internal client implements Rig.
var _ Rig = (*client.Client)(nil)

// Dial connects to rigctld at host:port.
//
// Returns ConnectionError with kind ConnectionRefused when nothing listens and
// ConnectionTimeout when the dial deadline expires. With WithTransport the
// given transport is used and host and port are ignored.
func Dial(ctx context.Context, host string, port int, opts ...Option) (Rig, error) {
	c, err := client.Connect(ctx, host, port, applyOptions(opts))
	if err != nil {
		return nil, err
	}

	return c, nil
}

// NewRig wraps an existing Transport.
func NewRig(transport Transport, opts ...Option) Rig {
	return client.New(transport, applyOptions(opts))
}
