package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wagiedev/rigctld-sdk-go/internal/config"
	"github.com/wagiedev/rigctld-sdk-go/internal/errors"
	"github.com/wagiedev/rigctld-sdk-go/internal/protocol"
	"github.com/wagiedev/rigctld-sdk-go/internal/transport"
)

// Client issues typed commands to one rigctld connection.
type Client struct {
	log       *slog.Logger
	transport config.Transport

	closeOnce sync.Once
	closeErr  error
}

// New wraps an already connected transport.
func New(tr config.Transport, options *config.Options) *Client {
	opts := options.WithDefaults()

	return &Client{
		log:       opts.Logger.With("component", "client"),
		transport: tr,
	}
}

// Connect opens a TCP connection to rigctld at host:port, unless
// options.Transport is set, in which case that transport is used as is.
func Connect(ctx context.Context, host string, port int, options *config.Options) (*Client, error) {
	opts := options.WithDefaults()

	if opts.Transport != nil {
		return New(opts.Transport, opts), nil
	}

	tr, err := transport.Open(ctx, host, port, opts)
	if err != nil {
		return nil, err
	}

	return New(tr, opts), nil
}

// Do sends cmd and returns the decoded response.
//
// A nonzero RPRT is returned as *errors.RigError, a reply that does not fit
// cmd as *errors.ProtocolError, and transport failures as
// *errors.ConnectionError.
func (c *Client) Do(ctx context.Context, cmd protocol.Command) (protocol.Response, error) {
	raw, err := c.transport.Exchange(ctx, protocol.Encode(cmd))
	if err != nil {
		return nil, err
	}

	resp, err := protocol.Decode(cmd, raw)
	if err != nil {
		c.log.Debug("Command failed", "command", cmd.Name(), "error", err)

		return nil, err
	}

	return resp, nil
}

// GetFrequency returns the current VFO frequency in Hz.
func (c *Client) GetFrequency(ctx context.Context) (float64, error) {
	resp, err := do[*protocol.FrequencyResponse](ctx, c, protocol.GetFrequency{})
	if err != nil {
		return 0, err
	}

	return resp.Hz, nil
}

// SetFrequency tunes the current VFO to hz.
func (c *Client) SetFrequency(ctx context.Context, hz float64) error {
	_, err := do[*protocol.AckResponse](ctx, c, protocol.SetFrequency{Hz: hz})

	return err
}

// GetMode returns the current mode and passband in Hz.
func (c *Client) GetMode(ctx context.Context) (protocol.Mode, uint32, error) {
	resp, err := do[*protocol.ModeResponse](ctx, c, protocol.GetMode{})
	if err != nil {
		return "", 0, err
	}

	return resp.Mode, resp.Passband, nil
}

// SetMode sets mode and passband. A passband of 0 selects the rig's default.
func (c *Client) SetMode(ctx context.Context, mode protocol.Mode, passband uint32) error {
	_, err := do[*protocol.AckResponse](ctx, c, protocol.SetMode{Mode: mode, Passband: passband})

	return err
}

// GetPowerState returns the rig power status.
func (c *Client) GetPowerState(ctx context.Context) (protocol.PowerState, error) {
	resp, err := do[*protocol.PowerStateResponse](ctx, c, protocol.GetPowerState{})
	if err != nil {
		return 0, err
	}

	return resp.State, nil
}

// SetPowerState powers the rig off, on, or into standby.
func (c *Client) SetPowerState(ctx context.Context, state protocol.PowerState) error {
	_, err := do[*protocol.AckResponse](ctx, c, protocol.SetPowerState{State: state})

	return err
}

// Close closes the underlying transport. Safe to call multiple times.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.log.Debug("Closing client")

		c.closeErr = c.transport.Close()
	})

	return c.closeErr
}

// do runs cmd and asserts the response variant.
func do[T protocol.Response](ctx context.Context, c *Client, cmd protocol.Command) (T, error) {
	var zero T

	resp, err := c.Do(ctx, cmd)
	if err != nil {
		return zero, err
	}

	typed, ok := resp.(T)
	if !ok {
		return zero, &errors.ProtocolError{
			Kind:    errors.ProtocolMismatch,
			Command: cmd.Name(),
			Err:     fmt.Errorf("unexpected response type %T", resp),
		}
	}

	return typed, nil
}
