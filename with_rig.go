package rigctld

import (
	"context"
	"fmt"
)

// WithRig manages a connection with automatic cleanup.
//
// This helper dials host:port, executes the callback, and closes the
// connection when done. If Close fails, a warning is logged but does not
// override the callback's error.
//
// Example usage:
//
//	err := rigctld.WithRig(ctx, "127.0.0.1", 4532, func(rig rigctld.Rig) error {
//	    hz, err := rig.GetFrequency(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(rigctld.FormatFrequency(hz))
//	    return nil
//	})
func WithRig(ctx context.Context, host string, port int, fn func(Rig) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	log := applyOptions(opts).Logger
	if log == nil {
		log = NopLogger()
	}

	rig, err := Dial(ctx, host, port, opts...)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	defer func() {
		if closeErr := rig.Close(); closeErr != nil {
			log.Warn("failed to close rig connection", "error", closeErr)
		}
	}()

	return fn(rig)
}

// WithDaemon spawns rigctld, executes the callback, and stops the daemon when
// done, whether the callback succeeded or not.
//
// Stop runs on a context detached from ctx so that a cancelled caller still
// tears the process down. The callback's error takes precedence over a
// stop failure.
func WithDaemon(ctx context.Context, cfg DaemonConfig, fn func(*DaemonHandle) error, opts ...Option) (err error) {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	handle, err := Spawn(ctx, cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to spawn daemon: %w", err)
	}

	defer func() {
		stopErr := handle.Stop(context.WithoutCancel(ctx))
		if stopErr != nil && err == nil {
			err = fmt.Errorf("failed to stop daemon: %w", stopErr)
		}
	}()

	return fn(handle)
}
