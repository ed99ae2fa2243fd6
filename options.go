package rigctld

import (
	"log/slog"
	"time"
)

// Option configures Options using the functional options pattern.
// The same option set is accepted by Dial, Spawn and the scoped helpers.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// ===== Basic Configuration =====

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// ===== Connection =====

// WithTimeout bounds each request/response exchange. Default 250ms.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// WithDialTimeout bounds establishing the TCP connection. Default 1s.
func WithDialTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.DialTimeout = timeout
	}
}

// WithTransport replaces the TCP connection with a custom Transport.
// Dial then ignores host and port.
func WithTransport(transport Transport) Option {
	return func(o *Options) {
		o.Transport = transport
	}
}

// ===== Daemon =====

// WithProgram overrides the daemon executable named in DaemonConfig.
func WithProgram(program string) Option {
	return func(o *Options) {
		o.Program = program
	}
}

// WithReadinessTimeout bounds the wait for a spawned daemon's port. Default 5s.
func WithReadinessTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.ReadinessTimeout = timeout
	}
}

// WithPollInterval sets the delay between readiness probes. Default 25ms.
func WithPollInterval(interval time.Duration) Option {
	return func(o *Options) {
		o.PollInterval = interval
	}
}

// WithGracePeriod sets how long Stop waits after SIGTERM before SIGKILL. Default 2s.
func WithGracePeriod(grace time.Duration) Option {
	return func(o *Options) {
		o.GracePeriod = grace
	}
}

// WithStderr sets a callback that receives the daemon's stderr line by line.
func WithStderr(handler func(string)) Option {
	return func(o *Options) {
		o.Stderr = handler
	}
}
