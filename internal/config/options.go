package config

import (
	"io"
	"log/slog"
	"time"
)

const (
	// DefaultTimeout bounds a single request/response exchange.
	DefaultTimeout = 250 * time.Millisecond

	// DefaultDialTimeout bounds establishing the TCP connection.
	DefaultDialTimeout = 1 * time.Second

	// DefaultReadinessTimeout bounds the wait for a spawned daemon's port.
	DefaultReadinessTimeout = 5 * time.Second

	// DefaultPollInterval is the delay between readiness probes.
	DefaultPollInterval = 25 * time.Millisecond

	// DefaultGracePeriod is how long Stop waits after SIGTERM before SIGKILL.
	DefaultGracePeriod = 2 * time.Second
)

// Options configures clients and the daemon supervisor.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Timeout bounds each request/response exchange.
	// A daemon pointed at a missing or wrong device hangs instead of
	// answering, so this is where misconfiguration surfaces.
	Timeout time.Duration

	// DialTimeout bounds establishing the TCP connection.
	DialTimeout time.Duration

	// Transport allows injecting a custom transport implementation.
	// If nil, a TCPTransport is opened automatically.
	Transport Transport

	// Program overrides the daemon executable from DaemonConfig.
	Program string

	// ReadinessTimeout bounds the wait for a spawned daemon to accept connections.
	ReadinessTimeout time.Duration

	// PollInterval is the delay between readiness probes.
	PollInterval time.Duration

	// GracePeriod is how long Stop waits for a graceful exit before killing.
	GracePeriod time.Duration

	// Stderr receives the daemon's stderr output line by line.
	Stderr func(string)
}

// WithDefaults returns a copy of o with zero values replaced by defaults.
// A nil receiver yields the defaults.
func (o *Options) WithDefaults() *Options {
	out := Options{}
	if o != nil {
		out = *o
	}

	if out.Logger == nil {
		out.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}

	if out.DialTimeout <= 0 {
		out.DialTimeout = DefaultDialTimeout
	}

	if out.ReadinessTimeout <= 0 {
		out.ReadinessTimeout = DefaultReadinessTimeout
	}

	if out.PollInterval <= 0 {
		out.PollInterval = DefaultPollInterval
	}

	if out.GracePeriod <= 0 {
		out.GracePeriod = DefaultGracePeriod
	}

	return &out
}
