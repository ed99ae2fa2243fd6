package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	rigctld "github.com/wagiedev/rigctld-sdk-go"
)

type commandContext struct {
	host     string
	port     int
	timeout  time.Duration
	logLevel string

	logger *slog.Logger
}

func (c *commandContext) setupLogger(w io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.logLevel))); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", c.logLevel, err)
	}

	c.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))

	return nil
}

func (c *commandContext) log() *slog.Logger {
	if c.logger == nil {
		return rigctld.NopLogger()
	}

	return c.logger
}

func (c *commandContext) options() []rigctld.Option {
	return []rigctld.Option{
		rigctld.WithLogger(c.log()),
		rigctld.WithTimeout(c.timeout),
	}
}

// withRig connects to --host:--port for the duration of fn.
func (c *commandContext) withRig(ctx context.Context, fn func(rigctld.Rig) error) error {
	return rigctld.WithRig(ctx, c.host, c.port, fn, c.options()...)
}
