package supervisor

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"os/exec"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/rigctld-sdk-go/internal/config"
	"github.com/wagiedev/rigctld-sdk-go/internal/errors"
	"github.com/wagiedev/rigctld-sdk-go/internal/launch"
)

// Spawn starts rigctld for cfg and waits until its port accepts a connection.
//
// options.Program, when set, overrides cfg.Program. The readiness wait is
// bounded by options.ReadinessTimeout and ctx; ctx does not bound the
// daemon's lifetime once Spawn returns.
//
// Errors are *errors.DaemonSpawnError with kind ExecutableNotFound,
// LaunchFailed (including an exit before the port answered) or
// ReadinessTimeout. On any error no process is left running.
func Spawn(ctx context.Context, cfg config.DaemonConfig, options *config.Options) (*Handle, error) {
	opts := options.WithDefaults()

	if opts.Program != "" {
		cfg = cfg.WithProgram(opts.Program)
	}

	log := opts.Logger.With("component", "supervisor", "program", cfg.Program, "addr", cfg.Addr())

	path, err := launch.NewDiscoverer(&launch.Config{
		Program:          cfg.Program,
		SkipVersionCheck: true,
		Logger:           opts.Logger,
	}).Discover(ctx)
	if err != nil {
		return nil, err
	}

	args := launch.BuildArgs(cfg)

	h := &Handle{
		log:    log,
		cfg:    cfg,
		path:   path,
		grace:  opts.GracePeriod,
		stderr: &stderrCollector{callback: opts.Stderr},
		exited: make(chan struct{}),
	}

	if err := h.transition(Starting); err != nil {
		return nil, err
	}

	log.Info("Starting rigctld", "path", path, "args", args)

	//nolint:gosec // G204: the daemon path and arguments come from the caller's configuration
	cmd := exec.Command(path, args...)
	setProcessGroup(cmd)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		_ = h.transition(StartFailed)

		return nil, h.spawnError(errors.LaunchFailed, fmt.Errorf("stderr pipe: %w", err))
	}

	if err := cmd.Start(); err != nil {
		log.Error("Failed to start rigctld", "error", err)

		_ = h.transition(StartFailed)

		return nil, h.spawnError(errors.LaunchFailed, fmt.Errorf("start process: %w", err))
	}

	h.cmd = cmd
	h.log = log.With("pid", cmd.Process.Pid)

	var stderrDone sync.WaitGroup

	stderrDone.Go(func() { h.stderr.drain(stderr) })

	go h.reap(&stderrDone)

	if err := h.awaitReady(ctx, opts); err != nil {
		h.abort()

		return nil, err
	}

	if !h.markReady() {
		h.abort()

		return nil, h.spawnError(errors.LaunchFailed, nil)
	}

	h.log.Info("rigctld ready")

	return h, nil
}

// awaitReady polls the listen port while watching for an early exit.
func (h *Handle) awaitReady(ctx context.Context, opts *config.Options) error {
	readyCtx, cancel := context.WithTimeout(ctx, opts.ReadinessTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(readyCtx)
	probed := make(chan struct{})

	g.Go(func() error {
		if err := probe(gctx, h.cfg.Addr(), opts.PollInterval, opts.DialTimeout); err != nil {
			return err
		}

		close(probed)

		return nil
	})

	g.Go(func() error {
		select {
		case <-probed:
			return nil
		case <-gctx.Done():
			return nil
		case <-h.exited:
			h.log.Error("rigctld exited during startup", "exit_code", h.ExitCode(), "stderr", h.Stderr())

			return h.spawnError(errors.LaunchFailed, nil)
		}
	})

	err := g.Wait()

	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return fmt.Errorf("spawn %s: %w", h.cfg.Program, ctx.Err())
	case stderrors.Is(err, context.DeadlineExceeded):
		h.log.Error("rigctld did not become ready", "readiness_timeout", opts.ReadinessTimeout)

		return h.spawnError(errors.ReadinessTimeout,
			fmt.Errorf("%s not accepting connections after %s", h.cfg.Addr(), opts.ReadinessTimeout))
	default:
		return err
	}
}

// probe dials addr every interval until a connection succeeds or ctx ends.
func probe(ctx context.Context, addr string, interval, dialTimeout time.Duration) error {
	dialer := &net.Dialer{Timeout: dialTimeout}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err == nil {
			_ = conn.Close()

			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// abort kills a daemon that failed to become ready and waits for it.
func (h *Handle) abort() {
	h.signal(sendKill, "SIGKILL")

	<-h.exited

	h.mu.Lock()
	h.state = StartFailed
	h.mu.Unlock()
}

func (h *Handle) spawnError(kind errors.DaemonSpawnErrorKind, err error) *errors.DaemonSpawnError {
	return &errors.DaemonSpawnError{
		Kind:     kind,
		Program:  h.cfg.Program,
		ExitCode: h.ExitCode(),
		Stderr:   h.Stderr(),
		Err:      err,
	}
}
