package supervisor

import (
	"context"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"github.com/wagiedev/rigctld-sdk-go/internal/config"
	"github.com/wagiedev/rigctld-sdk-go/internal/errors"
)

// Handle owns one spawned rigctld process.
//
// All methods are safe for concurrent use. A zero Handle is NotStarted.
type Handle struct {
	log    *slog.Logger
	cfg    config.DaemonConfig
	path   string
	grace  time.Duration
	cmd    *exec.Cmd
	stderr *stderrCollector

	mu       sync.Mutex
	state    State
	exitCode int

	stopMu sync.Mutex    // Serializes Stop
	exited chan struct{} // Closed once the process has been reaped
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.state
}

// PID returns the process id, or 0 if no process was started.
func (h *Handle) PID() int {
	if h.cmd == nil || h.cmd.Process == nil {
		return 0
	}

	return h.cmd.Process.Pid
}

// Running reports whether the process is alive.
func (h *Handle) Running() bool {
	if h.exited == nil {
		return false
	}

	select {
	case <-h.exited:
		return false
	default:
		return true
	}
}

// Exited returns a channel closed once the process has exited.
// For a handle that never started a process the channel is already closed.
func (h *Handle) Exited() <-chan struct{} {
	if h.exited == nil {
		done := make(chan struct{})
		close(done)

		return done
	}

	return h.exited
}

// ExitCode returns the exit status after the process exited. It is -1 when
// the process was terminated by a signal and 0 while it is running.
func (h *Handle) ExitCode() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.exitCode
}

// Stderr returns the captured standard error output.
func (h *Handle) Stderr() string {
	if h.stderr == nil {
		return ""
	}

	return h.stderr.String()
}

// Config returns the configuration the daemon was launched with.
func (h *Handle) Config() config.DaemonConfig {
	return h.cfg
}

// Path returns the resolved executable path.
func (h *Handle) Path() string {
	return h.path
}

// Addr returns the host:port the daemon listens on.
func (h *Handle) Addr() string {
	return h.cfg.Addr()
}

// Stop terminates the daemon and waits for it to exit.
//
// The process group receives SIGTERM, then SIGKILL once the grace period
// passes. Returns *errors.DaemonStopError if the process is still alive when
// ctx ends; calling Stop again escalates straight to SIGKILL. Stopping a
// Stopped or StartFailed handle is a no-op; stopping a handle that never
// started returns errors.ErrDaemonNotStarted.
func (h *Handle) Stop(ctx context.Context) error {
	h.stopMu.Lock()
	defer h.stopMu.Unlock()

	log := h.log.With("pid", h.PID())

	switch state := h.State(); {
	case state == NotStarted:
		return errors.ErrDaemonNotStarted
	case state.Terminal():
		return nil
	case state == Stopping:
		log.Warn("Retrying stop of rigctld")

		h.signal(sendKill, "SIGKILL")

		if err := h.awaitExit(ctx); err != nil {
			return err
		}

		return h.finishStop(log)
	}

	if err := h.transition(Stopping); err != nil {
		return err
	}

	log.Info("Stopping rigctld")

	h.signal(sendTerm, "SIGTERM")

	grace := time.NewTimer(h.grace)
	defer grace.Stop()

	select {
	case <-h.exited:
	case <-grace.C:
		log.Warn("rigctld ignored SIGTERM, killing", "grace_period", h.grace)

		h.signal(sendKill, "SIGKILL")

		if err := h.awaitExit(ctx); err != nil {
			return err
		}
	case <-ctx.Done():
		h.signal(sendKill, "SIGKILL")

		if err := h.awaitExit(ctx); err != nil {
			return err
		}
	}

	return h.finishStop(log)
}

func (h *Handle) finishStop(log *slog.Logger) error {
	if err := h.transition(Stopped); err != nil {
		return err
	}

	log.Info("rigctld stopped", "exit_code", h.ExitCode())

	return nil
}

// Group signalling; tests replace these to observe what is sent.
var (
	sendTerm = terminateGroup
	sendKill = killGroup
)

// signal delivers send to the process group unless the process has already
// been reaped, since its pid may then belong to an unrelated group.
func (h *Handle) signal(send func(pid int) error, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	select {
	case <-h.exited:
		h.log.Debug("Process already reaped, not signalling", "signal", name)

		return
	default:
	}

	if err := send(h.PID()); err != nil {
		h.log.Debug(name+" failed", "error", err)
	}
}

// killWait is the reap window after SIGKILL once ctx has ended.
const killWait = time.Second

func (h *Handle) awaitExit(ctx context.Context) error {
	select {
	case <-h.exited:
		return nil
	case <-ctx.Done():
	}

	timer := time.NewTimer(killWait)
	defer timer.Stop()

	select {
	case <-h.exited:
		return nil
	case <-timer.C:
	}

	return &errors.DaemonStopError{
		Kind: errors.TerminationTimeout,
		PID:  h.PID(),
		Err:  ctx.Err(),
	}
}

func (h *Handle) transition(to State) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := checkTransition(h.state, to); err != nil {
		return err
	}

	h.log.Debug("Daemon state change", "from", h.state, "to", to)

	h.state = to

	return nil
}

// reap waits for the process, records its exit status and marks an
// unexpected exit from Ready as Crashed.
func (h *Handle) reap(stderrDone *sync.WaitGroup) {
	// Stderr must be fully read before Wait closes the pipe.
	stderrDone.Wait()

	err := h.cmd.Wait()

	h.mu.Lock()

	h.exitCode = -1
	if h.cmd.ProcessState != nil {
		h.exitCode = h.cmd.ProcessState.ExitCode()
	}

	crashed := h.state == Ready
	if crashed {
		h.state = Crashed
	}

	exitCode := h.exitCode

	// Closed under mu so markReady sees the exit and the state together.
	close(h.exited)
	h.mu.Unlock()

	if crashed {
		h.log.Warn("rigctld exited unexpectedly",
			"pid", h.PID(), "exit_code", exitCode, "error", err, "stderr", h.Stderr())
	} else {
		h.log.Debug("rigctld exited", "pid", h.PID(), "exit_code", exitCode)
	}
}

// markReady moves Starting to Ready unless the process has already exited.
func (h *Handle) markReady() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	select {
	case <-h.exited:
		return false
	default:
	}

	if checkTransition(h.state, Ready) != nil {
		return false
	}

	h.state = Ready

	return true
}
