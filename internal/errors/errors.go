package errors

import (
	"errors"
	"fmt"
)

// RigctldError is the base interface for all SDK errors.
type RigctldError interface {
	error
	IsRigctldError() bool
}

// Compile-time verification that all error types implement RigctldError.
var (
	_ RigctldError = (*ConnectionError)(nil)
	_ RigctldError = (*ProtocolError)(nil)
	_ RigctldError = (*RigError)(nil)
	_ RigctldError = (*DaemonSpawnError)(nil)
	_ RigctldError = (*DaemonStopError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrTransportClosed indicates the transport was closed by the caller.
	ErrTransportClosed = errors.New("transport closed")

	// ErrTransportPoisoned indicates an earlier exchange failed mid-flight.
	// The socket may hold a partial response, so the transport refuses reuse.
	ErrTransportPoisoned = errors.New("transport unusable after failed exchange: open a new connection")

	// ErrDaemonNotStarted indicates an operation on a handle that never ran a process.
	ErrDaemonNotStarted = errors.New("daemon not started")

	// ErrPortLocked indicates another lifecycle already holds the lock for a port.
	ErrPortLocked = errors.New("port locked by another daemon lifecycle")

	// ErrInvalidTransition indicates a daemon state change that the state machine forbids.
	ErrInvalidTransition = errors.New("invalid daemon state transition")
)

// ConnectionErrorKind classifies transport failures.
type ConnectionErrorKind string

const (
	// ConnectionRefused means nothing accepted the TCP connection.
	ConnectionRefused ConnectionErrorKind = "refused"
	// ConnectionTimeout means a dial or read deadline expired.
	ConnectionTimeout ConnectionErrorKind = "timeout"
	// ConnectionClosed means the peer closed the socket mid-exchange.
	ConnectionClosed ConnectionErrorKind = "closed"
)

// ConnectionError indicates the transport to rigctld failed.
type ConnectionError struct {
	Kind ConnectionErrorKind
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rigctld connection %s (%s): %v", e.Kind, e.Addr, e.Err)
	}

	return fmt.Sprintf("rigctld connection %s (%s)", e.Kind, e.Addr)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsRigctldError implements RigctldError.
func (e *ConnectionError) IsRigctldError() bool { return true }

// ProtocolErrorKind classifies malformed responses.
type ProtocolErrorKind string

const (
	// ProtocolMismatch means the echoed command or the response shape does not
	// belong to the issued command.
	ProtocolMismatch ProtocolErrorKind = "mismatch"
	// ProtocolTruncated means the terminal RPRT field is missing.
	ProtocolTruncated ProtocolErrorKind = "truncated"
	// ProtocolMalformedField means a labelled field is missing, extra, or unparsable.
	ProtocolMalformedField ProtocolErrorKind = "malformed field"
)

// ProtocolError indicates a response that does not follow the extended
// response protocol for the issued command.
type ProtocolError struct {
	Kind    ProtocolErrorKind
	Command string
	Raw     string
	Err     error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rigctld protocol %s for %q: %v", e.Kind, e.Command, e.Err)
	}

	return fmt.Sprintf("rigctld protocol %s for %q: %q", e.Kind, e.Command, e.Raw)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// IsRigctldError implements RigctldError.
func (e *ProtocolError) IsRigctldError() bool { return true }

// RigError carries a nonzero RPRT status reported by rigctld.
type RigError struct {
	Code int
}

func (e *RigError) Error() string {
	return fmt.Sprintf("rigctld returned RPRT %d (%s: %s)", e.Code, e.Name(), e.Description())
}

// IsRigctldError implements RigctldError.
func (e *RigError) IsRigctldError() bool { return true }

// Is reports whether target is a RigError with the same code.
func (e *RigError) Is(target error) bool {
	t, ok := target.(*RigError)

	return ok && t.Code == e.Code
}

// Name returns the Hamlib symbolic name of the status code.
func (e *RigError) Name() string {
	if s, ok := rigStatus[-e.Code]; ok {
		return s.name
	}

	return "RIG_EUNKNOWN"
}

// Description returns Hamlib's human-readable text for the status code.
func (e *RigError) Description() string {
	if s, ok := rigStatus[-e.Code]; ok {
		return s.text
	}

	return "unknown error"
}

type rigStatusText struct {
	name string
	text string
}

// rigStatus mirrors Hamlib's rig_errcode_e, keyed by the positive value.
var rigStatus = map[int]rigStatusText{
	1:  {"RIG_EINVAL", "invalid parameter"},
	2:  {"RIG_ECONF", "invalid configuration"},
	3:  {"RIG_ENOMEM", "memory shortage"},
	4:  {"RIG_ENIMPL", "function not implemented"},
	5:  {"RIG_ETIMEOUT", "communication timed out"},
	6:  {"RIG_EIO", "IO error"},
	7:  {"RIG_EINTERNAL", "internal Hamlib error"},
	8:  {"RIG_EPROTO", "protocol error"},
	9:  {"RIG_ERJCTED", "command rejected by the rig"},
	10: {"RIG_ETRUNC", "command performed, but arg truncated"},
	11: {"RIG_ENAVAIL", "function not available"},
	12: {"RIG_ENTARGET", "VFO not targetable"},
	13: {"RIG_BUSERROR", "error talking on the bus"},
	14: {"RIG_BUSBUSY", "collision on the bus"},
	15: {"RIG_EARG", "NULL RIG handle or invalid pointer parameter"},
	16: {"RIG_EVFO", "invalid VFO"},
	17: {"RIG_EDOM", "argument out of domain of func"},
	18: {"RIG_EDEPRECATED", "function deprecated"},
	19: {"RIG_ESECURITY", "security error"},
	20: {"RIG_EPOWER", "rig not powered on"},
}

// DaemonSpawnErrorKind classifies daemon start failures.
type DaemonSpawnErrorKind string

const (
	// ExecutableNotFound means the daemon program is not resolvable.
	ExecutableNotFound DaemonSpawnErrorKind = "executable not found"
	// LaunchFailed means the process could not be started or exited during startup.
	LaunchFailed DaemonSpawnErrorKind = "launch failed"
	// ReadinessTimeout means the listen port never accepted a connection.
	ReadinessTimeout DaemonSpawnErrorKind = "readiness timeout"
)

// DaemonSpawnError indicates the daemon could not be brought to Ready.
type DaemonSpawnError struct {
	Kind     DaemonSpawnErrorKind
	Program  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *DaemonSpawnError) Error() string {
	msg := fmt.Sprintf("spawn %s: %s", e.Program, e.Kind)

	if e.Kind == LaunchFailed && e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit %d)", e.ExitCode)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}

	return msg
}

func (e *DaemonSpawnError) Unwrap() error {
	return e.Err
}

// IsRigctldError implements RigctldError.
func (e *DaemonSpawnError) IsRigctldError() bool { return true }

// DaemonStopErrorKind classifies daemon teardown failures.
type DaemonStopErrorKind string

const (
	// TerminationTimeout means the process survived both SIGTERM and SIGKILL
	// within the allotted time.
	TerminationTimeout DaemonStopErrorKind = "termination timeout"
)

// DaemonStopError indicates the daemon could not be stopped.
type DaemonStopError struct {
	Kind DaemonStopErrorKind
	PID  int
	Err  error
}

func (e *DaemonStopError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stop daemon (pid %d): %s: %v", e.PID, e.Kind, e.Err)
	}

	return fmt.Sprintf("stop daemon (pid %d): %s", e.PID, e.Kind)
}

func (e *DaemonStopError) Unwrap() error {
	return e.Err
}

// IsRigctldError implements RigctldError.
func (e *DaemonStopError) IsRigctldError() bool { return true }
