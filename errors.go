package rigctld

import "github.com/wagiedev/rigctld-sdk-go/internal/errors"

// Re-export error types from internal package

// RigctldError is the base interface for all SDK errors.
type RigctldError = errors.RigctldError

// ConnectionError indicates the TCP connection to rigctld failed.
type ConnectionError = errors.ConnectionError

// ConnectionErrorKind classifies a ConnectionError.
type ConnectionErrorKind = errors.ConnectionErrorKind

// ProtocolError indicates a reply that does not fit the issued command.
type ProtocolError = errors.ProtocolError

// ProtocolErrorKind classifies a ProtocolError.
type ProtocolErrorKind = errors.ProtocolErrorKind

// RigError carries a nonzero RPRT status.
type RigError = errors.RigError

// DaemonSpawnError indicates the daemon could not be brought up.
type DaemonSpawnError = errors.DaemonSpawnError

// DaemonSpawnErrorKind classifies a DaemonSpawnError.
type DaemonSpawnErrorKind = errors.DaemonSpawnErrorKind

// DaemonStopError indicates the daemon could not be stopped.
type DaemonStopError = errors.DaemonStopError

// DaemonStopErrorKind classifies a DaemonStopError.
type DaemonStopErrorKind = errors.DaemonStopErrorKind

const (
	ConnectionRefused = errors.ConnectionRefused
	ConnectionTimeout = errors.ConnectionTimeout
	ConnectionClosed  = errors.ConnectionClosed

	ProtocolMismatch       = errors.ProtocolMismatch
	ProtocolTruncated      = errors.ProtocolTruncated
	ProtocolMalformedField = errors.ProtocolMalformedField

	ExecutableNotFound = errors.ExecutableNotFound
	LaunchFailed       = errors.LaunchFailed
	ReadinessTimeout   = errors.ReadinessTimeout

	TerminationTimeout = errors.TerminationTimeout
)

// Re-export sentinel errors from internal package.
var (
	// ErrTransportClosed indicates the connection was closed by the caller.
	ErrTransportClosed = errors.ErrTransportClosed

	// ErrTransportPoisoned indicates an earlier exchange on the connection failed.
	ErrTransportPoisoned = errors.ErrTransportPoisoned

	// ErrDaemonNotStarted indicates Stop on a handle that never ran.
	ErrDaemonNotStarted = errors.ErrDaemonNotStarted

	// ErrPortLocked indicates another lifecycle holds the port lock.
	ErrPortLocked = errors.ErrPortLocked
)
