// Package errors defines error types for the rigctld SDK.
//
// This package provides structured error types for the distinct failure
// families of a rigctld session: transport failures, malformed protocol
// responses, device-reported status codes, and daemon lifecycle failures.
// All error types support unwrapping and can be checked using errors.Is,
// errors.As, and errors.AsType.
//
// The split between ConnectionError and RigError matters to callers: the
// first means the transport failed and the request may not have reached the
// rig, the second means the daemon received and rejected the command.
package errors
