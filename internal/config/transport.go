// Package config provides configuration types for the rigctld SDK.
package config

import "context"

// Transport defines the interface for exchanging requests with rigctld.
// Implement this to provide custom transports for testing, mocking,
// or alternative connection methods.
//
// The default implementation is TCPTransport which owns one TCP socket.
// Custom transports can be injected via Options.Transport.
type Transport interface {
	// Exchange writes one encoded request and returns the raw reply up to and
	// including the line that carries RPRT.
	// Implementations need not be safe for concurrent use beyond serializing
	// callers; the protocol has no request identifiers.
	Exchange(ctx context.Context, request []byte) ([]byte, error)

	// Close releases the connection. It's safe to call Close multiple times.
	Close() error
}
