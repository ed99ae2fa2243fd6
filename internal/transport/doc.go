// Package transport provides the TCP connection to a rigctld daemon.
//
// A TCPTransport owns exactly one socket and performs strictly ordered
// request/response exchanges. rigctld replies carry no sequence numbers, so a
// late reply cannot be told apart from the answer to the next request: after
// any timeout or I/O failure the transport closes its socket and refuses
// further use.
package transport
