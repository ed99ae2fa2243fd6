// Package client implements the typed rigctld protocol client.
//
// Every operation is one lockstep exchange: the command is encoded by the
// protocol package, sent over a config.Transport, and the reply is decoded
// strictly against the command's expected shape. Nothing is retried; a
// failed exchange leaves the transport unusable and the caller reconnects.
package client
