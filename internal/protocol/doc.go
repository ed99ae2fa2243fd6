// Package protocol implements the wire codec for rigctld's extended response
// protocol.
//
// Requests are single lines of the form:
//
//	;\get_freq
//	;\set_mode USB 2400
//
// The leading ';' selects the extended response layout with ';' as the field
// separator. Responses echo the command, list labelled fields, and end with
// the RPRT status:
//
//	get_mode:;Mode: FM;Passband: 15000;RPRT 0
//
// Decoding is strict. Each Command knows the exact labels its response must
// carry, and anything else is reported as a ProtocolError rather than being
// defaulted. A nonzero RPRT is reported as a RigError before any field is
// inspected.
//
// The codec is stateless and performs no unit conversion: frequencies are Hz
// on both sides of the wire.
package protocol
