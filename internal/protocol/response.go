package protocol

// Response is a successfully decoded rigctld reply.
//
// The concrete type always corresponds to the Command passed to Decode:
//   - GetFrequency: *FrequencyResponse
//   - GetMode: *ModeResponse
//   - GetPowerState: *PowerStateResponse
//   - SetFrequency, SetMode, SetPowerState: *AckResponse
//   - Raw: *RawResponse
type Response interface {
	// CommandName returns the echoed command name.
	CommandName() string

	// Status returns the RPRT code. Decode only produces responses for code 0.
	Status() int
}

// Compile-time verification that all response types implement Response.
var (
	_ Response = (*FrequencyResponse)(nil)
	_ Response = (*ModeResponse)(nil)
	_ Response = (*PowerStateResponse)(nil)
	_ Response = (*AckResponse)(nil)
	_ Response = (*RawResponse)(nil)
)

// Header holds the parts every response shares.
type Header struct {
	// Command is the echoed command name.
	Command string

	// Echo is the echoed argument text with surrounding space trimmed.
	Echo string

	// Code is the RPRT status.
	Code int
}

// CommandName implements Response.
func (h Header) CommandName() string { return h.Command }

// Status implements Response.
func (h Header) Status() int { return h.Code }

// FrequencyResponse answers GetFrequency.
type FrequencyResponse struct {
	Header

	Hz float64
}

// ModeResponse answers GetMode.
type ModeResponse struct {
	Header

	Mode     Mode
	Passband uint32
}

// PowerStateResponse answers GetPowerState.
type PowerStateResponse struct {
	Header

	State PowerState
}

// AckResponse is the bare acknowledgement of a set command.
type AckResponse struct {
	Header
}

// RawResponse answers a Raw command.
type RawResponse struct {
	Header

	Fields []Field
}

// Value returns the first field with the given label.
func (r *RawResponse) Value(label string) (string, bool) {
	for _, f := range r.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}

	return "", false
}
