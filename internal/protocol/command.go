package protocol

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Command is a single rigctld request.
//
// The set of implementations is closed: each one knows the response shape it
// expects, so a decoded Response always matches the Command that produced it.
type Command interface {
	// Name is the long command name without the leading backslash.
	Name() string

	// Args returns the wire arguments in order.
	Args() []string

	// decode builds the typed response from the echoed arguments and the
	// labelled fields that sat between the echo and RPRT.
	decode(echo string, fields []Field) (Response, error)
}

// Compile-time verification that all commands implement Command.
var (
	_ Command = GetFrequency{}
	_ Command = SetFrequency{}
	_ Command = GetMode{}
	_ Command = SetMode{}
	_ Command = GetPowerState{}
	_ Command = SetPowerState{}
	_ Command = Raw{}
)

// Field is one "Label: value" segment of an extended response.
type Field struct {
	Label string
	Value string
}

// GetFrequency reads the current VFO frequency.
type GetFrequency struct{}

// Name implements Command.
func (GetFrequency) Name() string { return "get_freq" }

// Args implements Command.
func (GetFrequency) Args() []string { return nil }

func (c GetFrequency) decode(echo string, fields []Field) (Response, error) {
	values, err := expectLabels(fields, "Frequency")
	if err != nil {
		return nil, err
	}

	hz, err := parseHz(values[0])
	if err != nil {
		return nil, err
	}

	return &FrequencyResponse{Header: header(c, echo), Hz: hz}, nil
}

// SetFrequency tunes the current VFO. Hz is sent verbatim.
type SetFrequency struct {
	Hz float64
}

// Name implements Command.
func (SetFrequency) Name() string { return "set_freq" }

// Args implements Command.
func (c SetFrequency) Args() []string {
	return []string{FormatHz(c.Hz)}
}

func (c SetFrequency) decode(echo string, fields []Field) (Response, error) {
	return ack(c, echo, fields)
}

// GetMode reads the current mode and passband.
type GetMode struct{}

// Name implements Command.
func (GetMode) Name() string { return "get_mode" }

// Args implements Command.
func (GetMode) Args() []string { return nil }

func (c GetMode) decode(echo string, fields []Field) (Response, error) {
	values, err := expectLabels(fields, "Mode", "Passband")
	if err != nil {
		return nil, err
	}

	mode, err := ParseMode(values[0])
	if err != nil {
		return nil, err
	}

	passband, err := strconv.ParseUint(values[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("passband %q: %w", values[1], err)
	}

	return &ModeResponse{Header: header(c, echo), Mode: mode, Passband: uint32(passband)}, nil
}

// SetMode changes mode and passband. A passband of 0 asks the rig for its default.
type SetMode struct {
	Mode     Mode
	Passband uint32
}

// Name implements Command.
func (SetMode) Name() string { return "set_mode" }

// Args implements Command.
func (c SetMode) Args() []string {
	return []string{string(c.Mode), strconv.FormatUint(uint64(c.Passband), 10)}
}

func (c SetMode) decode(echo string, fields []Field) (Response, error) {
	return ack(c, echo, fields)
}

// GetPowerState reads the rig power status.
type GetPowerState struct{}

// Name implements Command.
func (GetPowerState) Name() string { return "get_powerstat" }

// Args implements Command.
func (GetPowerState) Args() []string { return nil }

func (c GetPowerState) decode(echo string, fields []Field) (Response, error) {
	values, err := expectLabels(fields, "Power Status")
	if err != nil {
		return nil, err
	}

	state, err := ParsePowerState(values[0])
	if err != nil {
		return nil, err
	}

	return &PowerStateResponse{Header: header(c, echo), State: state}, nil
}

// SetPowerState powers the rig off, on, or into standby.
type SetPowerState struct {
	State PowerState
}

// Name implements Command.
func (SetPowerState) Name() string { return "set_powerstat" }

// Args implements Command.
func (c SetPowerState) Args() []string { return []string{c.State.Wire()} }

func (c SetPowerState) decode(echo string, fields []Field) (Response, error) {
	return ack(c, echo, fields)
}

// Raw is an arbitrary rigctld command. Its response fields are returned
// in order without label validation.
type Raw struct {
	Command   string
	Arguments []string
}

// Name implements Command.
func (c Raw) Name() string { return c.Command }

// Args implements Command.
func (c Raw) Args() []string { return c.Arguments }

func (c Raw) decode(echo string, fields []Field) (Response, error) {
	return &RawResponse{Header: header(c, echo), Fields: fields}, nil
}

// FormatHz renders a frequency as plain decimal text, never in exponent form.
func FormatHz(hz float64) string {
	return strconv.FormatFloat(hz, 'f', -1, 64)
}

func parseHz(s string) (float64, error) {
	hz, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("frequency %q: %w", s, err)
	}

	if math.IsNaN(hz) || math.IsInf(hz, 0) {
		return 0, fmt.Errorf("frequency %q is not finite", s)
	}

	return hz, nil
}

func header(c Command, echo string) Header {
	return Header{Command: c.Name(), Echo: echo}
}

func ack(c Command, echo string, fields []Field) (Response, error) {
	if _, err := expectLabels(fields); err != nil {
		return nil, err
	}

	if err := expectEcho(c.Args(), echo); err != nil {
		return nil, err
	}

	return &AckResponse{Header: header(c, echo)}, nil
}

// expectEcho checks that the echoed arguments are the ones sent. An empty
// echo comes from a bare RPRT reply and is not checked. Numeric tokens are
// compared by value so "7123400" matches "7123400.000000".
func expectEcho(args []string, echo string) error {
	if echo == "" {
		return nil
	}

	got := strings.Fields(echo)
	if len(got) != len(args) {
		return fmt.Errorf("echoed %d argument(s) %q, sent %q", len(got), got, args)
	}

	for i, want := range args {
		if got[i] == want {
			continue
		}

		a, errA := strconv.ParseFloat(want, 64)
		b, errB := strconv.ParseFloat(got[i], 64)

		if errA != nil || errB != nil || a != b {
			return fmt.Errorf("argument %d: echoed %q, sent %q", i, got[i], want)
		}
	}

	return nil
}

// expectLabels checks that fields carry exactly the given labels in order
// and returns their values.
func expectLabels(fields []Field, labels ...string) ([]string, error) {
	if len(fields) != len(labels) {
		return nil, fmt.Errorf("expected %d field(s) %q, got %d", len(labels), labels, len(fields))
	}

	values := make([]string, len(fields))

	for i, f := range fields {
		if f.Label != labels[i] {
			return nil, fmt.Errorf("field %d: expected label %q, got %q", i, labels[i], f.Label)
		}

		values[i] = f.Value
	}

	return values, nil
}
