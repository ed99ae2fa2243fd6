package sim

import (
	"strconv"
	"strings"
	"sync"

	"github.com/wagiedev/rigctld-sdk-go/internal/protocol"
)

// Hamlib status codes the dummy rig answers with.
const (
	statusOK      = 0
	statusInvalid = -1 // RIG_EINVAL
	statusNotImpl = -4 // RIG_ENIMPL
)

// Initial values of Hamlib's dummy backend.
const (
	InitialFrequency = 145000000
	InitialMode      = protocol.ModeFM
	InitialPassband  = 15000
	InitialPower     = protocol.PowerOn
)

// State is a snapshot of the simulated rig.
type State struct {
	Hz       int64
	Mode     protocol.Mode
	Passband uint32
	Power    protocol.PowerState
}

// normalPassband mirrors rig_passband_normal for the dummy backend.
var normalPassband = map[protocol.Mode]uint32{
	protocol.ModeCW:     500,
	protocol.ModeCWR:    500,
	protocol.ModeRTTY:   2400,
	protocol.ModeRTTYR:  2400,
	protocol.ModeUSB:    2400,
	protocol.ModeLSB:    2400,
	protocol.ModePKTUSB: 2400,
	protocol.ModePKTLSB: 2400,
	protocol.ModeAM:     8000,
	protocol.ModeAMS:    8000,
	protocol.ModeFM:     15000,
	protocol.ModePKTFM:  15000,
	protocol.ModeWFM:    230000,
}

// Rig holds the dummy device state. It is safe for concurrent use; every
// connection to a Server shares the same Rig.
type Rig struct {
	mu    sync.Mutex
	state State
}

// NewRig returns a rig in the dummy backend's power-on state.
func NewRig() *Rig {
	return &Rig{state: State{
		Hz:       InitialFrequency,
		Mode:     InitialMode,
		Passband: InitialPassband,
		Power:    InitialPower,
	}}
}

// State returns a copy of the current state.
func (r *Rig) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

// result is the outcome of one command: labelled fields and a status code.
type result struct {
	fields []protocol.Field
	code   int
}

// short command letters accepted by rigctld for the supported commands.
var shortNames = map[string]string{
	"F": "set_freq",
	"f": "get_freq",
	"M": "set_mode",
	"m": "get_mode",
}

// execute runs one command against the rig state.
func (r *Rig) execute(name string, args []string) result {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch name {
	case "get_freq":
		return ok(protocol.Field{Label: "Frequency", Value: strconv.FormatInt(r.state.Hz, 10)})

	case "set_freq":
		if len(args) != 1 {
			return fail(statusInvalid)
		}

		hz, err := strconv.ParseFloat(args[0], 64)
		if err != nil || hz < 0 {
			return fail(statusInvalid)
		}

		r.state.Hz = int64(hz)

		return ok()

	case "get_mode":
		return ok(
			protocol.Field{Label: "Mode", Value: string(r.state.Mode)},
			protocol.Field{Label: "Passband", Value: strconv.FormatUint(uint64(r.state.Passband), 10)},
		)

	case "set_mode":
		if len(args) != 2 {
			return fail(statusInvalid)
		}

		mode, err := protocol.ParseMode(args[0])
		if err != nil {
			return fail(statusInvalid)
		}

		passband, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || passband < -1 {
			return fail(statusInvalid)
		}

		r.state.Mode = mode

		switch passband {
		case -1: // RIG_PASSBAND_NOCHANGE
		case 0:
			r.state.Passband = normalPassband[mode]
		default:
			r.state.Passband = uint32(passband)
		}

		return ok()

	case "get_powerstat":
		return ok(protocol.Field{Label: "Power Status", Value: r.state.Power.Wire()})

	case "set_powerstat":
		if len(args) != 1 {
			return fail(statusInvalid)
		}

		state, err := protocol.ParsePowerState(args[0])
		if err != nil {
			return fail(statusInvalid)
		}

		r.state.Power = state

		return ok()
	}

	return fail(statusNotImpl)
}

func ok(fields ...protocol.Field) result {
	return result{fields: fields, code: statusOK}
}

func fail(code int) result {
	return result{code: code}
}

// request is one parsed input line.
type request struct {
	name     string
	args     []string
	extended bool
	sep      string
}

// parseRequest splits a request line. ok is false for blank lines.
//
// Accepted forms: ";\name args" (one-line extended), "+\name args"
// (multi-line extended), "\name args" and single-letter short commands.
func parseRequest(line string) (request, bool) {
	line = strings.TrimRight(line, "\r\n")

	req := request{sep: "\n"}

	switch {
	case strings.HasPrefix(line, ";"):
		req.extended, req.sep = true, ";"
		line = line[1:]
	case strings.HasPrefix(line, "+"):
		req.extended = true
		line = line[1:]
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return request{}, false
	}

	name := fields[0]

	if long, found := strings.CutPrefix(name, `\`); found {
		name = long
	} else if long, found := shortNames[name]; found {
		name = long
	}

	req.name = name
	req.args = fields[1:]

	return req, true
}

// render formats res the way rigctld does for req.
func render(req request, res result) string {
	var b strings.Builder

	if !req.extended {
		if res.code != statusOK || len(res.fields) == 0 {
			b.WriteString("RPRT " + strconv.Itoa(res.code) + "\n")

			return b.String()
		}

		for _, f := range res.fields {
			b.WriteString(f.Value + "\n")
		}

		return b.String()
	}

	b.WriteString(req.name + ":")

	if len(req.args) > 0 {
		b.WriteString(" " + strings.Join(req.args, " "))
	}

	b.WriteString(req.sep)

	for _, f := range res.fields {
		b.WriteString(f.Label + ": " + f.Value + req.sep)
	}

	b.WriteString("RPRT " + strconv.Itoa(res.code) + "\n")

	return b.String()
}

// Respond answers a single request line. Blank lines produce no output.
func (r *Rig) Respond(line string) string {
	req, valid := parseRequest(line)
	if !valid {
		return ""
	}

	return render(req, r.execute(req.name, req.args))
}
