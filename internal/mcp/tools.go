package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/rigctld-sdk-go/internal/protocol"
)

// Rig is the set of operations the rig tools drive.
type Rig interface {
	GetFrequency(ctx context.Context) (float64, error)
	SetFrequency(ctx context.Context, hz float64) error
	GetMode(ctx context.Context) (protocol.Mode, uint32, error)
	SetMode(ctx context.Context, mode protocol.Mode, passband uint32) error
	GetPowerState(ctx context.Context) (protocol.PowerState, error)
	SetPowerState(ctx context.Context, state protocol.PowerState) error
}

// Tool names registered by RegisterRigTools.
const (
	ToolGetFrequency  = "get_frequency"
	ToolSetFrequency  = "set_frequency"
	ToolGetMode       = "get_mode"
	ToolSetMode       = "set_mode"
	ToolGetPowerState = "get_power_state"
	ToolSetPowerState = "set_power_state"
)

// RegisterRigTools adds the frequency, mode and power tools for rig to s.
func RegisterRigTools(s *Server, rig Rig) {
	t := rigTools{rig: rig}

	s.AddTool(NewTool(ToolGetFrequency, "Read the current VFO frequency in Hz.", nil), t.getFrequency)
	s.AddTool(NewTool(ToolSetFrequency, "Tune the current VFO.", setFrequencySchema()), t.setFrequency)
	s.AddTool(NewTool(ToolGetMode, "Read the operating mode and passband.", nil), t.getMode)
	s.AddTool(NewTool(ToolSetMode, "Set the operating mode and passband.", setModeSchema()), t.setMode)
	s.AddTool(NewTool(ToolGetPowerState, "Read the rig power status.", nil), t.getPowerState)
	s.AddTool(NewTool(ToolSetPowerState, "Power the rig off, on, or into standby.", setPowerStateSchema()), t.setPowerState)
}

func setFrequencySchema() *jsonschema.Schema {
	schema := SimpleSchema(map[string]string{"frequency": "string"})
	schema.Properties["frequency"] = &jsonschema.Schema{
		Types:       []string{"string", "number"},
		Description: `Frequency in Hz, optionally with an SI prefix: 14074000, "7.1234 MHz", "7123.4k".`,
	}

	return schema
}

func setModeSchema() *jsonschema.Schema {
	modes := protocol.Modes()
	enum := make([]any, len(modes))

	for i, m := range modes {
		enum[i] = string(m)
	}

	schema := SimpleSchema(map[string]string{"mode": "string", "passband": "uint32"})
	schema.Properties["mode"].Enum = enum
	schema.Properties["passband"].Description = "Passband in Hz; 0 or omitted selects the rig's default for the mode."
	schema.Required = []string{"mode"}

	return schema
}

func setPowerStateSchema() *jsonschema.Schema {
	schema := SimpleSchema(map[string]string{"state": "string"})
	schema.Properties["state"].Enum = []any{"off", "on", "standby"}

	return schema
}

type rigTools struct {
	rig Rig
}

func (t rigTools) getFrequency(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hz, err := t.rig.GetFrequency(ctx)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}

	return TextResult(fmt.Sprintf("Frequency: %s Hz (%s)", protocol.FormatHz(hz), protocol.HumanFrequency(hz))), nil
}

func (t rigTools) setFrequency(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Frequency json.RawMessage `json:"frequency"`
	}

	if err := decodeArguments(req, &args); err != nil {
		return ErrorResult(err.Error()), nil
	}

	if len(args.Frequency) == 0 {
		return ErrorResult("missing required argument: frequency"), nil
	}

	hz, err := frequencyArgument(args.Frequency)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}

	if err := t.rig.SetFrequency(ctx, hz); err != nil {
		return ErrorResult(err.Error()), nil
	}

	return TextResult(fmt.Sprintf("Frequency set to %s Hz", protocol.FormatHz(hz))), nil
}

// frequencyArgument accepts a JSON number in Hz, exponent form included, or
// a string such as "7.1234 MHz".
func frequencyArgument(raw json.RawMessage) (float64, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return protocol.ParseFrequency(text)
	}

	hz, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return protocol.ParseFrequency(string(raw))
	}

	if math.IsNaN(hz) || math.IsInf(hz, 0) || hz < 0 {
		return 0, fmt.Errorf("frequency %s out of range", raw)
	}

	if math.Round(hz) == 0 && hz != 0 {
		return 0, fmt.Errorf("frequency %s is below 1 Hz", raw)
	}

	return math.Round(hz), nil
}

func (t rigTools) getMode(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode, passband, err := t.rig.GetMode(ctx)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}

	return TextResult(fmt.Sprintf("Mode: %s\nPassband: %d Hz", mode, passband)), nil
}

func (t rigTools) setMode(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Mode     string  `json:"mode"`
		Passband *uint32 `json:"passband"`
	}

	if err := decodeArguments(req, &args); err != nil {
		return ErrorResult(err.Error()), nil
	}

	mode, err := protocol.ParseMode(args.Mode)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}

	var passband uint32
	if args.Passband != nil {
		passband = *args.Passband
	}

	if err := t.rig.SetMode(ctx, mode, passband); err != nil {
		return ErrorResult(err.Error()), nil
	}

	return TextResult(fmt.Sprintf("Mode set to %s, passband %d Hz", mode, passband)), nil
}

func (t rigTools) getPowerState(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := t.rig.GetPowerState(ctx)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}

	return TextResult("Power status: " + state.String()), nil
}

func (t rigTools) setPowerState(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		State string `json:"state"`
	}

	if err := decodeArguments(req, &args); err != nil {
		return ErrorResult(err.Error()), nil
	}

	state, err := protocol.PowerStateFromName(args.State)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}

	if err := t.rig.SetPowerState(ctx, state); err != nil {
		return ErrorResult(err.Error()), nil
	}

	return TextResult("Power status set to " + state.String()), nil
}

// decodeArguments unmarshals the raw tool arguments into v.
func decodeArguments(req *mcp.CallToolRequest, v any) error {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}

	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	return nil
}
