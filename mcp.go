package rigctld

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/rigctld-sdk-go/internal/mcp"
)

// MCP server identity reported to clients.
const (
	MCPServerName    = "rigctld"
	MCPServerVersion = "1.0.0"
)

// MCPServer exposes a Rig as Model Context Protocol tools.
//
// The built-in tools are get_frequency, set_frequency, get_mode, set_mode,
// get_power_state and set_power_state. Failures, including rig errors, come
// back as tool errors rather than protocol errors.
type MCPServer struct {
	server *internalmcp.Server
}

// NewMCPServer registers the rig tools for rig. Only WithLogger is consulted.
func NewMCPServer(rig Rig, opts ...Option) *MCPServer {
	options := applyOptions(opts)

	server := internalmcp.NewServer(MCPServerName, MCPServerVersion, options.Logger)
	internalmcp.RegisterRigTools(server, rig)

	return &MCPServer{server: server}
}

// AddTool registers an extra tool next to the rig tools.
func (s *MCPServer) AddTool(t Tool) {
	s.server.AddTool(
		internalmcp.NewTool(t.Name(), t.Description(), mapToJSONSchema(t.InputSchema())),
		toolToMCPHandler(t),
	)
}

// Tools returns the registered tool names in sorted order.
func (s *MCPServer) Tools() []string {
	tools := s.server.ListTools()

	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}

	return names
}

// CallTool invokes a tool directly and returns its text output.
// A tool error is returned as an error carrying the tool's message.
func (s *MCPServer) CallTool(ctx context.Context, name string, input map[string]any) (string, error) {
	result, err := s.server.CallTool(ctx, name, input)
	if err != nil {
		return "", err
	}

	var text string
	if len(result.Content) > 0 {
		if tc, ok := result.Content[0].(*mcp.TextContent); ok {
			text = tc.Text
		}
	}

	if result.IsError {
		return "", fmt.Errorf("tool %s: %s", name, text)
	}

	return text, nil
}

// Run serves the tools over transport until ctx is done or the peer leaves.
func (s *MCPServer) Run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// ServeStdio serves the tools over stdin and stdout.
func (s *MCPServer) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Tool is an extra MCP tool served alongside the rig tools.
//
// Example:
//
//	vfo := rigctld.NewTool(
//	    "get_vfo",
//	    "Reads the active VFO",
//	    nil,
//	    func(ctx context.Context, _ map[string]any) (map[string]any, error) {
//	        resp, err := rig.Do(ctx, rigctld.RawCommand{Command: "get_vfo"})
//	        if err != nil {
//	            return nil, err
//	        }
//	        return map[string]any{"vfo": resp.(*rigctld.RawResponse).Fields[0].Value}, nil
//	    },
//	)
//	server.AddTool(vfo)
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// InputSchema returns a JSON schema describing expected input.
	// Nil means the tool takes no arguments.
	InputSchema() map[string]any

	// Execute runs the tool with the provided input.
	Execute(ctx context.Context, input map[string]any) (map[string]any, error)
}

// ToolFunc is a function-based tool implementation.
type ToolFunc func(ctx context.Context, input map[string]any) (map[string]any, error)

// NewTool creates a Tool from a function.
func NewTool(name, description string, schema map[string]any, fn ToolFunc) Tool {
	return &tool{
		name:        name,
		description: description,
		schema:      schema,
		fn:          fn,
	}
}

// tool is the internal tool implementation.
type tool struct {
	name        string
	description string
	schema      map[string]any
	fn          ToolFunc
}

// Compile-time verification that *tool implements the Tool interface.
var _ Tool = (*tool)(nil)

func (t *tool) Name() string                { return t.name }
func (t *tool) Description() string         { return t.description }
func (t *tool) InputSchema() map[string]any { return t.schema }
func (t *tool) Execute(ctx context.Context, input map[string]any) (map[string]any, error) {
	return t.fn(ctx, input)
}

// toolToMCPHandler adapts Tool.Execute to an mcp.ToolHandler. The result map
// is returned as JSON text.
func toolToMCPHandler(t Tool) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := internalmcp.ParseArguments(req)
		if err != nil {
			return internalmcp.ErrorResult(fmt.Sprintf("failed to parse arguments: %v", err)), nil
		}

		result, err := t.Execute(ctx, args)
		if err != nil {
			return internalmcp.ErrorResult(err.Error()), nil
		}

		data, err := json.Marshal(result)
		if err != nil {
			return internalmcp.ErrorResult(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}

		return internalmcp.TextResult(string(data)), nil
	}
}

// mapToJSONSchema converts a map[string]any JSON schema to *jsonschema.Schema.
func mapToJSONSchema(m map[string]any) *jsonschema.Schema {
	if m == nil {
		return nil
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil
	}

	return &schema
}
