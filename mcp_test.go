package rigctld_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	rigctld "github.com/wagiedev/rigctld-sdk-go"
)

func TestMCPServer_RigTools(t *testing.T) {
	ctx := context.Background()
	host, port := startSim(t)

	rig, err := rigctld.Dial(ctx, host, port)
	require.NoError(t, err)

	defer rig.Close()

	server := rigctld.NewMCPServer(rig)
	require.Equal(t, []string{
		"get_frequency", "get_mode", "get_power_state",
		"set_frequency", "set_mode", "set_power_state",
	}, server.Tools())

	out, err := server.CallTool(ctx, "set_frequency", map[string]any{"frequency": "7123.4k"})
	require.NoError(t, err)
	require.Equal(t, "Frequency set to 7123400 Hz", out)

	out, err = server.CallTool(ctx, "get_frequency", nil)
	require.NoError(t, err)
	require.Equal(t, "Frequency: 7123400 Hz (7.1234 MHz)", out)

	_, err = server.CallTool(ctx, "set_mode", map[string]any{"mode": "XYZ"})
	require.ErrorContains(t, err, "unknown mode")
}

func TestMCPServer_CustomTool(t *testing.T) {
	ctx := context.Background()
	server := rigctld.NewMCPServer(rigctld.NewRig(&staticTransport{reply: "RPRT -11\n"}))

	server.AddTool(rigctld.NewTool(
		"get_vfo",
		"Reads the active VFO",
		nil,
		func(context.Context, map[string]any) (map[string]any, error) {
			return map[string]any{"vfo": "VFOA"}, nil
		},
	))

	out, err := server.CallTool(ctx, "get_vfo", nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"vfo":"VFOA"}`, out)

	_, err = server.CallTool(ctx, "get_frequency", nil)
	require.ErrorContains(t, err, "RIG_ENAVAIL")

	_, err = server.CallTool(ctx, "nope", nil)
	require.ErrorContains(t, err, "Tool not found")
}
