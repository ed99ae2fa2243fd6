package main

import (
	"github.com/spf13/cobra"

	rigctld "github.com/wagiedev/rigctld-sdk-go"
)

func newMCPCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the rig as MCP tools over stdio",
		Long: `Serve the rig as MCP tools over stdio.

Connects to rigctld at --host:--port and exposes get/set frequency, mode and
power status as tools. Logs go to stderr; stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRig(cmd.Context(), func(rig rigctld.Rig) error {
				return rigctld.NewMCPServer(rig, rigctld.WithLogger(ctx.log())).ServeStdio(cmd.Context())
			})
		},
	}
}
