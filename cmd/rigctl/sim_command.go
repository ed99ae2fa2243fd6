package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wagiedev/rigctld-sdk-go/internal/sim"
)

func newSimCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sim",
		Short: "Serve a simulated dummy rig on --host:--port",
		Long: `Serve a simulated dummy rig on --host:--port.

The simulator answers get/set for frequency, mode and power status the way
rigctld's dummy backend does, and RPRT -4 for everything else. Use it to try
clients without Hamlib installed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := sim.Listen(net.JoinHostPort(ctx.host, strconv.Itoa(ctx.port)), ctx.log())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Simulated rigctld listening on %s\n", srv.Addr())

			return srv.Serve(cmd.Context())
		},
	}
}
