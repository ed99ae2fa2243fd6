package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	rigctld "github.com/wagiedev/rigctld-sdk-go"
)

func newFreqCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Read or tune the VFO frequency",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current frequency in Hz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRig(cmd.Context(), func(rig rigctld.Rig) error {
				hz, err := rig.GetFrequency(cmd.Context())
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(hz, 'f', -1, 64))

				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "set <frequency>",
		Short:   "Tune the VFO",
		Long:    "Tune the VFO. The value is Hz unless it carries an SI prefix: 14074000, 7.1234MHz, \"7123.4 kHz\", 7123.4k.",
		Example: "  rigctl freq set 7.074MHz",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hz, err := rigctld.ParseFrequency(args[0])
			if err != nil {
				return err
			}

			return ctx.withRig(cmd.Context(), func(rig rigctld.Rig) error {
				if err := rig.SetFrequency(cmd.Context(), hz); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Frequency set to %s\n", rigctld.FormatFrequency(hz))

				return nil
			})
		},
	})

	return cmd
}

func newModeCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Read or set the operating mode",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the mode and passband",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRig(cmd.Context(), func(rig rigctld.Rig) error {
				mode, passband, err := rig.GetMode(cmd.Context())
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", mode, passband)

				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <mode> [passband]",
		Short: "Set the mode; passband 0 or omitted uses the rig default",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := rigctld.ParseMode(args[0])
			if err != nil {
				return err
			}

			var passband uint64
			if len(args) == 2 {
				passband, err = strconv.ParseUint(args[1], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid passband %q: %w", args[1], err)
				}
			}

			return ctx.withRig(cmd.Context(), func(rig rigctld.Rig) error {
				if err := rig.SetMode(cmd.Context(), mode, uint32(passband)); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Mode set to %s\n", mode)

				return nil
			})
		},
	})

	return cmd
}

func newPowerCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "power",
		Short: "Read or change the power status",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print off, on or standby",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRig(cmd.Context(), func(rig rigctld.Rig) error {
				state, err := rig.GetPowerState(cmd.Context())
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), state)

				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <off|on|standby>",
		Short:     "Change the power status",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"off", "on", "standby"},
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := rigctld.ParsePowerState(args[0])
			if err != nil {
				return err
			}

			return ctx.withRig(cmd.Context(), func(rig rigctld.Rig) error {
				if err := rig.SetPowerState(cmd.Context(), state); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Power status set to %s\n", state)

				return nil
			})
		},
	})

	return cmd
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show frequency, mode and power in a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRig(cmd.Context(), func(rig rigctld.Rig) error {
				hz, err := rig.GetFrequency(cmd.Context())
				if err != nil {
					return err
				}

				mode, passband, err := rig.GetMode(cmd.Context())
				if err != nil {
					return err
				}

				power, err := rig.GetPowerState(cmd.Context())
				if err != nil {
					return err
				}

				rows := [][]string{
					{"Frequency", rigctld.FormatFrequency(hz)},
					{"Mode", mode.String()},
					{"Passband", strconv.FormatUint(uint64(passband), 10) + " Hz"},
					{"Power", power.String()},
				}

				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))

				return nil
			})
		},
	}
}
