package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	rigctld "github.com/wagiedev/rigctld-sdk-go"
	"github.com/wagiedev/rigctld-sdk-go/internal/config"
	"github.com/wagiedev/rigctld-sdk-go/internal/launch"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	var program string

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Inspect and run the rigctld daemon",
	}

	cmd.PersistentFlags().StringVar(&program, "program", "", "rigctld executable (default $"+config.ProgramEnv+" or rigctld)")

	cmd.AddCommand(newDaemonCheckCommand(ctx, &program))
	cmd.AddCommand(newDaemonModelsCommand(ctx, &program))
	cmd.AddCommand(newDaemonRunCommand(ctx, &program))

	return cmd
}

// resolveProgram applies --program over the environment default.
func resolveProgram(program string) string {
	if strings.TrimSpace(program) != "" {
		return program
	}

	return config.NewDaemonConfig().Program
}

func newDaemonCheckCommand(ctx *commandContext, program *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether rigctld is installed and which version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := resolveProgram(*program)

			path, err := launch.NewDiscoverer(&launch.Config{
				Program: name,
				Logger:  ctx.log(),
			}).Discover(cmd.Context())
			if err != nil {
				return err
			}

			output, err := rigctld.DaemonVersion(cmd.Context(), path)
			if err != nil {
				return err
			}

			version, ok := launch.ParseVersion(output)
			supported := "unknown"

			if ok {
				supported = yesNo(launch.Supported(version))
			} else {
				version = output
			}

			rows := [][]string{
				{"Executable", path},
				{"Version", version},
				{"Supported (>= " + launch.MinimumVersion + ")", supported},
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Check", "Result"}, rows, nil))

			return nil
		},
	}
}

func newDaemonModelsCommand(_ *commandContext, program *string) *cobra.Command {
	return &cobra.Command{
		Use:   "models [filter]",
		Short: "List the rig models rigctld supports",
		Long:  "List the rig models rigctld supports. The optional filter matches manufacturer or model name, ignoring case.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := launch.ListModels(cmd.Context(), resolveProgram(*program))
			if err != nil {
				return err
			}

			var filter string
			if len(args) == 1 {
				filter = strings.ToLower(args[0])
			}

			rows := make([][]string, 0, len(models))

			for _, m := range models {
				if filter != "" &&
					!strings.Contains(strings.ToLower(m.Manufacturer), filter) &&
					!strings.Contains(strings.ToLower(m.Name), filter) {
					continue
				}

				rows = append(rows, []string{strconv.Itoa(m.ID), m.Manufacturer, m.Name, m.Version, m.Status})
			}

			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching models")

				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Manufacturer", "Model", "Version", "Status"},
				rows,
				[]columnAlignment{alignRight},
			))

			return nil
		},
	}
}

type daemonRunFlags struct {
	profile          string
	model            int
	rigFile          string
	serialSpeed      int
	civAddress       int
	readinessTimeout time.Duration
	gracePeriod      time.Duration
}

func newDaemonRunCommand(ctx *commandContext, program *string) *cobra.Command {
	var flags daemonRunFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run rigctld in the foreground until interrupted",
		Long: `Run rigctld in the foreground until interrupted.

Settings come from --profile (TOML, [daemon] table) and are overridden by
explicit flags. The port is locked for the lifetime of the command so a second
"rigctl daemon run" on the same port fails fast instead of racing the first.`,
		Example: "  rigctl daemon run --model 3061 --rig-file /dev/ttyUSB0 --serial-speed 19200 --civ-address 0x76",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.daemonConfig(cmd, ctx, *program)
			if err != nil {
				return err
			}

			return runDaemon(cmd, ctx, cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.profile, "profile", "", "TOML daemon profile")
	cmd.Flags().IntVarP(&flags.model, "model", "m", config.DummyModel, "Hamlib model number (see 'rigctl daemon models')")
	cmd.Flags().StringVarP(&flags.rigFile, "rig-file", "r", "", "Serial device, e.g. /dev/ttyUSB0")
	cmd.Flags().IntVarP(&flags.serialSpeed, "serial-speed", "s", 0, "Serial baud rate")
	cmd.Flags().IntVarP(&flags.civAddress, "civ-address", "c", 0, "Icom CI-V address, e.g. 0x76")
	cmd.Flags().DurationVar(&flags.readinessTimeout, "readiness-timeout", config.DefaultReadinessTimeout, "How long to wait for the port to open")
	cmd.Flags().DurationVar(&flags.gracePeriod, "grace", config.DefaultGracePeriod, "How long to wait after SIGTERM before SIGKILL")

	return cmd
}

// daemonConfig layers the profile, then explicitly set flags, over the defaults.
func (f daemonRunFlags) daemonConfig(cmd *cobra.Command, ctx *commandContext, program string) (rigctld.DaemonConfig, error) {
	cfg := rigctld.NewDaemonConfig()

	if f.profile != "" {
		loaded, err := rigctld.LoadDaemonProfile(f.profile)
		if err != nil {
			return cfg, err
		}

		cfg = loaded
	}

	changed := cmd.Flags().Changed

	if program != "" {
		cfg = cfg.WithProgram(program)
	}

	if changed("host") {
		cfg = cfg.WithHost(ctx.host)
	}

	if changed("port") {
		cfg = cfg.WithPort(ctx.port)
	}

	if changed("model") {
		cfg = cfg.WithModel(f.model)
	}

	if changed("rig-file") {
		cfg = cfg.WithRigFile(f.rigFile)
	}

	if changed("serial-speed") {
		cfg = cfg.WithSerialSpeed(f.serialSpeed)
	}

	if changed("civ-address") {
		cfg = cfg.WithCIVAddress(f.civAddress)
	}

	return cfg, nil
}

func runDaemon(cmd *cobra.Command, ctx *commandContext, cfg rigctld.DaemonConfig, flags daemonRunFlags) error {
	log := ctx.log()

	lock, err := rigctld.LockPort(cfg.Port)
	if err != nil {
		return err
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("Failed to release port lock", "path", lock.Path(), "error", err)
		}
	}()

	handle, err := rigctld.Spawn(cmd.Context(), cfg,
		rigctld.WithLogger(log),
		rigctld.WithReadinessTimeout(flags.readinessTimeout),
		rigctld.WithGracePeriod(flags.gracePeriod),
		rigctld.WithStderr(func(line string) {
			log.Info("rigctld", "stderr", line)
		}),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "rigctld ready on %s (pid %d, model %d)\n", handle.Addr(), handle.PID(), cfg.Model)

	var exitErr error

	select {
	case <-cmd.Context().Done():
	case <-handle.Exited():
		exitErr = fmt.Errorf("rigctld exited unexpectedly with code %d: %s", handle.ExitCode(), handle.Stderr())
	}

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), flags.gracePeriod+2*time.Second)
	defer cancel()

	if err := handle.Stop(stopCtx); err != nil {
		return errors.Join(exitErr, err)
	}

	if exitErr == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "rigctld stopped")
	}

	return exitErr
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
