package launch

import (
	"strconv"

	"github.com/wagiedev/rigctld-sdk-go/internal/config"
)

// BuildArgs constructs the rigctld command line for cfg.
//
// Listen address, port and model are always passed. Device path, serial
// speed and CI-V address are passed only when set. ExtraArgs follow verbatim.
// The CI-V address is rendered in decimal.
func BuildArgs(cfg config.DaemonConfig) []string {
	args := []string{
		"-T", cfg.Host,
		"-t", strconv.Itoa(cfg.Port),
		"-m", strconv.Itoa(cfg.Model),
	}

	if cfg.RigFile != "" {
		args = append(args, "-r", cfg.RigFile)
	}

	if cfg.SerialSpeed > 0 {
		args = append(args, "-s", strconv.Itoa(cfg.SerialSpeed))
	}

	if cfg.CIVAddress > 0 {
		args = append(args, "-c", strconv.Itoa(cfg.CIVAddress))
	}

	args = append(args, cfg.ExtraArgs...)

	return args
}
