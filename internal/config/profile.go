package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// profileFile is the on-disk layout of a daemon profile.
//
//	[daemon]
//	model = 3061
//	rig_file = "/dev/ttyUSB0"
//	serial_speed = 19200
//	civ_address = 0x76
type profileFile struct {
	Daemon DaemonConfig `toml:"daemon"`
}

// LoadDaemonProfile reads a TOML daemon profile. Keys that are absent keep the
// values of NewDaemonConfig.
func LoadDaemonProfile(path string) (DaemonConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DaemonConfig{}, fmt.Errorf("read daemon profile: %w", err)
	}

	return ParseDaemonProfile(data)
}

// ParseDaemonProfile decodes a TOML daemon profile from memory.
// Unknown keys are rejected so a typo does not silently fall back to a default.
func ParseDaemonProfile(data []byte) (DaemonConfig, error) {
	profile := profileFile{Daemon: NewDaemonConfig()}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&profile); err != nil {
		return DaemonConfig{}, fmt.Errorf("parse daemon profile: %w", err)
	}

	return profile.Daemon, nil
}
