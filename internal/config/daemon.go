package config

import (
	"net"
	"os"
	"slices"
	"strconv"
)

const (
	// DefaultProgram is the daemon executable searched on PATH.
	DefaultProgram = "rigctld"

	// DefaultHost is the listen address of a spawned daemon.
	DefaultHost = "127.0.0.1"

	// DefaultPort is rigctld's standard listen port.
	DefaultPort = 4532

	// DummyModel is Hamlib's simulated rig.
	DummyModel = 1

	// ProgramEnv overrides DefaultProgram when set.
	ProgramEnv = "RIGCTLD_PATH"
)

// DaemonConfig holds the rigctld launch parameters.
//
// Values are immutable: the With* methods return modified copies, so a
// config shared between a spawn and a later client dial cannot drift.
// Nothing here is validated before launch; a bad combination surfaces as a
// timeout on the first command.
type DaemonConfig struct {
	Program     string   `toml:"program"`
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	Model       int      `toml:"model"`
	RigFile     string   `toml:"rig_file"`
	SerialSpeed int      `toml:"serial_speed"`
	CIVAddress  int      `toml:"civ_address"`
	ExtraArgs   []string `toml:"extra_args"`
}

// NewDaemonConfig returns the dummy-device configuration listening on
// 127.0.0.1:4532. RIGCTLD_PATH, when set, replaces the program name.
func NewDaemonConfig() DaemonConfig {
	program := DefaultProgram
	if p := os.Getenv(ProgramEnv); p != "" {
		program = p
	}

	return DaemonConfig{
		Program: program,
		Host:    DefaultHost,
		Port:    DefaultPort,
		Model:   DummyModel,
	}
}

// Addr returns the host:port the daemon listens on.
func (c DaemonConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// IsDummy reports whether no physical device is configured.
func (c DaemonConfig) IsDummy() bool {
	return c.Model == DummyModel && c.RigFile == ""
}

// WithProgram sets the executable name or path.
func (c DaemonConfig) WithProgram(program string) DaemonConfig {
	c.Program = program

	return c
}

// WithHost sets the listen address.
func (c DaemonConfig) WithHost(host string) DaemonConfig {
	c.Host = host

	return c
}

// WithPort sets the listen port.
func (c DaemonConfig) WithPort(port int) DaemonConfig {
	c.Port = port

	return c
}

// WithModel sets the Hamlib model number. See `rigctld -l`.
func (c DaemonConfig) WithModel(model int) DaemonConfig {
	c.Model = model

	return c
}

// WithRigFile sets the device path, e.g. /dev/ttyUSB0.
func (c DaemonConfig) WithRigFile(path string) DaemonConfig {
	c.RigFile = path

	return c
}

// WithSerialSpeed sets the serial baud rate, e.g. 19200.
func (c DaemonConfig) WithSerialSpeed(baud int) DaemonConfig {
	c.SerialSpeed = baud

	return c
}

// WithCIVAddress sets the Icom CI-V address, e.g. 0x76.
func (c DaemonConfig) WithCIVAddress(addr int) DaemonConfig {
	c.CIVAddress = addr

	return c
}

// WithExtraArgs appends raw switches passed after the generated ones.
func (c DaemonConfig) WithExtraArgs(args ...string) DaemonConfig {
	c.ExtraArgs = append(slices.Clone(c.ExtraArgs), args...)

	return c
}
