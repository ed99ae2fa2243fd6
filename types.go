package rigctld

import (
	"github.com/wagiedev/rigctld-sdk-go/internal/config"
	"github.com/wagiedev/rigctld-sdk-go/internal/protocol"
	"github.com/wagiedev/rigctld-sdk-go/internal/supervisor"
)

// Re-export types from internal packages

// ===== Configuration =====

// Options configures clients and the daemon supervisor.
type Options = config.Options

// Transport carries encoded requests to rigctld and returns raw replies.
// Inject one with WithTransport to test without a daemon.
type Transport = config.Transport

// DaemonConfig holds the rigctld launch parameters.
type DaemonConfig = config.DaemonConfig

// NewDaemonConfig returns the dummy-device configuration on 127.0.0.1:4532.
func NewDaemonConfig() DaemonConfig {
	return config.NewDaemonConfig()
}

// LoadDaemonProfile reads a TOML daemon profile.
func LoadDaemonProfile(path string) (DaemonConfig, error) {
	return config.LoadDaemonProfile(path)
}

// ===== Protocol =====

// Mode is a Hamlib operating mode.
type Mode = protocol.Mode

const (
	ModeUSB     = protocol.ModeUSB
	ModeLSB     = protocol.ModeLSB
	ModeCW      = protocol.ModeCW
	ModeCWR     = protocol.ModeCWR
	ModeRTTY    = protocol.ModeRTTY
	ModeRTTYR   = protocol.ModeRTTYR
	ModeAM      = protocol.ModeAM
	ModeFM      = protocol.ModeFM
	ModeWFM     = protocol.ModeWFM
	ModeAMS     = protocol.ModeAMS
	ModePKTLSB  = protocol.ModePKTLSB
	ModePKTUSB  = protocol.ModePKTUSB
	ModePKTFM   = protocol.ModePKTFM
	ModeECSSUSB = protocol.ModeECSSUSB
	ModeECSSLSB = protocol.ModeECSSLSB
	ModeFAX     = protocol.ModeFAX
	ModeSAM     = protocol.ModeSAM
	ModeSAL     = protocol.ModeSAL
	ModeSAH     = protocol.ModeSAH
	ModeDSB     = protocol.ModeDSB
)

// ParseMode converts an exact mode name such as "USB" into a Mode.
func ParseMode(s string) (Mode, error) {
	return protocol.ParseMode(s)
}

// PowerState is the rig power status.
type PowerState = protocol.PowerState

const (
	PowerOff = protocol.PowerOff
	PowerOn  = protocol.PowerOn
	StandBy  = protocol.StandBy
)

// ParsePowerState accepts "off", "on" or "standby".
func ParsePowerState(name string) (PowerState, error) {
	return protocol.PowerStateFromName(name)
}

// Command is a single rigctld request.
type Command = protocol.Command

// Typed commands accepted by Rig.Do.
type (
	GetFrequencyCommand  = protocol.GetFrequency
	SetFrequencyCommand  = protocol.SetFrequency
	GetModeCommand       = protocol.GetMode
	SetModeCommand       = protocol.SetMode
	GetPowerStateCommand = protocol.GetPowerState
	SetPowerStateCommand = protocol.SetPowerState

	// RawCommand sends any command by long name and returns its fields unvalidated.
	RawCommand = protocol.Raw
)

// Response is a decoded rigctld reply.
type Response = protocol.Response

// Response variants returned by Rig.Do.
type (
	FrequencyResponse  = protocol.FrequencyResponse
	ModeResponse       = protocol.ModeResponse
	PowerStateResponse = protocol.PowerStateResponse
	AckResponse        = protocol.AckResponse
	RawResponse        = protocol.RawResponse
	Field              = protocol.Field
)

// ===== Daemon =====

// DaemonHandle owns a spawned rigctld process.
type DaemonHandle = supervisor.Handle

// DaemonState is the lifecycle phase of a DaemonHandle.
type DaemonState = supervisor.State

const (
	DaemonNotStarted  = supervisor.NotStarted
	DaemonStarting    = supervisor.Starting
	DaemonReady       = supervisor.Ready
	DaemonStartFailed = supervisor.StartFailed
	DaemonCrashed     = supervisor.Crashed
	DaemonStopping    = supervisor.Stopping
	DaemonStopped     = supervisor.Stopped
)

// PortLock is an advisory per-port lock held for one daemon lifecycle.
type PortLock = supervisor.PortLock
