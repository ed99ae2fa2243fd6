package protocol

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Mode is a Hamlib operating mode name as used on the wire.
type Mode string

// Operating modes understood by rigctld.
const (
	ModeUSB     Mode = "USB"
	ModeLSB     Mode = "LSB"
	ModeCW      Mode = "CW"
	ModeCWR     Mode = "CWR"
	ModeRTTY    Mode = "RTTY"
	ModeRTTYR   Mode = "RTTYR"
	ModeAM      Mode = "AM"
	ModeFM      Mode = "FM"
	ModeWFM     Mode = "WFM"
	ModeAMS     Mode = "AMS"
	ModePKTLSB  Mode = "PKTLSB"
	ModePKTUSB  Mode = "PKTUSB"
	ModePKTFM   Mode = "PKTFM"
	ModeECSSUSB Mode = "ECSSUSB"
	ModeECSSLSB Mode = "ECSSLSB"
	ModeFAX     Mode = "FAX"
	ModeSAM     Mode = "SAM"
	ModeSAL     Mode = "SAL"
	ModeSAH     Mode = "SAH"
	ModeDSB     Mode = "DSB"
)

var modes = []Mode{
	ModeUSB, ModeLSB, ModeCW, ModeCWR, ModeRTTY, ModeRTTYR, ModeAM, ModeFM, ModeWFM, ModeAMS,
	ModePKTLSB, ModePKTUSB, ModePKTFM, ModeECSSUSB, ModeECSSLSB, ModeFAX, ModeSAM, ModeSAL, ModeSAH, ModeDSB,
}

// Modes returns every supported mode in Hamlib's declaration order.
func Modes() []Mode {
	return slices.Clone(modes)
}

// ParseMode converts a wire mode name into a Mode.
// Matching is exact; rigctld always reports upper-case names.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if slices.Contains(modes, m) {
		return m, nil
	}

	return "", fmt.Errorf("unknown mode %q", s)
}

func (m Mode) String() string {
	return string(m)
}

// PowerState is the rig power status reported by get_powerstat.
type PowerState int

// Power states as encoded on the wire.
const (
	PowerOff PowerState = 0
	PowerOn  PowerState = 1
	StandBy  PowerState = 2
)

// ParsePowerState converts the wire digit into a PowerState.
func ParsePowerState(s string) (PowerState, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("power status %q: %w", s, err)
	}

	switch p := PowerState(n); p {
	case PowerOff, PowerOn, StandBy:
		return p, nil
	default:
		return 0, fmt.Errorf("unknown power status %d", n)
	}
}

// PowerStateFromName accepts the human names "off", "on" and "standby".
func PowerStateFromName(name string) (PowerState, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "off":
		return PowerOff, nil
	case "on":
		return PowerOn, nil
	case "standby":
		return StandBy, nil
	default:
		return 0, fmt.Errorf("unknown power state %q (want off, on or standby)", name)
	}
}

// Wire returns the digit sent to and received from rigctld.
func (p PowerState) Wire() string {
	return strconv.Itoa(int(p))
}

func (p PowerState) String() string {
	switch p {
	case PowerOff:
		return "off"
	case PowerOn:
		return "on"
	case StandBy:
		return "standby"
	default:
		return "PowerState(" + strconv.Itoa(int(p)) + ")"
	}
}
