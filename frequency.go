package rigctld

import "github.com/wagiedev/rigctld-sdk-go/internal/protocol"

// ParseFrequency converts "14074000", "7.1234 MHz" or "7123.4k" into whole Hz.
func ParseFrequency(s string) (float64, error) {
	return protocol.ParseFrequency(s)
}

// FormatFrequency renders hz with an SI prefix, e.g. "7.1234 MHz".
func FormatFrequency(hz float64) string {
	return protocol.HumanFrequency(hz)
}
