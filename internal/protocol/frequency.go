package protocol

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseFrequency reads a human-entered frequency such as "7.1234 MHz",
// "7123.4k" or "14074000" and returns whole Hz.
//
// An SI prefix is optional, the unit may be omitted or "Hz" in any case.
// Before "Hz" the prefix letter is case-insensitive, so "mhz" is megahertz
// and "KHZ" is kilohertz. The result is rounded to the nearest Hz and a
// non-zero input that rounds to 0 is rejected.
func ParseFrequency(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty frequency")
	}

	s = normalizeUnit(s)

	value, unit, err := humanize.ParseSI(s)
	if err != nil {
		return 0, fmt.Errorf("frequency %q: %w", s, err)
	}

	if unit = strings.TrimSpace(unit); unit != "" && !strings.EqualFold(unit, "hz") {
		return 0, fmt.Errorf("frequency %q: unknown unit %q", s, unit)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, fmt.Errorf("frequency %q out of range", s)
	}

	hz := math.Round(value)
	if hz == 0 && value != 0 {
		return 0, fmt.Errorf("frequency %q is below 1 Hz", s)
	}

	return hz, nil
}

// normalizeUnit rewrites a "khz", "mhz" or "ghz" suffix in any case to its
// SI spelling. A lowercase m is otherwise milli.
func normalizeUnit(s string) string {
	if len(s) < 3 || !strings.EqualFold(s[len(s)-2:], "hz") {
		return s
	}

	var unit string

	switch s[len(s)-3] {
	case 'k', 'K':
		unit = "kHz"
	case 'm', 'M':
		unit = "MHz"
	case 'g', 'G':
		unit = "GHz"
	default:
		return s
	}

	return s[:len(s)-3] + unit
}

// HumanFrequency renders hz with an SI prefix, e.g. "7.1234 MHz".
func HumanFrequency(hz float64) string {
	return humanize.SIWithDigits(hz, 6, "Hz")
}
