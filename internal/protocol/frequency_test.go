package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"14074000", 14074000},
		{"7.1234 MHz", 7123400},
		{"7.1234MHz", 7123400},
		{"7123.4k", 7123400},
		{"7123.4 kHz", 7123400},
		{"145M", 145000000},
		{" 3573000 Hz ", 3573000},
		{"1.2 GHz", 1200000000},
		{"7123400.4", 7123400},
		{"7.1234 mhz", 7123400},
		{"7.1234 MHZ", 7123400},
		{"7123.4 KHZ", 7123400},
		{"1.2 ghz", 1200000000},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFrequency(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseFrequency_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "7 MW", "-5", "7.1.2 MHz", "0.3", "7 m"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseFrequency(input)
			require.Error(t, err)
		})
	}
}

func TestHumanFrequency(t *testing.T) {
	require.Equal(t, "7.1234 MHz", HumanFrequency(7123400))
	require.Equal(t, "145 MHz", HumanFrequency(145000000))
	require.Equal(t, "14.074 MHz", HumanFrequency(14074000))
}
