package protocol

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/rigctld-sdk-go/internal/errors"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"get_freq", GetFrequency{}, ";\\get_freq\n"},
		{"set_freq whole hz", SetFrequency{Hz: 145000000}, ";\\set_freq 145000000\n"},
		{"set_freq fractional", SetFrequency{Hz: 7123.4}, ";\\set_freq 7123.4\n"},
		{"set_freq large never exponent", SetFrequency{Hz: 10e9}, ";\\set_freq 10000000000\n"},
		{"get_mode", GetMode{}, ";\\get_mode\n"},
		{"set_mode", SetMode{Mode: ModeUSB, Passband: 0}, ";\\set_mode USB 0\n"},
		{"set_mode passband", SetMode{Mode: ModeLSB, Passband: 1234}, ";\\set_mode LSB 1234\n"},
		{"get_powerstat", GetPowerState{}, ";\\get_powerstat\n"},
		{"set_powerstat", SetPowerState{State: StandBy}, ";\\set_powerstat 2\n"},
		{"raw", Raw{Command: "set_level", Arguments: []string{"AF", "0.5"}}, ";\\set_level AF 0.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, string(Encode(tt.cmd)))
		})
	}
}

func TestDecode_GetFrequency(t *testing.T) {
	resp, err := Decode(GetFrequency{}, []byte("get_freq:;Frequency: 145000000;RPRT 0\n"))
	require.NoError(t, err)

	freq, ok := resp.(*FrequencyResponse)
	require.True(t, ok, "expected *FrequencyResponse, got %T", resp)
	require.InDelta(t, 145000000, freq.Hz, 0)
	require.Equal(t, "get_freq", freq.CommandName())
	require.Equal(t, 0, freq.Status())
}

func TestDecode_NewlineLayout(t *testing.T) {
	resp, err := Decode(GetMode{}, []byte("get_mode:\nMode: FM\nPassband: 15000\nRPRT 0\n"))
	require.NoError(t, err)

	mode, ok := resp.(*ModeResponse)
	require.True(t, ok)
	require.Equal(t, ModeFM, mode.Mode)
	require.Equal(t, uint32(15000), mode.Passband)
}

func TestDecode_Acknowledgements(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		raw  string
		echo string
	}{
		{"set_freq", SetFrequency{Hz: 7123.4}, "set_freq: 7123.4;RPRT 0", "7123.4"},
		{"set_mode", SetMode{Mode: ModeUSB}, "set_mode: USB 0;RPRT 0", "USB 0"},
		{"set_powerstat", SetPowerState{State: PowerOn}, "set_powerstat: 1;RPRT 0", "1"},
		{"set_freq numeric echo", SetFrequency{Hz: 7123000}, "set_freq: 7123000.000000;RPRT 0", "7123000.000000"},
		{"set_mode passband", SetMode{Mode: ModeLSB, Passband: 1234}, "set_mode: LSB 1234;RPRT 0", "LSB 1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Decode(tt.cmd, []byte(tt.raw))
			require.NoError(t, err)

			ack, ok := resp.(*AckResponse)
			require.True(t, ok, "expected *AckResponse, got %T", resp)
			require.Equal(t, tt.echo, ack.Echo)
		})
	}
}

func TestDecode_PowerState(t *testing.T) {
	resp, err := Decode(GetPowerState{}, []byte("get_powerstat:;Power Status: 2;RPRT 0"))
	require.NoError(t, err)

	power, ok := resp.(*PowerStateResponse)
	require.True(t, ok)
	require.Equal(t, StandBy, power.State)
}

func TestDecode_NonzeroStatusAlwaysRigError(t *testing.T) {
	commands := []Command{
		GetFrequency{}, SetFrequency{Hz: 1}, GetMode{}, SetMode{Mode: ModeCW},
		GetPowerState{}, SetPowerState{}, Raw{Command: "get_level"},
	}

	for _, cmd := range commands {
		for _, code := range []int{-1, -4, -11, -20, -99, 1, 42} {
			t.Run(fmt.Sprintf("%s/%d", cmd.Name(), code), func(t *testing.T) {
				// Field segments are deliberately garbage: they must not be parsed.
				raw := fmt.Sprintf("%s: junk;not a field;Frequency: xyz;RPRT %d", cmd.Name(), code)

				resp, err := Decode(cmd, []byte(raw))
				require.Nil(t, resp)

				rigErr, ok := stderrors.AsType[*errors.RigError](err)
				require.True(t, ok, "expected RigError, got %v", err)
				require.Equal(t, code, rigErr.Code)
			})
		}
	}
}

func TestDecode_BareStatus(t *testing.T) {
	t.Run("error without echo", func(t *testing.T) {
		_, err := Decode(SetFrequency{Hz: 1}, []byte("RPRT -1\n"))

		rigErr, ok := stderrors.AsType[*errors.RigError](err)
		require.True(t, ok)
		require.Equal(t, -1, rigErr.Code)
	})

	t.Run("success without echo on ack command", func(t *testing.T) {
		resp, err := Decode(SetMode{Mode: ModeAM}, []byte("RPRT 0"))
		require.NoError(t, err)
		require.IsType(t, &AckResponse{}, resp)
	})

	t.Run("success without echo on get command", func(t *testing.T) {
		_, err := Decode(GetFrequency{}, []byte("RPRT 0"))
		requireProtocolKind(t, err, errors.ProtocolMalformedField)
	})
}

func TestDecode_MismatchAlwaysDetected(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		raw  string
	}{
		{"other getter", GetFrequency{}, "get_mode:;Mode: FM;Passband: 15000;RPRT 0"},
		{"setter for getter", GetMode{}, "set_mode: USB 0;RPRT 0"},
		{"mismatch wins over error status", SetFrequency{Hz: 1}, "set_mode: USB 0;RPRT -1"},
		{"no colon", GetFrequency{}, "Frequency: 1;RPRT 0"},
		{"prefix of name", GetPowerState{}, "get_power:;Power Status: 1;RPRT 0"},
		{"raw name", Raw{Command: "get_level"}, "get_freq:;Frequency: 1;RPRT 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Decode(tt.cmd, []byte(tt.raw))
			require.Nil(t, resp)
			requireProtocolKind(t, err, errors.ProtocolMismatch)
		})
	}
}

func TestDecode_Truncated(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"newline only", "\n"},
		{"missing status", "get_freq:;Frequency: 145000000"},
		{"status without code", "get_freq:;Frequency: 145000000;RPRT"},
		{"status with text code", "get_freq:;Frequency: 145000000;RPRT ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(GetFrequency{}, []byte(tt.raw))
			requireProtocolKind(t, err, errors.ProtocolTruncated)
		})
	}
}

func TestDecode_MalformedField(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		raw  string
	}{
		{"non numeric frequency", GetFrequency{}, "get_freq:;Frequency: abc;RPRT 0"},
		{"non finite frequency", GetFrequency{}, "get_freq:;Frequency: NaN;RPRT 0"},
		{"wrong label", GetFrequency{}, "get_freq:;Freq: 145000000;RPRT 0"},
		{"missing field", GetFrequency{}, "get_freq:;RPRT 0"},
		{"extra field", GetFrequency{}, "get_freq:;Frequency: 1;VFO: VFOA;RPRT 0"},
		{"unlabelled segment", GetFrequency{}, "get_freq:;145000000;RPRT 0"},
		{"unknown mode", GetMode{}, "get_mode:;Mode: XYZ;Passband: 15000;RPRT 0"},
		{"negative passband", GetMode{}, "get_mode:;Mode: FM;Passband: -1;RPRT 0"},
		{"swapped labels", GetMode{}, "get_mode:;Passband: 15000;Mode: FM;RPRT 0"},
		{"unknown power status", GetPowerState{}, "get_powerstat:;Power Status: 7;RPRT 0"},
		{"fields on ack", SetFrequency{Hz: 1}, "set_freq: 1;Frequency: 1;RPRT 0"},
		{"clamped frequency echo", SetFrequency{Hz: 7123000}, "set_freq: 1;RPRT 0"},
		{"other mode echoed", SetMode{Mode: ModeLSB, Passband: 1234}, "set_mode: USB 0;RPRT 0"},
		{"other passband echoed", SetMode{Mode: ModeLSB, Passband: 1234}, "set_mode: LSB 2400;RPRT 0"},
		{"missing echo argument", SetMode{Mode: ModeLSB, Passband: 1234}, "set_mode: LSB;RPRT 0"},
		{"other power state echoed", SetPowerState{State: PowerOn}, "set_powerstat: 0;RPRT 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Decode(tt.cmd, []byte(tt.raw))
			require.Nil(t, resp)
			requireProtocolKind(t, err, errors.ProtocolMalformedField)
		})
	}
}

func TestDecode_Raw(t *testing.T) {
	resp, err := Decode(
		Raw{Command: "get_level", Arguments: []string{"STRENGTH"}},
		[]byte("get_level: STRENGTH;Level Value: -54;unlabelled;RPRT 0\n"),
	)
	require.NoError(t, err)

	raw, ok := resp.(*RawResponse)
	require.True(t, ok)
	require.Equal(t, "STRENGTH", raw.Echo)
	require.Equal(t, []Field{
		{Label: "Level Value", Value: "-54"},
		{Value: "unlabelled"},
	}, raw.Fields)

	v, ok := raw.Value("Level Value")
	require.True(t, ok)
	require.Equal(t, "-54", v)

	_, ok = raw.Value("missing")
	require.False(t, ok)
}

func TestRoundTrip_EncodeMatchesDecodeEcho(t *testing.T) {
	for _, hz := range []float64{0, 1, 7123400, 145000000, 1296000000, 10368000000} {
		cmd := SetFrequency{Hz: hz}
		raw := cmd.Name() + ": " + cmd.Args()[0] + ";RPRT 0"

		resp, err := Decode(cmd, []byte(raw))
		require.NoError(t, err)
		require.Equal(t, FormatHz(hz), resp.(*AckResponse).Echo)

		got, err := Decode(GetFrequency{}, []byte("get_freq:;Frequency: "+FormatHz(hz)+";RPRT 0"))
		require.NoError(t, err)
		require.InDelta(t, hz, got.(*FrequencyResponse).Hz, 0)
	}
}

func TestIsTerminator(t *testing.T) {
	require.True(t, IsTerminator("RPRT 0\n"))
	require.True(t, IsTerminator("RPRT -11"))
	require.True(t, IsTerminator("get_freq:;Frequency: 1;RPRT 0\n"))
	require.False(t, IsTerminator("get_mode:\n"))
	require.False(t, IsTerminator("Frequency: 145000000\n"))
	require.False(t, IsTerminator("get_freq:;Frequency: 1"))
}

func requireProtocolKind(t *testing.T, err error, kind errors.ProtocolErrorKind) {
	t.Helper()

	protoErr, ok := stderrors.AsType[*errors.ProtocolError](err)
	require.True(t, ok, "expected ProtocolError, got %v", err)
	require.Equal(t, kind, protoErr.Kind)
}
