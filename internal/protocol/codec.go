package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wagiedev/rigctld-sdk-go/internal/errors"
)

const (
	// extendedPrefix selects the extended response layout with ';' separators.
	extendedPrefix = `;\`

	fieldSeparator = ";"
	statusKeyword  = "RPRT"
)

// Encode renders cmd as a single request line, newline included.
func Encode(cmd Command) []byte {
	var b strings.Builder

	b.WriteString(extendedPrefix)
	b.WriteString(cmd.Name())

	for _, arg := range cmd.Args() {
		b.WriteByte(' ')
		b.WriteString(arg)
	}

	b.WriteByte('\n')

	return []byte(b.String())
}

// IsTerminator reports whether line closes an extended response, either as a
// standalone "RPRT n" line or as the final ';' segment of a one-line reply.
func IsTerminator(line string) bool {
	line = strings.TrimRight(line, "\r\n")
	if strings.HasPrefix(line, statusKeyword) {
		return true
	}

	if i := strings.LastIndex(line, fieldSeparator); i >= 0 {
		return strings.HasPrefix(line[i+1:], statusKeyword)
	}

	return false
}

// Decode parses the raw reply to cmd.
//
// Errors:
//   - *errors.ProtocolError (ProtocolMismatch) if the echoed name is not cmd's
//   - *errors.ProtocolError (ProtocolTruncated) if the RPRT field is missing
//   - *errors.RigError if RPRT is nonzero; fields are not inspected
//   - *errors.ProtocolError (ProtocolMalformedField) if fields do not fit cmd
func Decode(cmd Command, raw []byte) (Response, error) {
	text := normalize(string(raw))
	if text == "" {
		return nil, protocolError(errors.ProtocolTruncated, cmd, text, nil)
	}

	segments := strings.Split(text, fieldSeparator)
	last := strings.TrimSpace(segments[len(segments)-1])

	// rigctld drops the echo on some failures and answers with "RPRT n" alone.
	bare := len(segments) == 1 && strings.HasPrefix(last, statusKeyword)

	echo := ""

	if !bare {
		name, args, ok := strings.Cut(segments[0], ":")
		if !ok || name != cmd.Name() {
			return nil, protocolError(errors.ProtocolMismatch, cmd, text,
				fmt.Errorf("echoed command %q", name))
		}

		echo = strings.TrimSpace(args)
	}

	code, ok := parseStatus(last)
	if !ok {
		return nil, protocolError(errors.ProtocolTruncated, cmd, text, nil)
	}

	if code != 0 {
		return nil, &errors.RigError{Code: code}
	}

	var body []string
	if !bare {
		body = segments[1 : len(segments)-1]
	}

	_, isRaw := cmd.(Raw)
	fields := make([]Field, 0, len(body))

	for _, seg := range body {
		label, value, ok := strings.Cut(seg, ":")
		if !ok {
			if !isRaw {
				return nil, protocolError(errors.ProtocolMalformedField, cmd, text,
					fmt.Errorf("segment %q has no label", seg))
			}

			fields = append(fields, Field{Value: strings.TrimSpace(seg)})

			continue
		}

		fields = append(fields, Field{Label: strings.TrimSpace(label), Value: strings.TrimSpace(value)})
	}

	resp, err := cmd.decode(echo, fields)
	if err != nil {
		return nil, protocolError(errors.ProtocolMalformedField, cmd, text, err)
	}

	return resp, nil
}

// normalize strips the line terminator and folds the newline-separated
// layout into the ';'-separated one.
func normalize(s string) string {
	s = strings.TrimRight(s, "\r\n")
	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.ReplaceAll(s, "\n", fieldSeparator)
}

func parseStatus(seg string) (int, bool) {
	rest, ok := strings.CutPrefix(seg, statusKeyword)
	if !ok {
		return 0, false
	}

	code, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return 0, false
	}

	return code, true
}

func protocolError(kind errors.ProtocolErrorKind, cmd Command, raw string, err error) *errors.ProtocolError {
	return &errors.ProtocolError{
		Kind:    kind,
		Command: cmd.Name(),
		Raw:     raw,
		Err:     err,
	}
}
