package laxder

import (
	"fmt"
	"strings"
)

// Mode selects which DER rules a signature is decoded with.
type Mode int

const (
	// ModeStrictThenLax tries strict DER first and falls back to the lax
	// rules only when strict parsing fails.
	ModeStrictThenLax Mode = iota

	// ModeStrict accepts strict DER only.
	ModeStrict

	// ModeLax always uses the lax rules.
	ModeLax
)

func (m Mode) String() string {
	switch m {
	case ModeStrictThenLax:
		return "strict-then-lax"
	case ModeStrict:
		return "strict"
	case ModeLax:
		return "lax"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as produced by Mode.String. An empty string
// selects ModeStrictThenLax.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict-then-lax", "auto":
		return ModeStrictThenLax, nil
	case "strict":
		return ModeStrict, nil
	case "lax":
		return ModeLax, nil
	default:
		return 0, fmt.Errorf("unknown decode mode %q", s)
	}
}

// Decoded is the result of Decode.
type Decoded struct {
	Compact CompactSignature
	Status  Status

	// Strict is set when the input was valid strict DER.
	Strict bool
}

// Decode decodes a DER signature according to mode. The returned error is
// non-nil only when the input was rejected; lax overflow is not an error and
// is reported through Decoded.Status.
func Decode(input []byte, mode Mode) (Decoded, error) {
	if mode == ModeStrict || mode == ModeStrictThenLax {
		compact, err := ParseDERStrict(input)
		if err == nil {
			return Decoded{Compact: compact, Status: StatusOK, Strict: true}, nil
		}
		if mode == ModeStrict {
			return Decoded{Status: StatusMalformed}, err
		}
	}

	compact, status := DecodeLax(input)
	if status == StatusMalformed {
		return Decoded{Status: status}, signatureError(ErrSigMalformed,
			"malformed signature: not parseable as lax DER")
	}
	return Decoded{Compact: compact, Status: status}, nil
}
