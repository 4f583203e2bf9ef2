package laxder

import "encoding/hex"

const (
	// ScalarSize is the size in bytes of each of R and S in a compact signature.
	ScalarSize = 32

	// CompactSize is the size in bytes of a compact R || S signature.
	CompactSize = 2 * ScalarSize
)

// CompactSignature is a fixed 64-byte ECDSA signature: R in bytes [0,32) and
// S in bytes [32,64), each big-endian and zero-padded on the left.
type CompactSignature [CompactSize]byte

// R returns the 32-byte big-endian R half.
func (c *CompactSignature) R() []byte {
	return c[:ScalarSize]
}

// S returns the 32-byte big-endian S half.
func (c *CompactSignature) S() []byte {
	return c[ScalarSize:]
}

// IsZero reports whether every byte of the signature is zero, which is the
// form produced for signatures that must never verify.
func (c *CompactSignature) IsZero() bool {
	for _, b := range c {
		if b != 0 {
			return false
		}
	}
	return true
}

func (c CompactSignature) String() string {
	return hex.EncodeToString(c[:])
}

// Status is the outcome of decoding a lax DER signature.
type Status int

const (
	// StatusMalformed means the tag/length structure could not be parsed.
	StatusMalformed Status = iota

	// StatusOverflow means the structure parsed but R or S had more than 32
	// significant bytes, or the curve engine refused the values. The
	// compact form is all zero.
	StatusOverflow

	// StatusOK means R and S were both extracted.
	StatusOK
)

func (s Status) String() string {
	switch s {
	case StatusMalformed:
		return "malformed"
	case StatusOverflow:
		return "overflow"
	case StatusOK:
		return "ok"
	default:
		return "unknown"
	}
}

// Parsed reports whether the status counts as a successful parse. Overflow
// is reported as parsed; the resulting signature simply never verifies.
func (s Status) Parsed() bool {
	return s != StatusMalformed
}
