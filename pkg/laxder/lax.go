package laxder

import "math/bits"

const (
	asn1Sequence = 0x30
	asn1Integer  = 0x02
)

// uintBytes is the width in bytes of the accumulator used for long-form
// INTEGER lengths.
const uintBytes = bits.UintSize / 8

// CompactParser is the curve engine capability the lax parser depends on: it
// builds the engine's signature type from a compact R || S buffer, reporting
// false when the engine refuses the values (for example R or S not below the
// group order).
//
// Implementations must accept the all-zero buffer; the signature built from
// it must fail verification for every message and public key.
type CompactParser[S any] interface {
	ParseCompact(compact *CompactSignature) (S, bool)
}

// DecodeLax decodes a signature in "lax DER" form into its compact
// representation without consulting a curve engine.
//
// The supported violations of DER are:
//   - All numbers are parsed as nonnegative integers, even though X.690
//     section 8.3.3 specifies two's complement.
//   - Integers can have length 0.
//   - Integers with overly long padding are accepted.
//   - 127-byte long length descriptors are accepted.
//   - Trailing garbage data inside or after the signature is ignored.
//   - The length descriptor of the sequence is ignored.
//
// Overly long tag descriptors and constructed integers are not supported.
//
// The returned compact signature is all zero unless the status is StatusOK.
func DecodeLax(input []byte) (CompactSignature, Status) {
	var compact CompactSignature

	// Sequence tag byte.
	pos := 0
	if pos == len(input) || input[pos] != asn1Sequence {
		return compact, StatusMalformed
	}
	pos++

	// Sequence length bytes. Only skipped, never checked.
	if pos == len(input) {
		return compact, StatusMalformed
	}
	lenByte := int(input[pos])
	pos++
	if lenByte&0x80 != 0 {
		lenByte -= 0x80
		if lenByte > len(input)-pos {
			return compact, StatusMalformed
		}
		pos += lenByte
	}

	rPos, rLen, pos, ok := readInteger(input, pos)
	if !ok {
		return compact, StatusMalformed
	}
	sPos, sLen, _, ok := readInteger(input, pos)
	if !ok {
		return compact, StatusMalformed
	}

	overflow := !putScalar(compact[:ScalarSize], input[rPos:rPos+rLen])
	if !putScalar(compact[ScalarSize:], input[sPos:sPos+sLen]) {
		overflow = true
	}
	if overflow {
		return CompactSignature{}, StatusOverflow
	}
	return compact, StatusOK
}

// readInteger reads an INTEGER tag and its length starting at pos. It returns
// the offset and length of the content bytes and the offset just past them.
func readInteger(input []byte, pos int) (start, length, next int, ok bool) {
	if pos == len(input) || input[pos] != asn1Integer {
		return 0, 0, 0, false
	}
	pos++

	if pos == len(input) {
		return 0, 0, 0, false
	}
	lenByte := int(input[pos])
	pos++

	var n uint
	if lenByte&0x80 != 0 {
		lenByte -= 0x80
		if lenByte > len(input)-pos {
			return 0, 0, 0, false
		}
		for lenByte > 0 && input[pos] == 0 {
			pos++
			lenByte--
		}
		if lenByte >= uintBytes {
			return 0, 0, 0, false
		}
		for ; lenByte > 0; lenByte-- {
			n = n<<8 | uint(input[pos])
			pos++
		}
	} else {
		n = uint(lenByte)
	}

	if n > uint(len(input)-pos) {
		return 0, 0, 0, false
	}
	return pos, int(n), pos + int(n), true
}

// putScalar strips leading zero bytes from src and copies the rest
// right-aligned into the 32-byte dst. It reports false, leaving dst untouched,
// when more than 32 significant bytes remain.
func putScalar(dst, src []byte) bool {
	for len(src) > 0 && src[0] == 0 {
		src = src[1:]
	}
	if len(src) > ScalarSize {
		return false
	}
	copy(dst[ScalarSize-len(src):], src)
	return true
}

// ParseLax decodes a lax DER signature and builds the engine signature from
// it. It returns the signature, the compact form it was built from, and the
// decode status. Engine rejection of the decoded values is reported as
// StatusOverflow.
//
// The returned signature is always usable: on StatusMalformed and
// StatusOverflow it is the engine's signature for the all-zero buffer.
func ParseLax[S any](engine CompactParser[S], input []byte) (S, CompactSignature, Status) {
	var zero CompactSignature
	invalid, _ := engine.ParseCompact(&zero)

	compact, status := DecodeLax(input)
	if status != StatusOK {
		return invalid, zero, status
	}

	sig, ok := engine.ParseCompact(&compact)
	if !ok {
		return invalid, zero, StatusOverflow
	}
	return sig, compact, StatusOK
}

// ParseDERSignatureLax parses a signature in "lax DER" format.
//
// It returns true when the signature could be parsed and false otherwise.
// After the call the returned signature is always initialized. If parsing
// failed or the encoded numbers are out of range, verification with it is
// guaranteed to fail for every message and public key. Note that out of
// range numbers still return true; use ParseLax to tell them apart.
//
// This is meant for validating historical data that contains signatures
// which do not strictly obey DER. Use ParseDERStrict for anything new.
func ParseDERSignatureLax[S any](engine CompactParser[S], input []byte) (S, bool) {
	sig, _, status := ParseLax(engine, input)
	return sig, status.Parsed()
}
