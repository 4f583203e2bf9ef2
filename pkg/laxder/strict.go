package laxder

import (
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

const (
	// minSigLen is the minimum length of a DER encoded signature: sequence
	// header plus two one-byte integers.
	minSigLen = 8

	// maxSigLen is the maximum length of a DER encoded signature with 33-byte
	// (sign padded) R and S.
	maxSigLen = 72
)

// ParseDERStrict parses a signature that must be strictly DER encoded: a
// single SEQUENCE with minimal length encoding holding two minimally encoded
// positive INTEGERs of at most 256 bits and no trailing bytes.
//
// Range checks against the group order are left to the curve engine.
func ParseDERStrict(input []byte) (CompactSignature, error) {
	var compact CompactSignature

	if len(input) < minSigLen {
		str := fmt.Sprintf("malformed signature: too short: %d < %d", len(input),
			minSigLen)
		return compact, signatureError(ErrSigTooShort, str)
	}
	if len(input) > maxSigLen {
		str := fmt.Sprintf("malformed signature: too long: %d > %d", len(input),
			maxSigLen)
		return compact, signatureError(ErrSigTooLong, str)
	}
	if input[0] != asn1Sequence {
		str := fmt.Sprintf("malformed signature: format has wrong type: %#x",
			input[0])
		return compact, signatureError(ErrSigInvalidSeqID, str)
	}

	var inner cryptobyte.String
	str := cryptobyte.String(input)
	if !str.ReadASN1(&inner, asn1.SEQUENCE) || !str.Empty() {
		return compact, signatureError(ErrSigInvalidDataLen,
			"malformed signature: bad sequence length")
	}

	r, s := new(big.Int), new(big.Int)
	if !inner.ReadASN1Integer(r) {
		return compact, signatureError(ErrSigInvalidRIntID,
			"malformed signature: R is not a valid integer")
	}
	if !inner.ReadASN1Integer(s) {
		return compact, signatureError(ErrSigInvalidSIntID,
			"malformed signature: S is not a valid integer")
	}
	if !inner.Empty() {
		return compact, signatureError(ErrSigInvalidDataLen,
			"malformed signature: trailing data inside sequence")
	}

	switch {
	case r.Sign() < 0:
		return compact, signatureError(ErrSigNegativeR, "signature R is negative")
	case r.Sign() == 0:
		return compact, signatureError(ErrSigRIsZero, "signature R is 0")
	case r.BitLen() > 8*ScalarSize:
		return compact, signatureError(ErrSigRTooBig, "signature R is larger than 256 bits")
	}
	switch {
	case s.Sign() < 0:
		return compact, signatureError(ErrSigNegativeS, "signature S is negative")
	case s.Sign() == 0:
		return compact, signatureError(ErrSigSIsZero, "signature S is 0")
	case s.BitLen() > 8*ScalarSize:
		return compact, signatureError(ErrSigSTooBig, "signature S is larger than 256 bits")
	}

	r.FillBytes(compact[:ScalarSize])
	s.FillBytes(compact[ScalarSize:])
	return compact, nil
}

// EncodeDER returns the canonical DER encoding of a compact signature.
func EncodeDER(compact *CompactSignature) []byte {
	r := new(big.Int).SetBytes(compact.R())
	s := new(big.Int).SetBytes(compact.S())

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(r)
		b.AddASN1BigInt(s)
	})
	return b.BytesOrPanic()
}
