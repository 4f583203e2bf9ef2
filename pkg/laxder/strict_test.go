package laxder

import (
	"bytes"
	"errors"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDERStrict(t *testing.T) {
	r33 := append([]byte{0x00, 0x80}, bytes.Repeat([]byte{0x11}, 31)...)
	tooBig := append([]byte{0x01}, bytes.Repeat([]byte{0x11}, 32)...)

	tests := []struct {
		name  string
		input []byte
		err   error
		want  CompactSignature
	}{{
		name:  "R=1 S=2",
		input: hexToBytes("30 06 020101 020102"),
		want:  compactOf([]byte{1}, []byte{2}),
	}, {
		name:  "sign padded R",
		input: append(append([]byte{0x30, 0x26, 0x02, 0x21}, r33...), 0x02, 0x01, 0x02),
		want:  compactOf(r33[1:], []byte{2}),
	}, {
		name:  "too short",
		input: hexToBytes("30 05 020101 0201"),
		err:   ErrSigTooShort,
	}, {
		name:  "too long",
		input: append(hexToBytes("30 46"), make([]byte, 71)...),
		err:   ErrSigTooLong,
	}, {
		name:  "wrong sequence tag",
		input: hexToBytes("31 06 020101 020102"),
		err:   ErrSigInvalidSeqID,
	}, {
		name:  "bad sequence length",
		input: hexToBytes("30 07 020101 020102"),
		err:   ErrSigInvalidDataLen,
	}, {
		name:  "trailing garbage",
		input: hexToBytes("30 06 020101 020102 00"),
		err:   ErrSigInvalidDataLen,
	}, {
		name:  "long form sequence length",
		input: hexToBytes("30 81 06 020101 020102"),
		err:   ErrSigInvalidDataLen,
	}, {
		name:  "R padded with zero",
		input: hexToBytes("30 07 02020001 020102"),
		err:   ErrSigInvalidRIntID,
	}, {
		name:  "R wrong tag",
		input: hexToBytes("30 06 030101 020102"),
		err:   ErrSigInvalidRIntID,
	}, {
		name:  "S zero length",
		input: hexToBytes("30 07 020101 0200 0000"),
		err:   ErrSigInvalidSIntID,
	}, {
		name:  "data after S",
		input: hexToBytes("30 08 020101 020102 0500"),
		err:   ErrSigInvalidDataLen,
	}, {
		name:  "negative R",
		input: hexToBytes("30 06 0201ff 020102"),
		err:   ErrSigNegativeR,
	}, {
		name:  "zero R",
		input: hexToBytes("30 06 020100 020102"),
		err:   ErrSigRIsZero,
	}, {
		name:  "negative S",
		input: hexToBytes("30 06 020101 020180"),
		err:   ErrSigNegativeS,
	}, {
		name:  "zero S",
		input: hexToBytes("30 06 020101 020100"),
		err:   ErrSigSIsZero,
	}, {
		name:  "R larger than 256 bits",
		input: append(append([]byte{0x30, 0x26, 0x02, 0x21}, tooBig...), 0x02, 0x01, 0x02),
		err:   ErrSigRTooBig,
	}, {
		name:  "S larger than 256 bits",
		input: append([]byte{0x30, 0x26, 0x02, 0x01, 0x01, 0x02, 0x21}, tooBig...),
		err:   ErrSigSTooBig,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			compact, err := ParseDERStrict(test.input)
			if test.err != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, test.err), "got %v, want %v", err, test.err)
				assert.True(t, compact.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, compact)
		})
	}
}

// TestEncodeDERMatchesEngine ensures EncodeDER produces the same bytes as the
// decred serializer and that both strict parsers agree on the result.
func TestEncodeDERMatchesEngine(t *testing.T) {
	signer := newTestSigner(t)

	for i := 0; i < 16; i++ {
		_, sig := signer.sign(string(rune('0' + i)))
		compact := CompactFromSignature(sig)

		der := EncodeDER(&compact)
		require.Equal(t, sig.Serialize(), der)

		parsed, err := ecdsa.ParseDERSignature(der)
		require.NoError(t, err)
		assert.True(t, parsed.IsEqual(sig))

		strict, err := ParseDERStrict(der)
		require.NoError(t, err)
		assert.Equal(t, compact, strict)
	}
}

func TestEncodeDERSmallValues(t *testing.T) {
	compact := compactOf([]byte{1}, []byte{0x80})
	assert.Equal(t, hexToBytes("30 07 020101 02020080"), EncodeDER(&compact))

	var zero CompactSignature
	assert.Equal(t, hexToBytes("30 06 020100 020100"), EncodeDER(&zero))
}
