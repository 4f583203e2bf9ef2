package laxder

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// curveOrder is the secp256k1 group order N.
var curveOrder = hexToBytes("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")

func TestEngines(t *testing.T) {
	engines := map[string]Engine{
		"secp256k1": Secp256k1{},
		"btcec":     BTCEC{},
	}

	signer := newTestSigner(t)
	hash, sig := signer.sign("engines")
	pub, err := ParsePubKey(signer.pub)
	require.NoError(t, err)
	valid := CompactFromSignature(sig)

	nMinus1 := append([]byte(nil), curveOrder...)
	nMinus1[len(nMinus1)-1]--

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			var zero CompactSignature
			zsig, ok := engine.ParseCompact(&zero)
			require.True(t, ok)
			assert.False(t, zsig.Verify(hash, pub))

			vsig, ok := engine.ParseCompact(&valid)
			require.True(t, ok)
			assert.True(t, vsig.Verify(hash, pub))
			assert.Equal(t, valid, CompactFromSignature(vsig))

			edge := compactOf(nMinus1, nMinus1)
			_, ok = engine.ParseCompact(&edge)
			assert.True(t, ok)

			for _, over := range []CompactSignature{
				compactOf(curveOrder, []byte{1}),
				compactOf([]byte{1}, curveOrder),
				compactOf(bytes.Repeat([]byte{0xff}, 32), bytes.Repeat([]byte{0xff}, 32)),
			} {
				over := over
				rejected, ok := engine.ParseCompact(&over)
				assert.False(t, ok)
				got := CompactFromSignature(rejected)
				assert.True(t, got.IsZero())
			}
		})
	}
}

func TestEngineByName(t *testing.T) {
	for _, name := range []string{"", "secp256k1", "decred", "BTCEC"} {
		engine, err := EngineByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, engine)
	}
	engine, err := EngineByName("btcec")
	require.NoError(t, err)
	assert.IsType(t, BTCEC{}, engine)

	_, err = EngineByName("ed25519")
	assert.Regexp(t, "unknown engine", err)
}

func TestParsePubKey(t *testing.T) {
	signer := newTestSigner(t)
	key, err := ParsePubKey(signer.pub)
	require.NoError(t, err)
	assert.Equal(t, signer.pub, key.SerializeCompressed())

	_, err = ParsePubKey(hexToBytes("0400"))
	assert.True(t, errors.Is(err, ErrPubKeyInvalid))

	_, err = ParsePubKey(nil)
	assert.True(t, errors.Is(err, ErrPubKeyInvalid))
}
