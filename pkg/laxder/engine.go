package laxder

import (
	"fmt"
	"strings"

	btcec "github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Engine is a curve engine producing secp256k1 ECDSA signatures that can be
// verified by the Client.
type Engine = CompactParser[*ecdsa.Signature]

// Secp256k1 builds signatures with the decred secp256k1 package. The zero
// value is ready to use and safe for concurrent use.
type Secp256k1 struct{}

// ParseCompact implements CompactParser. R and S must both be below the
// group order; otherwise the zero signature is returned along with false.
func (Secp256k1) ParseCompact(compact *CompactSignature) (*ecdsa.Signature, bool) {
	var r, s secp256k1.ModNScalar
	overflowR := r.SetByteSlice(compact.R())
	overflowS := s.SetByteSlice(compact.S())
	if overflowR || overflowS {
		r.Zero()
		s.Zero()
		return ecdsa.NewSignature(&r, &s), false
	}
	return ecdsa.NewSignature(&r, &s), true
}

// BTCEC builds signatures through the btcec/v2 package for callers whose
// code works with btcec types.
type BTCEC struct{}

// ParseCompact implements CompactParser.
func (BTCEC) ParseCompact(compact *CompactSignature) (*btcecdsa.Signature, bool) {
	var r, s btcec.ModNScalar
	overflowR := r.SetByteSlice(compact.R())
	overflowS := s.SetByteSlice(compact.S())
	if overflowR || overflowS {
		r.Zero()
		s.Zero()
		return btcecdsa.NewSignature(&r, &s), false
	}
	return btcecdsa.NewSignature(&r, &s), true
}

// EngineByName returns the engine registered under name. An empty name
// selects the decred engine.
func EngineByName(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "secp256k1", "decred":
		return Secp256k1{}, nil
	case "btcec":
		return BTCEC{}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}

// CompactFromSignature returns the compact form of an engine signature.
func CompactFromSignature(sig *ecdsa.Signature) CompactSignature {
	var compact CompactSignature
	r, s := sig.R(), sig.S()
	rb, sb := r.Bytes(), s.Bytes()
	copy(compact[:ScalarSize], rb[:])
	copy(compact[ScalarSize:], sb[:])
	return compact
}

// ParsePubKey parses a compressed, uncompressed or hybrid secp256k1 public
// key.
func ParsePubKey(pubKey []byte) (*secp256k1.PublicKey, error) {
	key, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return nil, makeError(ErrPubKeyInvalid, fmt.Sprintf("invalid public key: %v", err))
	}
	return key, nil
}
