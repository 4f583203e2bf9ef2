package laxder

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"
)

// hexToBytes converts the passed hex string into bytes and will panic if there
// is an error. Spaces are ignored so vectors can be grouped by field.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

// fixturesDir returns the repository fixtures directory.
func fixturesDir() string {
	return filepath.Join("..", "..", "fixtures")
}

// testSigner holds a fresh key pair for signing test records.
type testSigner struct {
	priv *secp256k1.PrivateKey
	pub  []byte
}

func newTestSigner(t *testing.T) *testSigner {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	return &testSigner{priv: priv, pub: priv.PubKey().SerializeCompressed()}
}

// sign signs the SHA-256 digest of msg and returns the digest and signature.
func (s *testSigner) sign(msg string) ([]byte, *ecdsa.Signature) {
	hash := sha256.Sum256([]byte(msg))
	return hash[:], ecdsa.Sign(s.priv, hash[:])
}

// record returns a strict DER record for msg.
func (s *testSigner) record(index int, msg string) *Record {
	hash, sig := s.sign(msg)
	return &Record{Index: index, DER: sig.Serialize(), Hash: hash, PubKey: s.pub}
}

// laxEncode encodes R and S with pad extra leading zero bytes each, long-form
// lengths everywhere and the given trailing bytes. The result is never valid
// strict DER. The padded fields must stay below 256 bytes.
func laxEncode(r, s []byte, pad int, trailing []byte) []byte {
	field := func(v []byte) []byte {
		body := append(make([]byte, pad), v...)
		return append([]byte{asn1Integer, 0x81, byte(len(body))}, body...)
	}
	inner := append(field(r), field(s)...)
	out := append([]byte{asn1Sequence, 0x81, byte(len(inner))}, inner...)
	return append(out, trailing...)
}

// writeJSONRecords writes records in the JSONParser default format.
func writeJSONRecords(t *testing.T, records []*Record) string {
	items := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		item := map[string]string{"der": hex.EncodeToString(rec.DER)}
		if rec.Hash != nil {
			item["hash"] = hex.EncodeToString(rec.Hash)
		}
		if rec.PubKey != nil {
			item["pubkey"] = hex.EncodeToString(rec.PubKey)
		}
		items = append(items, item)
	}
	data, err := json.Marshal(items)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "signatures.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
