package laxder

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one signature to decode and, when a public key is present,
// verify.
type Record struct {
	Index  int    // Position in the source, starting at 0
	DER    []byte // DER (or lax DER) encoded signature
	Hash   []byte // 32-byte message digest
	PubKey []byte // Serialized public key, may be empty
}

// SignatureParser defines the interface for parsing signature records from
// various sources.
type SignatureParser interface {
	// ParseSignatures parses records from a source and returns them.
	ParseSignatures(source string) ([]*Record, error)
}

// JSONParser parses records from JSON files.
type JSONParser struct {
	DERField     string // Field name for the signature (default: "der")
	HashField    string // Field name for the digest (default: "hash")
	MessageField string // Field name for the message (default: "message")
	PubKeyField  string // Field name for the public key (default: "pubkey")
	DoubleHash   bool   // Hash messages with double SHA-256
}

// ParseSignatures parses records from a JSON file.
//
// Expected format:
//
//	[
//	  {"der": "3006020101020102", "hash": "...", "pubkey": "02..."},
//	  {"der": "0x3044...", "message": "hello", "pubkey": "03..."}
//	]
func (p *JSONParser) ParseSignatures(jsonFile string) ([]*Record, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	var items []map[string]interface{}
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	fields := recordFields{
		der:     stringOr(p.DERField, "der"),
		hash:    stringOr(p.HashField, "hash"),
		message: stringOr(p.MessageField, "message"),
		pubKey:  stringOr(p.PubKeyField, "pubkey"),
	}

	records := make([]*Record, 0, len(items))
	for i, item := range items {
		values := make(map[string]string, len(item))
		for k, v := range item {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("record %d: field %q must be a string", i, k)
			}
			values[k] = s
		}
		rec, err := fields.record(i, values, p.DoubleHash)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// CSVParser parses records from CSV files.
type CSVParser struct {
	DERCol     string // Column name for the signature (default: "der")
	HashCol    string // Column name for the digest (default: "hash")
	MessageCol string // Column name for the message (default: "message")
	PubKeyCol  string // Column name for the public key (default: "pubkey")
	DoubleHash bool   // Hash messages with double SHA-256
}

// ParseSignatures parses records from a CSV file with a header row.
func (p *CSVParser) ParseSignatures(csvFile string) ([]*Record, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	fields := recordFields{
		der:     stringOr(p.DERCol, "der"),
		hash:    stringOr(p.HashCol, "hash"),
		message: stringOr(p.MessageCol, "message"),
		pubKey:  stringOr(p.PubKeyCol, "pubkey"),
	}

	derIdx := -1
	for i, col := range header {
		if col == fields.der {
			derIdx = i
		}
	}
	if derIdx == -1 {
		return nil, fmt.Errorf("missing required column: %s", fields.der)
	}

	records := make([]*Record, 0)
	for i := 0; ; i++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		values := make(map[string]string, len(header))
		for j, col := range header {
			if j < len(row) && row[j] != "" {
				values[col] = row[j]
			}
		}
		rec, err := fields.record(i, values, p.DoubleHash)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

type recordFields struct {
	der, hash, message, pubKey string
}

// record builds a Record from the named string values of one source entry.
func (f recordFields) record(index int, values map[string]string, doubleHash bool) (*Record, error) {
	rec := &Record{Index: index}

	derHex, ok := values[f.der]
	if !ok {
		return nil, fmt.Errorf("record %d: missing %s field", index, f.der)
	}
	der, err := decodeHex(derHex)
	if err != nil {
		return nil, fmt.Errorf("record %d: failed to parse %s: %w", index, f.der, err)
	}
	rec.DER = der

	if hashHex, ok := values[f.hash]; ok {
		hash, err := decodeHex(hashHex)
		if err != nil {
			return nil, fmt.Errorf("record %d: failed to parse %s: %w", index, f.hash, err)
		}
		if len(hash) != sha256.Size {
			return nil, fmt.Errorf("record %d: %w", index, makeError(ErrHashInvalidLen,
				fmt.Sprintf("hash must be %d bytes, got %d", sha256.Size, len(hash))))
		}
		rec.Hash = hash
	} else if msg, ok := values[f.message]; ok {
		rec.Hash = HashMessage([]byte(msg), doubleHash)
	}

	if pubHex, ok := values[f.pubKey]; ok {
		pub, err := decodeHex(pubHex)
		if err != nil {
			return nil, fmt.Errorf("record %d: failed to parse %s: %w", index, f.pubKey, err)
		}
		rec.PubKey = pub
	}

	return rec, nil
}

// HashMessage returns the SHA-256 digest of message, or the double SHA-256
// digest used by Bitcoin when double is set.
func HashMessage(message []byte, double bool) []byte {
	h := sha256.Sum256(message)
	if double {
		h = sha256.Sum256(h[:])
	}
	return h[:]
}

// decodeHex decodes a hex string, handling 0x prefix
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return hex.DecodeString(s)
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
