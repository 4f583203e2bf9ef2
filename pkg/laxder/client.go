package laxder

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/mahdiidarabi/ecdsa-laxder/internal/log"
)

// Result is the outcome of decoding and verifying one Record.
type Result struct {
	Index    int              // Record.Index of the source record
	Status   Status           // Decode status
	Strict   bool             // Signature was valid strict DER
	Checked  bool             // A public key was present and verification ran
	Verified bool             // Signature verified against the record's key and hash
	Compact  CompactSignature // Compact form handed to the engine, zero unless StatusOK
	Err      error            // Decode or key error, if any
}

// Client provides a high-level API for decoding and verifying signatures.
type Client struct {
	engine  Engine
	parser  SignatureParser
	mode    Mode
	workers int
}

// NewClient creates a new client with default settings: the decred engine,
// the JSON parser, strict-then-lax decoding and one worker per CPU.
func NewClient() *Client {
	return &Client{
		engine: Secp256k1{},
		parser: &JSONParser{},
		mode:   ModeStrictThenLax,
	}
}

// WithEngine sets the curve engine signatures are built with.
func (c *Client) WithEngine(engine Engine) *Client {
	c.engine = engine
	return c
}

// WithParser sets a custom signature parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// WithMode sets the decode mode.
func (c *Client) WithMode(mode Mode) *Client {
	c.mode = mode
	return c
}

// WithWorkers sets the number of parallel workers used by VerifyRecords
// (0 = auto-detect).
func (c *Client) WithWorkers(n int) *Client {
	c.workers = n
	return c
}

// VerifyFile parses the records in source and verifies them.
func (c *Client) VerifyFile(ctx context.Context, source string) ([]*Result, error) {
	ctx = log.WithLogField(ctx, "source", source)

	records, err := c.parser.ParseSignatures(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}
	log.L(ctx).Debugf("Loaded %d signature records", len(records))

	return c.VerifyRecords(ctx, records)
}

// VerifyRecord decodes the record's signature according to the client mode
// and, when the record carries a public key, verifies it.
//
// A signature that decodes with an overflow is verified like any other; the
// engine signature it maps to never verifies.
func (c *Client) VerifyRecord(ctx context.Context, rec *Record) *Result {
	res := &Result{Index: rec.Index}

	dec, err := Decode(rec.DER, c.mode)
	res.Status, res.Strict = dec.Status, dec.Strict
	if err != nil {
		log.L(ctx).Debugf("Record %d rejected: %s", rec.Index, err)
		res.Err = err
		return res
	}

	var zero CompactSignature
	sig, _ := c.engine.ParseCompact(&zero)
	if dec.Status == StatusOK {
		if parsed, ok := c.engine.ParseCompact(&dec.Compact); ok {
			sig = parsed
			res.Compact = dec.Compact
		} else {
			res.Status = StatusOverflow
		}
	}

	if len(rec.PubKey) == 0 {
		return res
	}
	if len(rec.Hash) != sha256.Size {
		res.Err = makeError(ErrHashInvalidLen,
			fmt.Sprintf("hash must be %d bytes, got %d", sha256.Size, len(rec.Hash)))
		return res
	}
	pub, err := ParsePubKey(rec.PubKey)
	if err != nil {
		res.Err = err
		return res
	}

	res.Checked = true
	res.Verified = sig.Verify(rec.Hash, pub)
	log.L(ctx).Debugf("Record %d: status=%s strict=%t verified=%t", rec.Index, res.Status, res.Strict, res.Verified)
	return res
}

// Summary counts the outcomes of a batch of results.
type Summary struct {
	Total     int
	Strict    int // Valid strict DER
	Lax       int // Accepted only by the lax rules
	Overflow  int // Parsed, but R or S out of range
	Malformed int // Rejected by the decoder
	Verified  int
	Failed    int // Verification ran and failed, or a key/hash error
}

// Summarize counts results. Nil entries (records never processed) are
// counted in Total only.
func Summarize(results []*Result) Summary {
	sum := Summary{Total: len(results)}
	for _, r := range results {
		if r == nil {
			continue
		}
		switch {
		case r.Status == StatusMalformed:
			sum.Malformed++
		case r.Status == StatusOverflow:
			sum.Overflow++
		case r.Strict:
			sum.Strict++
		default:
			sum.Lax++
		}
		if r.Verified {
			sum.Verified++
		} else if r.Checked || (r.Err != nil && r.Status.Parsed()) {
			sum.Failed++
		}
	}
	return sum
}

func (s Summary) String() string {
	return fmt.Sprintf("total=%d strict=%d lax=%d overflow=%d malformed=%d verified=%d failed=%d",
		s.Total, s.Strict, s.Lax, s.Overflow, s.Malformed, s.Verified, s.Failed)
}
