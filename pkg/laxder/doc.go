// Package laxder decodes secp256k1 ECDSA signatures encoded in DER, including
// the non-conforming encodings found in historical blockchain data.
//
// The core is ParseDERSignatureLax, which accepts a documented superset of
// DER, normalizes R and S into a 64-byte compact signature and hands it to a
// curve engine. Whatever the input, the returned signature is initialized:
// inputs that cannot be parsed, or whose numbers are out of range, yield a
// signature that fails verification for every message and public key.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/ecdsa-laxder/pkg/laxder"
//
//	sig, ok := laxder.ParseDERSignatureLax(laxder.Secp256k1{}, der)
//	if !ok {
//	    log.Fatal("malformed signature")
//	}
//	valid := sig.Verify(hash, pubKey)
//
// # Strict first
//
// New data should be strict DER. Decode implements the usual policy of
// trying ParseDERStrict first and only falling back to the lax rules when
// that fails:
//
//	dec, err := laxder.Decode(der, laxder.ModeStrictThenLax)
//
// # Batch verification
//
// Client verifies files of signature records (JSON or CSV) in parallel:
//
//	client := laxder.NewClient().WithWorkers(8)
//	results, err := client.VerifyFile(ctx, "signatures.json")
//	fmt.Println(laxder.Summarize(results))
//
// # Custom engines
//
// Any curve engine can be plugged in by implementing CompactParser:
//
//	type myEngine struct{}
//
//	func (myEngine) ParseCompact(c *laxder.CompactSignature) (*mysig.Signature, bool) {
//	    // build the engine's signature from c.R() and c.S()
//	}
//
//	sig, ok := laxder.ParseDERSignatureLax(myEngine{}, der)
package laxder
