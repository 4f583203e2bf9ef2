// Command laxverify decodes DER and lax DER secp256k1 ECDSA signatures and
// verifies them against their public keys.
//
//	laxverify -signatures sigs.json
//	laxverify -signatures sigs.csv -format csv -mode lax -workers 8
//	laxverify -decode 3006020101020102
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mahdiidarabi/ecdsa-laxder/internal/config"
	"github.com/mahdiidarabi/ecdsa-laxder/internal/log"
	"github.com/mahdiidarabi/ecdsa-laxder/pkg/laxder"
)

const (
	exitOK       = 0
	exitError    = 1
	exitRejected = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("laxverify", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		signaturesFile = flags.String("signatures", "", "Path to signatures file (JSON or CSV)")
		format         = flags.String("format", "json", "Signature file format (json or csv)")
		mode           = flags.String("mode", "strict-then-lax", "Decode mode (strict, lax or strict-then-lax)")
		engine         = flags.String("engine", "secp256k1", "Curve engine (secp256k1 or btcec)")
		numWorkers     = flags.Int("workers", 0, "Number of parallel workers (0 = auto-detect based on CPU cores)")
		doubleHash     = flags.Bool("double-hash", false, "Hash messages with double SHA-256")
		configFile     = flags.String("config", "", "Path to a YAML config file; flags override its values")
		logLevel       = flags.String("log-level", "info", "Log level (error, warn, info, debug, trace)")
		logFormat      = flags.String("log-format", "simple", "Log format (simple, detailed, json)")
		decodeHex      = flags.String("decode", "", "Decode a single hex encoded signature and print R and S")
	)
	if err := flags.Parse(args); err != nil {
		return exitError
	}

	conf := config.Defaults()
	if *configFile != "" {
		var err error
		if conf, err = config.Load(*configFile); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			conf.Format = *format
		case "mode":
			conf.Mode = *mode
		case "engine":
			conf.Engine = *engine
		case "workers":
			conf.Workers = *numWorkers
		case "double-hash":
			conf.DoubleHash = *doubleHash
		case "log-level":
			conf.Log.Level = *logLevel
		case "log-format":
			conf.Log.Format = *logFormat
		}
	})
	log.InitConfig(&conf.Log)

	decodeMode, err := laxder.ParseMode(conf.Mode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if *decodeHex != "" {
		return decodeOne(*decodeHex, decodeMode, stdout, stderr)
	}

	if *signaturesFile == "" {
		fmt.Fprintf(stderr, "Error: -signatures or -decode is required\n")
		flags.Usage()
		return exitError
	}

	curve, err := laxder.EngineByName(conf.Engine)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	// Set up parser based on format
	var parser laxder.SignatureParser
	switch conf.Format {
	case "json":
		parser = &laxder.JSONParser{
			DERField:     conf.Fields.DER,
			HashField:    conf.Fields.Hash,
			MessageField: conf.Fields.Message,
			PubKeyField:  conf.Fields.PubKey,
			DoubleHash:   conf.DoubleHash,
		}
	case "csv":
		parser = &laxder.CSVParser{
			DERCol:     conf.Fields.DER,
			HashCol:    conf.Fields.Hash,
			MessageCol: conf.Fields.Message,
			PubKeyCol:  conf.Fields.PubKey,
			DoubleHash: conf.DoubleHash,
		}
	default:
		fmt.Fprintf(stderr, "Error: unknown format %q\n", conf.Format)
		return exitError
	}

	client := laxder.NewClient().
		WithParser(parser).
		WithEngine(curve).
		WithMode(decodeMode).
		WithWorkers(conf.Workers)

	log.L(ctx).Infof("Verifying %s (mode=%s engine=%s)", *signaturesFile, decodeMode, conf.Engine)
	results, err := client.VerifyFile(ctx, *signaturesFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	for _, res := range results {
		fmt.Fprintln(stdout, formatResult(res))
	}
	sum := laxder.Summarize(results)
	fmt.Fprintf(stdout, "\n%s\n", sum)

	if sum.Failed > 0 {
		return exitRejected
	}
	return exitOK
}

// decodeOne decodes a single signature and prints its compact form.
func decodeOne(sigHex string, mode laxder.Mode, stdout, stderr io.Writer) int {
	der, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(sigHex), "0x"))
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid hex signature: %v\n", err)
		return exitError
	}

	dec, err := laxder.Decode(der, mode)
	fmt.Fprintf(stdout, "status: %s\n", dec.Status)
	if err != nil {
		fmt.Fprintf(stdout, "error:  %v\n", err)
		return exitRejected
	}
	fmt.Fprintf(stdout, "strict: %t\n", dec.Strict)
	fmt.Fprintf(stdout, "r:      %x\n", dec.Compact.R())
	fmt.Fprintf(stdout, "s:      %x\n", dec.Compact.S())
	return exitOK
}

func formatResult(res *laxder.Result) string {
	if res == nil {
		return "[?] not processed"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %-9s", res.Index, res.Status)
	if res.Strict {
		b.WriteString(" strict")
	} else if res.Status.Parsed() {
		b.WriteString(" lax   ")
	}
	switch {
	case res.Err != nil:
		fmt.Fprintf(&b, " error: %v", res.Err)
	case res.Verified:
		b.WriteString(" ✓ verified")
	case res.Checked:
		b.WriteString(" ✗ not verified")
	default:
		b.WriteString(" (no public key)")
	}
	return b.String()
}
