// Package config loads the laxverify configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/mahdiidarabi/ecdsa-laxder/internal/log"
	"sigs.k8s.io/yaml" // supports the json tags on the config structs
)

// Config is the on-disk configuration of laxverify. Every field can be
// overridden by a command line flag.
type Config struct {
	Mode       string     `json:"mode,omitempty"`   // strict, lax or strict-then-lax
	Engine     string     `json:"engine,omitempty"` // secp256k1 or btcec
	Workers    int        `json:"workers,omitempty"`
	DoubleHash bool       `json:"doubleHash,omitempty"`
	Format     string     `json:"format,omitempty"` // json or csv
	Fields     Fields     `json:"fields,omitempty"`
	Log        log.Config `json:"log,omitempty"`
}

// Fields names the JSON fields or CSV columns of a signatures file.
type Fields struct {
	DER     string `json:"der,omitempty"`
	Hash    string `json:"hash,omitempty"`
	Message string `json:"message,omitempty"`
	PubKey  string `json:"pubkey,omitempty"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		Mode:   "strict-then-lax",
		Engine: "secp256k1",
		Format: "json",
		Fields: Fields{
			DER:     "der",
			Hash:    "hash",
			Message: "message",
			PubKey:  "pubkey",
		},
		Log: log.Config{Level: "info", Format: "simple", Output: "stderr"},
	}
}

// Load reads a YAML (or JSON) configuration file and fills unset values
// from Defaults.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	conf := &Config{}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filePath, err)
	}
	return conf.WithDefaults(), nil
}

// WithDefaults fills every unset value from Defaults and returns c.
func (c *Config) WithDefaults() *Config {
	def := Defaults()
	if c.Mode == "" {
		c.Mode = def.Mode
	}
	if c.Engine == "" {
		c.Engine = def.Engine
	}
	if c.Format == "" {
		c.Format = def.Format
	}
	if c.Fields.DER == "" {
		c.Fields.DER = def.Fields.DER
	}
	if c.Fields.Hash == "" {
		c.Fields.Hash = def.Fields.Hash
	}
	if c.Fields.Message == "" {
		c.Fields.Message = def.Fields.Message
	}
	if c.Fields.PubKey == "" {
		c.Fields.PubKey = def.Fields.PubKey
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Log.Output == "" {
		c.Log.Output = def.Log.Output
	}
	return c
}
