// Package config loads the settings of the e2ee command line tool.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TheusHen/e2ee/e2ee/asym"
	"github.com/TheusHen/e2ee/e2ee/logs"
	"github.com/TheusHen/e2ee/e2ee/textenc"
)

const (
	PaddingOAEP  = "oaep"
	PaddingPKCS1 = "pkcs1"
)

// Config is the YAML document read from --config:
//
//	keySize: 4096
//	encoding: utf-16
//	padding: oaep
//	log:
//	  level: info
//	  format: console
type Config struct {
	KeySize  int    `yaml:"keySize"`
	Encoding string `yaml:"encoding"`
	Padding  string `yaml:"padding"`
	Log      Log    `yaml:"log"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		KeySize:  asym.DefaultKeySize,
		Encoding: textenc.Default.Name(),
		Padding:  PaddingOAEP,
		Log: Log{
			Level:  "warn",
			Format: string(logs.FormatConsole),
		},
	}
}

// Load reads the file at path over the defaults. Unknown keys are errors.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes a YAML document over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.KeySize < asym.MinKeySize || c.KeySize > asym.MaxKeySize || c.KeySize%8 != 0 {
		return fmt.Errorf("config: keySize %d must be a multiple of 8 in [%d, %d]", c.KeySize, asym.MinKeySize, asym.MaxKeySize)
	}
	if _, err := textenc.Lookup(c.Encoding); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.PaddingMode(); err != nil {
		return err
	}
	switch logs.Format(c.Log.Format) {
	case logs.FormatConsole, logs.FormatJSON, "":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

// PaddingMode maps the padding name to the cipher's scheme.
func (c Config) PaddingMode() (asym.Padding, error) {
	switch strings.ToLower(c.Padding) {
	case PaddingOAEP, "":
		return asym.OAEP, nil
	case PaddingPKCS1, "pkcs1v15":
		return asym.PKCS1v15, nil
	default:
		return 0, fmt.Errorf("config: unknown padding %q", c.Padding)
	}
}

// Options returns the cipher options described by c.
func (c Config) Options() (asym.Options, error) {
	enc, err := textenc.Lookup(c.Encoding)
	if err != nil {
		return asym.Options{}, err
	}
	return asym.Options{KeySize: c.KeySize, Encoding: enc}, nil
}
