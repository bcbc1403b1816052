package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheusHen/e2ee/e2ee/asym"
	"github.com/TheusHen/e2ee/e2ee/textenc"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, asym.DefaultKeySize, opts.KeySize)
	assert.Equal(t, textenc.UTF16.Name(), opts.Encoding.Name())

	p, err := cfg.PaddingMode()
	require.NoError(t, err)
	assert.Equal(t, asym.OAEP, p)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "e2ee.yaml")
	doc := `
keySize: 2048
encoding: utf-8
padding: PKCS1
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2048, cfg.KeySize)
	assert.Equal(t, "utf-8", cfg.Encoding)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	p, err := cfg.PaddingMode()
	require.NoError(t, err)
	assert.Equal(t, asym.PKCS1v15, p)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "keysize: 2048\n",
		"small key":    "keySize: 512\n",
		"odd key":      "keySize: 2050\n",
		"encoding":     "encoding: ebcdic\n",
		"padding":      "padding: none\n",
		"log format":   "log:\n  format: xml\n",
		"invalid yaml": "keySize: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}
