package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheusHen/e2ee/e2ee/asym"
	"github.com/TheusHen/e2ee/e2ee/identity"
)

// run executes one command tree with the given stdin and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func keygen(t *testing.T, dir string) (pub, priv string) {
	t.Helper()
	pub = filepath.Join(dir, "public.xml")
	priv = filepath.Join(dir, "private.xml")
	_, err := run(t, "", "keygen", "--bits", "1024", "--public-out", pub, "--private-out", priv)
	require.NoError(t, err)
	return pub, priv
}

func TestKeygenEncryptDecrypt(t *testing.T) {
	dir := t.TempDir()
	pub, priv := keygen(t, dir)

	info, err := os.Stat(priv)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	doc, err := os.ReadFile(pub)
	require.NoError(t, err)
	params, err := asym.ImportKey(string(doc))
	require.NoError(t, err)
	assert.False(t, params.IsPrivate())

	t.Run("text", func(t *testing.T) {
		ct, err := run(t, "hello from the cli\n", "encrypt", "--key", pub, "--text")
		require.NoError(t, err)
		out, err := run(t, ct, "decrypt", "--key", priv, "--text")
		require.NoError(t, err)
		assert.Equal(t, "hello from the cli\n", out)
	})

	t.Run("binary pkcs1", func(t *testing.T) {
		ct, err := run(t, "\x00\x01raw", "encrypt", "--key", pub, "--pkcs1")
		require.NoError(t, err)
		out, err := run(t, ct, "decrypt", "--key", priv, "--pkcs1")
		require.NoError(t, err)
		assert.Equal(t, "\x00\x01raw", out)

		_, err = run(t, ct, "decrypt", "--key", priv)
		require.ErrorIs(t, err, asym.ErrPadding)
	})

	t.Run("utf-8 encoding", func(t *testing.T) {
		ct, err := run(t, "grüße", "--encoding", "utf-8", "encrypt", "--key", pub, "--text")
		require.NoError(t, err)
		out, err := run(t, ct, "--encoding", "utf-8", "decrypt", "--key", priv, "--text")
		require.NoError(t, err)
		assert.Equal(t, "grüße\n", out)

		// Same bytes read as UTF-16 are not the same text.
		out, err = run(t, ct, "decrypt", "--key", priv, "--text")
		if err == nil {
			assert.NotEqual(t, "grüße\n", out)
		}
	})

	t.Run("public key cannot decrypt", func(t *testing.T) {
		ct, err := run(t, "x", "encrypt", "--key", pub)
		require.NoError(t, err)
		_, err = run(t, ct, "decrypt", "--key", pub)
		require.ErrorIs(t, err, errNotPrivate)
	})

	t.Run("bad ciphertext", func(t *testing.T) {
		_, err := run(t, "%%%", "decrypt", "--key", priv)
		require.Error(t, err)
	})
}

func TestFingerprintCommand(t *testing.T) {
	pub, priv := keygen(t, t.TempDir())

	fromPub, err := run(t, "", "fingerprint", "--key", pub)
	require.NoError(t, err)
	fromPriv, err := run(t, "", "fingerprint", "--key", priv)
	require.NoError(t, err)
	assert.Equal(t, fromPub, fromPriv)

	_, err = identity.ParseFingerprintHex(strings.TrimSpace(fromPub))
	require.NoError(t, err)

	short, err := run(t, "", "fingerprint", "--key", pub, "--short")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(short), 23)
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "e2ee.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("keySize: 1024\npadding: pkcs1\n"), 0o600))

	pub := filepath.Join(dir, "public.xml")
	priv := filepath.Join(dir, "private.xml")
	_, err := run(t, "", "--config", cfgPath, "keygen", "--public-out", pub, "--private-out", priv)
	require.NoError(t, err)

	doc, err := os.ReadFile(priv)
	require.NoError(t, err)
	params, err := asym.ImportKey(string(doc))
	require.NoError(t, err)
	c, err := asym.New(params, asym.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1024, c.KeySize())

	// Padding from the config file must match --pkcs1 on the other side.
	ct, err := run(t, "cfg", "--config", cfgPath, "encrypt", "--key", pub)
	require.NoError(t, err)
	out, err := run(t, ct, "--pkcs1", "decrypt", "--key", priv)
	require.NoError(t, err)
	assert.Equal(t, "cfg", out)

	t.Setenv("E2EE_ENCODING", "ebcdic")
	_, err = run(t, "", "version")
	require.Error(t, err)
}

func TestErrors(t *testing.T) {
	_, err := run(t, "", "encrypt")
	require.Error(t, err)

	_, err = run(t, "", "encrypt", "--key", filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte("not a valid document"), 0o600))
	_, err = run(t, "", "fingerprint", "--key", bad)
	require.ErrorIs(t, err, asym.ErrSerialization)

	_, err = run(t, "", "keygen", "--bits", "100")
	require.ErrorIs(t, err, asym.ErrKeyGen)

	_, err = run(t, "", "--log-level", "loud", "version")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "e2ee "+Version+"\n", out)
}
