package asym

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/TheusHen/e2ee/e2ee/identity"
	"github.com/TheusHen/e2ee/e2ee/keydoc"
	"github.com/TheusHen/e2ee/e2ee/logs"
	"github.com/TheusHen/e2ee/e2ee/textenc"
)

const (
	DefaultKeySize = 4096
	MinKeySize     = 1024
	MaxKeySize     = 16384
)

var log = logs.NewNamed("e2ee.asym")

// KeyState tells which key halves a Cipher holds.
type KeyState uint8

const (
	// Uninitialized holds no key; every operation returns ErrKeyMissing.
	Uninitialized KeyState = iota
	// PublicOnly holds a peer's public key: encrypt and export public only.
	PublicOnly
	// Full holds a private key and its public half.
	Full
)

func (s KeyState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case PublicOnly:
		return "public-only"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// Options configures a Cipher. The zero value is usable.
type Options struct {
	// KeySize is the modulus length in bits used by Generate.
	// Zero means DefaultKeySize.
	KeySize int
	// Encoding converts strings for EncryptText and DecryptText.
	// The zero value means textenc.Default (UTF-16).
	Encoding textenc.Encoding
	// Random is the entropy source. Nil means crypto/rand.Reader.
	Random io.Reader
}

func (o Options) withDefaults() Options {
	if o.KeySize == 0 {
		o.KeySize = DefaultKeySize
	}
	if o.Encoding.IsZero() {
		o.Encoding = textenc.Default
	}
	if o.Random == nil {
		o.Random = rand.Reader
	}
	return o
}

// Cipher owns RSA key material and performs encryption, decryption and key
// export with it. Key material never changes after construction, so a Cipher
// may be shared between goroutines. The zero value is Uninitialized.
type Cipher struct {
	state  KeyState
	pub    *rsa.PublicKey
	priv   *rsa.PrivateKey
	enc    textenc.Encoding
	random io.Reader
}

// Generate creates a Cipher with a fresh key pair of opts.KeySize bits.
func Generate(opts Options) (*Cipher, error) {
	opts = opts.withDefaults()
	if err := checkKeySize(opts.KeySize); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyGen, err)
	}

	start := time.Now()
	priv, err := rsa.GenerateKey(opts.Random, opts.KeySize)
	if err != nil {
		log.Debug("key generation failed", zap.Int("bits", opts.KeySize), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrKeyGen, err)
	}
	log.Debug("generated key pair",
		zap.Int("bits", opts.KeySize),
		zap.Duration("took", time.Since(start)))

	return &Cipher{
		state:  Full,
		pub:    &priv.PublicKey,
		priv:   priv,
		enc:    opts.Encoding,
		random: opts.Random,
	}, nil
}

// New creates a Cipher from an imported parameter set: Full for a private
// set, PublicOnly for a public one. The key is validated first.
// opts.KeySize is ignored.
func New(ps keydoc.ParameterSet, opts Options) (*Cipher, error) {
	opts = opts.withDefaults()
	pub, priv, err := keysFromParameters(ps)
	if err != nil {
		return nil, err
	}
	c := &Cipher{
		state:  PublicOnly,
		pub:    pub,
		enc:    opts.Encoding,
		random: opts.Random,
	}
	if priv != nil {
		c.state, c.priv = Full, priv
	}
	return c, nil
}

func checkKeySize(bits int) error {
	if bits < MinKeySize || bits > MaxKeySize {
		return fmt.Errorf("key size %d outside [%d, %d]", bits, MinKeySize, MaxKeySize)
	}
	if bits%8 != 0 {
		return fmt.Errorf("key size %d is not a multiple of 8", bits)
	}
	return nil
}

// State reports which key halves c holds.
func (c *Cipher) State() KeyState {
	if c == nil {
		return Uninitialized
	}
	return c.state
}

func (c *Cipher) HasPublicKey() bool { return c.State() != Uninitialized }

func (c *Cipher) HasPrivateKey() bool { return c.State() == Full }

// KeySize returns the modulus length in bits, or 0 without a key.
func (c *Cipher) KeySize() int {
	if !c.HasPublicKey() {
		return 0
	}
	return c.pub.N.BitLen()
}

// Encoding returns the text encoding used by EncryptText and DecryptText.
func (c *Cipher) Encoding() textenc.Encoding {
	if c == nil || c.enc.IsZero() {
		return textenc.Default
	}
	return c.enc
}

// PublicKey returns the public key, or nil without one.
func (c *Cipher) PublicKey() *rsa.PublicKey {
	if !c.HasPublicKey() {
		return nil
	}
	return c.pub
}

// PublicParameters returns the public half as a parameter set.
func (c *Cipher) PublicParameters() (keydoc.ParameterSet, bool) {
	if !c.HasPublicKey() {
		return keydoc.ParameterSet{}, false
	}
	return publicParameters(c.pub), true
}

// PrivateParameters returns the full private parameter set.
func (c *Cipher) PrivateParameters() (keydoc.ParameterSet, bool) {
	if !c.HasPrivateKey() {
		return keydoc.ParameterSet{}, false
	}
	return privateParameters(c.priv), true
}

// ExportPublic returns the public key document. Without a key it returns the
// placeholder document rather than an error.
func (c *Cipher) ExportPublic() (string, error) {
	ps, _ := c.PublicParameters()
	return keydoc.MarshalString(ps)
}

// ExportPrivate returns the private key document, or the placeholder document
// when c holds no private key.
func (c *Cipher) ExportPrivate() (string, error) {
	ps, _ := c.PrivateParameters()
	return keydoc.MarshalString(ps)
}

// Fingerprint identifies the public key for out-of-band comparison.
func (c *Cipher) Fingerprint() (identity.Fingerprint, error) {
	ps, ok := c.PublicParameters()
	if !ok {
		return identity.Fingerprint{}, fmt.Errorf("%w: public key", ErrKeyMissing)
	}
	return identity.FromPublicParameters(ps.Modulus, ps.Exponent)
}

func (c *Cipher) rand() io.Reader {
	if c.random == nil {
		return rand.Reader
	}
	return c.random
}
