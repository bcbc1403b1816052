package asym

import (
	"crypto/rsa"
	"crypto/sha1"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Padding selects the RSA encryption padding scheme.
type Padding uint8

const (
	// OAEP is RSAES-OAEP with SHA-1 and MGF1-SHA-1 and an empty label.
	OAEP Padding = iota
	// PKCS1v15 is RSAES-PKCS1-v1_5. Kept for compatibility only.
	PKCS1v15
)

func (p Padding) String() string {
	switch p {
	case OAEP:
		return "OAEP-SHA1"
	case PKCS1v15:
		return "PKCS1v15"
	default:
		return fmt.Sprintf("Padding(%d)", uint8(p))
	}
}

// MaxPlaintextSize returns the largest message that fits a keyBytes-byte
// modulus under p.
func MaxPlaintextSize(keyBytes int, p Padding) int {
	var n int
	switch p {
	case OAEP:
		n = keyBytes - 2*sha1.Size - 2
	case PKCS1v15:
		n = keyBytes - 11
	}
	if n < 0 {
		return 0
	}
	return n
}

// MaxPlaintext returns the largest message Encrypt accepts under p.
func (c *Cipher) MaxPlaintext(p Padding) int {
	if !c.HasPublicKey() {
		return 0
	}
	return MaxPlaintextSize(c.pub.Size(), p)
}

// Encrypt encrypts data with the public key. Messages longer than
// MaxPlaintext(p) are rejected with ErrPadding; nothing is split or truncated.
func (c *Cipher) Encrypt(data []byte, p Padding) ([]byte, error) {
	if !c.HasPublicKey() {
		return nil, fmt.Errorf("%w: public key", ErrKeyMissing)
	}
	if p != OAEP && p != PKCS1v15 {
		return nil, fmt.Errorf("%w: unknown scheme %s", ErrPadding, p)
	}
	if limit := c.MaxPlaintext(p); len(data) > limit {
		return nil, fmt.Errorf("%w: %d byte message exceeds %d byte limit of %s", ErrPadding, len(data), limit, p)
	}

	var (
		out []byte
		err error
	)
	if p == OAEP {
		out, err = rsa.EncryptOAEP(sha1.New(), c.rand(), c.pub, data, nil)
	} else {
		out, err = rsa.EncryptPKCS1v15(c.rand(), c.pub, data)
	}
	if errors.Is(err, rsa.ErrMessageTooLong) {
		return nil, fmt.Errorf("%w: %w", ErrPadding, err)
	}
	if err != nil {
		return nil, fmt.Errorf("asym: encrypt: %w", err)
	}
	return out, nil
}

// EncryptText encodes text with the cipher's encoding and encrypts it. The
// size limit applies to the encoded bytes.
func (c *Cipher) EncryptText(text string, p Padding) ([]byte, error) {
	if !c.HasPublicKey() {
		return nil, fmt.Errorf("%w: public key", ErrKeyMissing)
	}
	data, err := c.Encoding().Encode(text)
	if err != nil {
		return nil, err
	}
	return c.Encrypt(data, p)
}

// Decrypt decrypts data with the private key. p must match the scheme used
// for encryption. data must be exactly KeySize()/8 bytes long.
func (c *Cipher) Decrypt(data []byte, p Padding) ([]byte, error) {
	if !c.HasPrivateKey() {
		return nil, fmt.Errorf("%w: private key", ErrKeyMissing)
	}
	if p != OAEP && p != PKCS1v15 {
		return nil, fmt.Errorf("%w: unknown scheme %s", ErrPadding, p)
	}
	if k := c.priv.Size(); len(data) != k {
		return nil, fmt.Errorf("%w: ciphertext is %d bytes, want %d", ErrPadding, len(data), k)
	}

	var (
		out []byte
		err error
	)
	if p == OAEP {
		out, err = rsa.DecryptOAEP(sha1.New(), nil, c.priv, data, nil)
	} else {
		out, err = rsa.DecryptPKCS1v15(nil, c.priv, data)
	}
	if err != nil {
		log.Debug("decryption failed", zap.Stringer("padding", p), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPadding, err)
	}
	return out, nil
}

// DecryptText decrypts data and decodes the plaintext with the cipher's
// encoding. Bytes that are not valid text yield ErrInvalidText.
func (c *Cipher) DecryptText(data []byte, p Padding) (string, error) {
	out, err := c.Decrypt(data, p)
	if err != nil {
		return "", err
	}
	return c.Encoding().Decode(out)
}
