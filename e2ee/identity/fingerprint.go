package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/cryptobyte"
)

const fingerprintLabel = "e2ee-rsa-public-key"

var ErrInvalidFingerprint = errors.New("identity: invalid fingerprint")

// Fingerprint identifies an RSA public key.
// It is defined as: SHA-256(label || u32len(modulus) || modulus || u32len(exponent) || exponent),
// with leading zero bytes stripped from both integers, so padded and minimal
// encodings of the same key agree.
type Fingerprint [32]byte

// FromPublicParameters computes the fingerprint of the key with the given
// big-endian modulus and exponent.
func FromPublicParameters(modulus, exponent []byte) (Fingerprint, error) {
	raw, err := CanonicalPublicKey(modulus, exponent)
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint(sha256.Sum256(raw)), nil
}

// CanonicalPublicKey returns the byte string hashed by FromPublicParameters.
func CanonicalPublicKey(modulus, exponent []byte) ([]byte, error) {
	modulus, exponent = trimZeros(modulus), trimZeros(exponent)
	if len(modulus) == 0 || len(exponent) == 0 {
		return nil, errors.New("identity: empty public key parameters")
	}
	b := cryptobyte.NewBuilder(nil)
	b.AddBytes([]byte(fingerprintLabel))
	b.AddUint32LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(modulus)
	})
	b.AddUint32LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(exponent)
	})
	return b.Bytes()
}

func ParseFingerprintHex(s string) (Fingerprint, error) {
	s = strings.ReplaceAll(s, ":", "")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Fingerprint{}, err
	}
	if len(b) != len(Fingerprint{}) {
		return Fingerprint{}, ErrInvalidFingerprint
	}
	var fp Fingerprint
	copy(fp[:], b)
	return fp, nil
}

func (fp Fingerprint) String() string {
	return hex.EncodeToString(fp[:])
}

// Short renders the first 8 bytes as colon-separated hex pairs, for reading
// aloud when comparing keys out of band.
func (fp Fingerprint) Short() string {
	parts := make([]string, 8)
	for i := range parts {
		parts[i] = hex.EncodeToString(fp[i : i+1])
	}
	return strings.Join(parts, ":")
}

func trimZeros(b []byte) []byte {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return b
}
