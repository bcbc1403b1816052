package asym

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"math"
	"math/big"

	"go.uber.org/zap"

	"github.com/TheusHen/e2ee/e2ee/keydoc"
)

// ImportKey parses a key document and checks that it describes a usable RSA
// key. It needs no Cipher, so a peer can rebuild a counterparty's public key
// from received text. Every failure matches ErrSerialization, and the
// returned set is then empty.
func ImportKey(text string) (keydoc.ParameterSet, error) {
	ps, err := keydoc.UnmarshalString(text)
	if err != nil {
		log.Debug("key document rejected", zap.Error(err))
		return keydoc.ParameterSet{}, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	if _, _, err := keysFromParameters(ps); err != nil {
		log.Debug("key parameters rejected", zap.Error(err))
		return keydoc.ParameterSet{}, err
	}
	return ps, nil
}

// publicParameters encodes the modulus at full key width and the exponent
// minimally.
func publicParameters(pub *rsa.PublicKey) keydoc.ParameterSet {
	return keydoc.ParameterSet{
		Modulus:  fixedBytes(pub.N, pub.Size()),
		Exponent: big.NewInt(int64(pub.E)).Bytes(),
	}
}

// privateParameters encodes D at key width and the CRT values at half width.
func privateParameters(priv *rsa.PrivateKey) keydoc.ParameterSet {
	k := priv.Size()
	half := (k + 1) / 2
	ps := publicParameters(&priv.PublicKey)
	ps.P = fixedBytes(priv.Primes[0], half)
	ps.Q = fixedBytes(priv.Primes[1], half)
	ps.DP = fixedBytes(priv.Precomputed.Dp, half)
	ps.DQ = fixedBytes(priv.Precomputed.Dq, half)
	ps.InverseQ = fixedBytes(priv.Precomputed.Qinv, half)
	ps.D = fixedBytes(priv.D, k)
	return ps
}

// fixedBytes left-pads x to width bytes, growing the width if x needs it.
func fixedBytes(x *big.Int, width int) []byte {
	if n := (x.BitLen() + 7) / 8; n > width {
		width = n
	}
	return x.FillBytes(make([]byte, width))
}

// keysFromParameters rebuilds and validates the keys described by ps. priv is
// nil for a public set.
func keysFromParameters(ps keydoc.ParameterSet) (pub *rsa.PublicKey, priv *rsa.PrivateKey, err error) {
	if ps.IsEmpty() {
		return nil, nil, fmt.Errorf("%w: no key material", ErrSerialization)
	}
	pub, err = publicKey(ps.Modulus, ps.Exponent)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	crt := [][]byte{ps.P, ps.Q, ps.DP, ps.DQ, ps.InverseQ, ps.D}
	present := 0
	for _, v := range crt {
		if len(v) != 0 {
			present++
		}
	}
	switch present {
	case 0:
		return pub, nil, nil
	case len(crt):
	default:
		return nil, nil, fmt.Errorf("%w: %w", ErrSerialization, keydoc.ErrPartialPrivate)
	}

	priv, err = privateKey(pub, ps)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return &priv.PublicKey, priv, nil
}

func publicKey(modulus, exponent []byte) (*rsa.PublicKey, error) {
	n := new(big.Int).SetBytes(modulus)
	if bits := n.BitLen(); bits < MinKeySize || bits > MaxKeySize {
		return nil, fmt.Errorf("modulus of %d bits outside [%d, %d]", bits, MinKeySize, MaxKeySize)
	}
	if n.Bit(0) == 0 {
		return nil, errors.New("modulus is even")
	}
	e := new(big.Int).SetBytes(exponent)
	if !e.IsInt64() || e.Int64() > math.MaxInt32 || e.Int64() < 3 || e.Bit(0) == 0 {
		return nil, fmt.Errorf("unsupported public exponent %s", e)
	}
	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

func privateKey(pub *rsa.PublicKey, ps keydoc.ParameterSet) (*rsa.PrivateKey, error) {
	priv := &rsa.PrivateKey{
		PublicKey: *pub,
		D:         new(big.Int).SetBytes(ps.D),
		Primes: []*big.Int{
			new(big.Int).SetBytes(ps.P),
			new(big.Int).SetBytes(ps.Q),
		},
	}
	// Validate before Precompute: Precompute divides by P-1 and Q-1.
	if err := priv.Validate(); err != nil {
		return nil, err
	}
	priv.Precompute()

	// Validate does not look at the CRT values; the document must agree
	// with the ones derived from P, Q and D.
	checks := []struct {
		name string
		got  []byte
		want *big.Int
	}{
		{keydoc.FieldDP, ps.DP, priv.Precomputed.Dp},
		{keydoc.FieldDQ, ps.DQ, priv.Precomputed.Dq},
		{keydoc.FieldInverseQ, ps.InverseQ, priv.Precomputed.Qinv},
	}
	for _, c := range checks {
		if c.want == nil || new(big.Int).SetBytes(c.got).Cmp(c.want) != 0 {
			return nil, fmt.Errorf("%s does not match the key", c.name)
		}
	}
	return priv, nil
}
