// Package keydoc reads and writes RSA key documents: a small XML format that
// carries one public or private RSA parameter set as base64 fields.
//
// Format:
//
//	<RSAKeyValue>
//	  <Modulus>...</Modulus>
//	  <Exponent>...</Exponent>
//	  <P>...</P>
//	  <Q>...</Q>
//	  <DP>...</DP>
//	  <DQ>...</DQ>
//	  <InverseQ>...</InverseQ>
//	  <D>...</D>
//	</RSAKeyValue>
//
// Public documents stop after Exponent. A document without fields is the
// placeholder for an absent key.
package keydoc

import (
	"bytes"
)

// Root element names. RootLegacy is what reflection-based serializers of the
// RSAParameters structure emit; it is accepted on read only.
const (
	Root       = "RSAKeyValue"
	RootLegacy = "RSAParameters"
)

// Field names in document order.
const (
	FieldModulus  = "Modulus"
	FieldExponent = "Exponent"
	FieldP        = "P"
	FieldQ        = "Q"
	FieldDP       = "DP"
	FieldDQ       = "DQ"
	FieldInverseQ = "InverseQ"
	FieldD        = "D"
)

var publicFields = []string{FieldModulus, FieldExponent}

var privateFields = []string{FieldP, FieldQ, FieldDP, FieldDQ, FieldInverseQ, FieldD}

// ParameterSet is one half of an RSA key as big-endian unsigned integers.
// A public set has only Modulus and Exponent.
type ParameterSet struct {
	Modulus  []byte
	Exponent []byte
	P        []byte
	Q        []byte
	DP       []byte
	DQ       []byte
	InverseQ []byte
	D        []byte
}

// IsEmpty reports whether the set carries no key material at all.
func (ps ParameterSet) IsEmpty() bool {
	for _, f := range ps.fields() {
		if len(f.value) != 0 {
			return false
		}
	}
	return true
}

// IsPrivate reports whether the private fields are present.
func (ps ParameterSet) IsPrivate() bool {
	return len(ps.D) != 0
}

// Public returns the public projection of the set.
func (ps ParameterSet) Public() ParameterSet {
	return ParameterSet{Modulus: ps.Modulus, Exponent: ps.Exponent}
}

// Equal compares the sets field by field.
func (ps ParameterSet) Equal(other ParameterSet) bool {
	a, b := ps.fields(), other.fields()
	for i := range a {
		if !bytes.Equal(a[i].value, b[i].value) {
			return false
		}
	}
	return true
}

type field struct {
	name  string
	value []byte
}

func (ps ParameterSet) fields() []field {
	return []field{
		{FieldModulus, ps.Modulus},
		{FieldExponent, ps.Exponent},
		{FieldP, ps.P},
		{FieldQ, ps.Q},
		{FieldDP, ps.DP},
		{FieldDQ, ps.DQ},
		{FieldInverseQ, ps.InverseQ},
		{FieldD, ps.D},
	}
}

func (ps *ParameterSet) slot(name string) *[]byte {
	switch name {
	case FieldModulus:
		return &ps.Modulus
	case FieldExponent:
		return &ps.Exponent
	case FieldP:
		return &ps.P
	case FieldQ:
		return &ps.Q
	case FieldDP:
		return &ps.DP
	case FieldDQ:
		return &ps.DQ
	case FieldInverseQ:
		return &ps.InverseQ
	case FieldD:
		return &ps.D
	default:
		return nil
	}
}
