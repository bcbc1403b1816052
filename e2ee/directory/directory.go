// Package directory maps key fingerprints to published public key documents.
package directory

import (
	"errors"

	"github.com/TheusHen/e2ee/e2ee/asym"
	"github.com/TheusHen/e2ee/e2ee/identity"
)

var (
	ErrNotFound         = errors.New("directory: key not found")
	ErrPrivateKey       = errors.New("directory: document contains a private key")
	ErrFingerprintClash = errors.New("directory: record fingerprint does not match document")
)

// Record is one published public key. Labels are free-form metadata such as
// an owner name; the directory does not interpret them.
type Record struct {
	Fingerprint identity.Fingerprint
	Document    string
	Labels      map[string]string
}

// Resolver is a generic key directory.
// Implementations can be backed by a file, a keyserver, a database, etc.
type Resolver interface {
	Announce(rec Record) error
	Lookup(fp identity.Fingerprint) (Record, error)
	List() ([]Record, error)
}

// Publish validates a public key document, computes its fingerprint and
// announces it to r.
func Publish(r Resolver, doc string, labels map[string]string) (Record, error) {
	params, err := asym.ImportKey(doc)
	if err != nil {
		return Record{}, err
	}
	if params.IsPrivate() {
		return Record{}, ErrPrivateKey
	}
	fp, err := identity.FromPublicParameters(params.Modulus, params.Exponent)
	if err != nil {
		return Record{}, err
	}
	rec := Record{Fingerprint: fp, Document: doc, Labels: labels}
	if err := r.Announce(rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Resolve looks up fp and builds a public-only cipher from the stored
// document. The fingerprint is recomputed so a tampered store is detected.
func Resolve(r Resolver, fp identity.Fingerprint, opts asym.Options) (*asym.Cipher, error) {
	rec, err := r.Lookup(fp)
	if err != nil {
		return nil, err
	}
	params, err := asym.ImportKey(rec.Document)
	if err != nil {
		return nil, err
	}
	if params.IsPrivate() {
		return nil, ErrPrivateKey
	}
	got, err := identity.FromPublicParameters(params.Modulus, params.Exponent)
	if err != nil {
		return nil, err
	}
	if got != fp {
		return nil, ErrFingerprintClash
	}
	return asym.New(params, opts)
}
