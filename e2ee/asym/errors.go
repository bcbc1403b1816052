package asym

import (
	"errors"

	"github.com/TheusHen/e2ee/e2ee/textenc"
)

var (
	// ErrKeyGen reports a failed key generation: invalid size or a failing
	// random source.
	ErrKeyGen = errors.New("asym: key generation failed")
	// ErrKeyMissing reports an operation that needs a key half the cipher
	// does not hold.
	ErrKeyMissing = errors.New("asym: required key not present")
	// ErrPadding reports input of the wrong size for the padding scheme and
	// any failure to remove padding on decryption.
	ErrPadding = errors.New("asym: padding error")
	// ErrSerialization reports a key document that cannot be turned into a
	// valid key.
	ErrSerialization = errors.New("asym: invalid key document")
	// ErrInvalidText reports text that the configured encoding cannot carry.
	ErrInvalidText = textenc.ErrInvalidText
)
