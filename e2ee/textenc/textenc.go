// Package textenc converts between Go strings and the byte form of a text
// encoding. Conversions are strict: text that cannot be represented, or bytes
// that do not decode back to themselves, are reported as ErrInvalidText
// instead of being replaced.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	ErrInvalidText     = errors.New("textenc: text not valid in encoding")
	ErrUnknownEncoding = errors.New("textenc: unknown encoding")
)

// Encoding is a named text encoding.
type Encoding struct {
	name string
	enc  encoding.Encoding
}

var (
	// UTF16 is little-endian UTF-16 without a byte order mark.
	UTF16       = Encoding{name: "utf-16", enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}
	UTF16BE     = Encoding{name: "utf-16be", enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}
	UTF8        = Encoding{name: "utf-8", enc: unicode.UTF8}
	Latin1      = Encoding{name: "iso-8859-1", enc: charmap.ISO8859_1}
	Windows1252 = Encoding{name: "windows-1252", enc: charmap.Windows1252}
)

// Default is the encoding used when none is configured.
var Default = UTF16

var byName = map[string]Encoding{
	"utf-16":           UTF16,
	"utf-16le":         UTF16,
	"unicode":          UTF16,
	"utf-16be":         UTF16BE,
	"bigendianunicode": UTF16BE,
	"utf-8":            UTF8,
	"utf8":             UTF8,
	"iso-8859-1":       Latin1,
	"latin1":           Latin1,
	"windows-1252":     Windows1252,
	"cp1252":           Windows1252,
}

// Lookup returns the encoding registered under name. Names are matched
// case-insensitively; the empty name selects Default.
func Lookup(name string) (Encoding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Default, nil
	}
	e, ok := byName[name]
	if !ok {
		return Encoding{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return e, nil
}

// Names lists the canonical names of the supported encodings.
func Names() []string {
	return []string{UTF16.name, UTF16BE.name, UTF8.name, Latin1.name, Windows1252.name}
}

// Name returns the canonical name. The zero Encoding reports Default's name.
func (e Encoding) Name() string {
	return e.orDefault().name
}

func (e Encoding) String() string { return e.Name() }

// IsZero reports whether e is the zero Encoding.
func (e Encoding) IsZero() bool { return e.enc == nil }

func (e Encoding) orDefault() Encoding {
	if e.IsZero() {
		return Default
	}
	return e
}

// Encode converts s to bytes.
func (e Encoding) Encode(s string) ([]byte, error) {
	e = e.orDefault()
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrInvalidText)
	}
	b, err := e.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidText, e.name, err)
	}
	return b, nil
}

// Decode converts b to a string. Decoders substitute U+FFFD for bad input,
// so the result is encoded again and must reproduce b exactly.
func (e Encoding) Decode(b []byte) (string, error) {
	e = e.orDefault()
	out, err := e.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidText, e.name, err)
	}
	again, err := e.enc.NewEncoder().Bytes(out)
	if err != nil || !bytes.Equal(again, b) {
		return "", fmt.Errorf("%w: %s", ErrInvalidText, e.name)
	}
	return string(out), nil
}
