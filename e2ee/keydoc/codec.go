package keydoc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// MaxDocumentSize limits the input accepted by Unmarshal.
	MaxDocumentSize = 1 << 20 // 1 MiB
)

var (
	ErrMalformed      = errors.New("keydoc: malformed document")
	ErrTooLarge       = errors.New("keydoc: document too large")
	ErrMissingField   = errors.New("keydoc: missing field")
	ErrDuplicateField = errors.New("keydoc: duplicate field")
	ErrInvalidBase64  = errors.New("keydoc: invalid base64 value")
	ErrPartialPrivate = errors.New("keydoc: incomplete private key fields")
)

// Marshal writes ps as a key document. Fields are written in document order
// and empty fields are left out, so a zero ParameterSet yields the
// placeholder document.
func Marshal(ps ParameterSet) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: Root}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}
	for _, f := range ps.fields() {
		if len(f.value) == 0 {
			continue
		}
		start := xml.StartElement{Name: xml.Name{Local: f.name}}
		if err := enc.EncodeToken(start); err != nil {
			return nil, err
		}
		if err := enc.EncodeToken(xml.CharData(base64.StdEncoding.EncodeToString(f.value))); err != nil {
			return nil, err
		}
		if err := enc.EncodeToken(start.End()); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalString is Marshal returning a string.
func MarshalString(ps ParameterSet) (string, error) {
	b, err := Marshal(ps)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Unmarshal parses a key document. It only checks the document structure and
// the base64 encoding of the values; whether the numbers form a usable RSA key
// is left to the caller. On error the returned set is always empty.
func Unmarshal(data []byte) (ParameterSet, error) {
	if len(data) > MaxDocumentSize {
		return ParameterSet{}, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}
	raw, err := readFields(xml.NewDecoder(bytes.NewReader(data)))
	if err != nil {
		return ParameterSet{}, err
	}

	var ps ParameterSet
	for name, text := range raw {
		value, err := decodeValue(text)
		if err != nil {
			return ParameterSet{}, fmt.Errorf("%w: %s", ErrInvalidBase64, name)
		}
		*ps.slot(name) = value
	}

	for _, name := range publicFields {
		if len(*ps.slot(name)) == 0 {
			return ParameterSet{}, fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}
	present := 0
	for _, name := range privateFields {
		if len(*ps.slot(name)) != 0 {
			present++
		}
	}
	if present != 0 && present != len(privateFields) {
		return ParameterSet{}, ErrPartialPrivate
	}
	return ps, nil
}

// UnmarshalString is Unmarshal for string input.
func UnmarshalString(s string) (ParameterSet, error) {
	return Unmarshal([]byte(s))
}

// readFields walks the token stream and returns the raw text of every known
// field found directly under the root element.
func readFields(d *xml.Decoder) (map[string]string, error) {
	d.Strict = true
	// Input reaches us already decoded; the declared encoding (often utf-16
	// from the producing platform) describes the original byte stream only.
	d.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	fields := make(map[string]string)
	inRoot, done := false, false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			if !done {
				return nil, fmt.Errorf("%w: no %s element", ErrMalformed, Root)
			}
			return fields, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case done:
				return nil, fmt.Errorf("%w: content after root element", ErrMalformed)
			case !inRoot:
				if t.Name.Local != Root && t.Name.Local != RootLegacy {
					return nil, fmt.Errorf("%w: unexpected root element %q", ErrMalformed, t.Name.Local)
				}
				inRoot = true
			case knownField(t.Name.Local):
				if _, dup := fields[t.Name.Local]; dup {
					return nil, fmt.Errorf("%w: %s", ErrDuplicateField, t.Name.Local)
				}
				text, err := readText(d)
				if err != nil {
					return nil, err
				}
				fields[t.Name.Local] = text
			default:
				if err := d.Skip(); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
				}
			}
		case xml.EndElement:
			// The decoder guarantees this closes the root element.
			inRoot, done = false, true
		case xml.CharData:
			if !inRoot && len(bytes.TrimSpace(t)) != 0 {
				return nil, fmt.Errorf("%w: text outside root element", ErrMalformed)
			}
		}
	}
}

func knownField(name string) bool {
	return (&ParameterSet{}).slot(name) != nil
}

// readText collects the character data of the current element up to its end
// tag. Nested elements are not allowed inside a field.
func readText(d *xml.Decoder) (string, error) {
	var sb strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			return sb.String(), nil
		case xml.StartElement:
			return "", fmt.Errorf("%w: unexpected element %q inside field", ErrMalformed, t.Name.Local)
		}
	}
}

// decodeValue accepts base64 wrapped over several lines.
func decodeValue(text string) ([]byte, error) {
	s := strings.Join(strings.Fields(text), "")
	if s == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(s)
}
