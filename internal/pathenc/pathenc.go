// Package pathenc converts raw filesystem path bytes to and from a printable
// text form without losing any byte.
//
// Paths on unix are untyped byte sequences while the trash services we talk
// to only accept text. Every crossing between the two goes through this
// package: Bytes is the raw path, Literal is its percent-escaped text form.
package pathenc

import (
	"bytes"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Marker starts every escape token.
const Marker = '%'

const upperhex = "0123456789ABCDEF"

// Bytes is a raw filesystem path. It is not required to be valid text.
type Bytes []byte

// Literal is the printable-ASCII form of Bytes produced by Encode.
type Literal string

// FromOS takes a path as handed out by the os package.
func FromOS(p string) Bytes {
	return Bytes(p)
}

// OSPath returns the path in the form the os package expects.
func (b Bytes) OSPath() string {
	return string(b)
}

// String renders the path for humans. Non-text bytes are escaped so that the
// result is always printable.
func (b Bytes) String() string {
	if s, err := Text(b); err == nil {
		return s
	}
	return string(Encode(b))
}

// Equal reports whether a and b hold the same bytes.
func (b Bytes) Equal(o Bytes) bool {
	return bytes.Equal(b, o)
}

// shouldEscape reports whether c must be written as a token. Only unreserved
// ASCII and the path separator pass through.
func shouldEscape(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return false
	}
	switch c {
	case '-', '.', '_', '~', '/':
		return false
	}
	return true
}

// Encode escapes every byte outside the unreserved set as %HH.
func Encode(b Bytes) Literal {
	n := 0
	for _, c := range b {
		if shouldEscape(c) {
			n++
		}
	}
	if n == 0 {
		return Literal(b)
	}

	var sb strings.Builder
	sb.Grow(len(b) + 2*n)
	for _, c := range b {
		if shouldEscape(c) {
			sb.WriteByte(Marker)
			sb.WriteByte(upperhex[c>>4])
			sb.WriteByte(upperhex[c&0x0f])
			continue
		}
		sb.WriteByte(c)
	}
	return Literal(sb.String())
}

// Decode reverses Encode. Characters outside tokens are copied as-is, so
// percent-encoded text from other producers (file URLs) decodes too. A marker
// that is not followed by two hex digits is an error.
func Decode(l Literal) (Bytes, error) {
	s := string(l)
	if strings.IndexByte(s, Marker) < 0 {
		return Bytes(s), nil
	}

	out := make(Bytes, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != Marker {
			out = append(out, s[i])
			continue
		}
		if i+2 >= len(s) || !ishex(s[i+1]) || !ishex(s[i+2]) {
			return nil, &MalformedTokenError{Literal: l, Offset: i}
		}
		out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
		i += 2
	}
	return out, nil
}

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// Validate checks the invariants every path handed to a deletion strategy
// must satisfy: non-empty, absolute and free of NUL bytes.
func Validate(b Bytes) error {
	switch {
	case len(b) == 0:
		return &ConversionError{Path: b, Reason: "empty path"}
	case b[0] != '/':
		return &ConversionError{Path: b, Reason: "path is not absolute"}
	case bytes.IndexByte(b, 0) >= 0:
		return &ConversionError{Path: b, Reason: "path contains a NUL byte"}
	}
	return nil
}

// Text returns b as a string when it is valid UTF-8 without control
// characters, which is what text-typed interfaces can carry verbatim.
func Text(b Bytes) (string, error) {
	if len(b) == 0 {
		return "", &ConversionError{Path: b, Reason: "empty path"}
	}
	if !utf8.Valid(b) {
		return "", &ConversionError{Path: b, Reason: "path is not valid UTF-8"}
	}
	for _, r := range string(b) {
		if unicode.IsControl(r) {
			return "", &ConversionError{Path: b, Reason: "path contains control characters"}
		}
	}
	return string(b), nil
}

// Base returns the last element of b. Trailing separators are ignored.
func Base(b Bytes) Bytes {
	return Bytes(path.Base(string(b)))
}

// Dir returns all but the last element of b.
func Dir(b Bytes) Bytes {
	return Bytes(path.Dir(string(b)))
}

// Join joins elements with the separator and cleans the result.
func Join(elem ...Bytes) Bytes {
	parts := make([]string, len(elem))
	for i, e := range elem {
		parts[i] = string(e)
	}
	return Bytes(path.Join(parts...))
}
