package pathenc

import (
	"fmt"
	"strings"
)

const (
	fileScheme    = "file://"
	localhostHost = "localhost"
)

// FileURL returns a file URL for an absolute path. The path part is the
// Encode literal, so it survives any URL parser byte-for-byte.
func FileURL(b Bytes) string {
	return fileScheme + string(Encode(b))
}

// ParseFileURL extracts the raw path from a file URL such as the ones
// NSURL's absoluteString or our own FileURL produce. Directory URLs carry a
// trailing slash which is dropped.
func ParseFileURL(u string) (Bytes, error) {
	rest, ok := strings.CutPrefix(u, fileScheme)
	if !ok {
		return nil, &ConversionError{Path: Bytes(u), Reason: "not a file URL"}
	}
	rest = strings.TrimPrefix(rest, localhostHost)
	if !strings.HasPrefix(rest, "/") {
		return nil, &ConversionError{Path: Bytes(u), Reason: "file URL has a non-local host"}
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	if len(rest) > 1 {
		rest = strings.TrimSuffix(rest, "/")
	}

	b, err := Decode(Literal(rest))
	if err != nil {
		return nil, fmt.Errorf("parse file URL %q: %w", u, err)
	}
	return b, nil
}
