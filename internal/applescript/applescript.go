// Package applescript builds osascript programs that ask Finder to move a
// batch of files to the trash.
//
// Paths end up inside AppleScript string literals, i.e. inside executable
// script text, so every path is either quoted with Quote or, when it is not
// representable as text, replaced by its percent-encoded file URL which
// contains no character the string syntax cares about.
package applescript

import (
	"errors"
	"strings"

	"github.com/babarot/putback/internal/pathenc"
)

// Script is one osascript program. Each line is passed with its own -e flag.
type Script struct {
	Lines []string
}

// Args returns the osascript argument vector for the script.
func (s *Script) Args() []string {
	args := make([]string, 0, 2*len(s.Lines))
	for _, l := range s.Lines {
		args = append(args, "-e", l)
	}
	return args
}

func (s *Script) String() string {
	return strings.Join(s.Lines, "\n")
}

// Quote returns s as an AppleScript string literal.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '"':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// FileRef returns an AppleScript expression evaluating to a file reference
// for p.
func FileRef(p pathenc.Bytes) (string, error) {
	if err := pathenc.Validate(p); err != nil {
		return "", err
	}
	s, err := pathenc.Text(p)
	if err == nil {
		return "POSIX file " + Quote(s), nil
	}
	if !errors.Is(err, pathenc.ErrConversion) {
		return "", err
	}
	// NSURL percent-decodes the URL into the exact file system
	// representation, which POSIX file cannot express for non-text names.
	return "((current application's NSURL's URLWithString:" + Quote(pathenc.FileURL(p)) + ") as «class furl»)", nil
}

// DeleteScript returns a program that deletes all paths with one Finder
// command and prints the new location of every trashed item as a file URL,
// one per line.
func DeleteScript(paths []pathenc.Bytes) (*Script, error) {
	if len(paths) == 0 {
		return nil, errors.New("applescript: no paths to delete")
	}

	refs := make([]string, 0, len(paths))
	for _, p := range paths {
		ref, err := FileRef(p)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	return &Script{Lines: []string{
		`use framework "Foundation"`,
		`use scripting additions`,
		`set targets to {` + strings.Join(refs, ", ") + `}`,
		`tell application "Finder" to set trashed to delete targets`,
		// a single target yields a bare reference instead of a list
		`if class of trashed is not list then set trashed to {trashed}`,
		`set urls to {}`,
		`repeat with t in trashed`,
		`set end of urls to ((current application's NSURL's fileURLWithPath:(POSIX path of (t as alias)))'s absoluteString()) as text`,
		`end repeat`,
		`set AppleScript's text item delimiters to linefeed`,
		`return urls as text`,
	}}, nil
}
