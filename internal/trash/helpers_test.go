package trash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/babarot/putback/internal/fs"
	"github.com/babarot/putback/internal/pathenc"
	"github.com/babarot/putback/internal/shell"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// createTestFile creates a file in dir and returns its absolute path
func createTestFile(t *testing.T, dir, name string) pathenc.Bytes {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("content of "+name), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return pathenc.FromOS(p)
}

// tempDir returns a temporary directory with its symlinks resolved
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

// moveIntoTrash moves src into trashDir the way a desktop trash does,
// renaming on collision, and returns the new path.
func moveIntoTrash(trashDir string, src pathenc.Bytes) (string, error) {
	name := fs.UniqueName(pathenc.Base(src).OSPath(), func(n string) bool {
		return fs.Exists(filepath.Join(trashDir, n))
	})
	dst := filepath.Join(trashDir, name)
	if err := fs.Move(src.OSPath(), dst); err != nil {
		return "", err
	}
	return dst, nil
}

// fakeService is a Service backed by a plain directory
type fakeService struct {
	trashDir string
	calls    []string
}

func (s *fakeService) Trash(fileURL string) (string, error) {
	s.calls = append(s.calls, fileURL)
	src, err := pathenc.ParseFileURL(fileURL)
	if err != nil {
		return "", err
	}
	dst, err := moveIntoTrash(s.trashDir, src)
	if err != nil {
		return "", fmt.Errorf("The file %q doesn't exist.", src.String())
	}
	return pathenc.FileURL(pathenc.FromOS(dst)), nil
}

// fakeFinder is a shell.Runner that evaluates the Finder delete script:
// it reads the target list the way the script compiler would, moves every
// target into trashDir and prints their new file URLs.
type fakeFinder struct {
	trashDir string
	runs     int
	scripts  []string
}

func (f *fakeFinder) Run(name string, args ...string) (*shell.Result, error) {
	f.runs++
	if name != osascript {
		return nil, fmt.Errorf("unexpected program %q", name)
	}
	var lines []string
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] != "-e" {
			return nil, fmt.Errorf("unexpected argument %q", args[i])
		}
		lines = append(lines, args[i+1])
	}
	f.scripts = append(f.scripts, strings.Join(lines, "\n"))

	var targets []pathenc.Bytes
	for _, l := range lines {
		if rest, ok := strings.CutPrefix(l, "set targets to {"); ok {
			var err error
			if targets, err = parseTargets(strings.TrimSuffix(rest, "}")); err != nil {
				return &shell.Result{Stderr: []byte(err.Error()), ExitCode: 1}, nil
			}
		}
	}

	var out strings.Builder
	for _, p := range targets {
		dst, err := moveIntoTrash(f.trashDir, p)
		if err != nil {
			return &shell.Result{
				Stdout:   []byte(out.String()),
				Stderr:   []byte("execution error: Finder got an error: " + err.Error() + " (-1728)"),
				ExitCode: 1,
			}, nil
		}
		out.WriteString(pathenc.FileURL(pathenc.FromOS(dst)) + "\n")
	}
	return &shell.Result{Stdout: []byte(out.String())}, nil
}

const (
	posixFile = "POSIX file "
	urlRef    = "((current application's NSURL's URLWithString:"
	urlRefEnd = ") as «class furl»)"
)

func parseTargets(list string) ([]pathenc.Bytes, error) {
	var targets []pathenc.Bytes
	for list != "" {
		switch {
		case strings.HasPrefix(list, posixFile):
			lit, rest, err := unquote(list[len(posixFile):])
			if err != nil {
				return nil, err
			}
			targets = append(targets, pathenc.Bytes(lit))
			list = rest
		case strings.HasPrefix(list, urlRef):
			lit, rest, err := unquote(list[len(urlRef):])
			if err != nil {
				return nil, err
			}
			p, err := pathenc.ParseFileURL(lit)
			if err != nil {
				return nil, err
			}
			targets = append(targets, p)
			list, _ = strings.CutPrefix(rest, urlRefEnd)
		default:
			return nil, fmt.Errorf("syntax error near %q", list)
		}
		list = strings.TrimPrefix(list, ", ")
	}
	return targets, nil
}

func unquote(src string) (string, string, error) {
	if !strings.HasPrefix(src, `"`) {
		return "", src, errors.New("expected string literal")
	}
	var sb strings.Builder
	for i := 1; i < len(src); i++ {
		switch c := src[i]; c {
		case '"':
			return sb.String(), src[i+1:], nil
		case '\\':
			i++
			if i == len(src) {
				return "", "", errors.New("dangling backslash")
			}
			sb.WriteByte(src[i])
		default:
			sb.WriteByte(c)
		}
	}
	return "", "", errors.New("unterminated string literal")
}

// stubRunner returns a canned result
type stubRunner struct {
	result *shell.Result
	err    error
	runs   int
}

func (s *stubRunner) Run(string, ...string) (*shell.Result, error) {
	s.runs++
	return s.result, s.err
}
