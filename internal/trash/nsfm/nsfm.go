// Package nsfm calls NSFileManager's trashItemAtURL through osascript's
// JavaScript bridge. Go has no Objective-C runtime of its own, so the
// service runs in a short-lived osascript process per entry.
package nsfm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/babarot/putback/internal/shell"
)

// script receives the percent-encoded file URL as its only argument and
// returns the file URL of the trashed item.
const script = `ObjC.import("Foundation");
function run(argv) {
  var fm = $.NSFileManager.defaultManager;
  var url = $.NSURL.URLWithString(argv[0]);
  if (url.isNil()) { throw new Error("invalid file URL " + argv[0]); }
  var out = Ref();
  var err = Ref();
  if (!fm.trashItemAtURLResultingItemURLError(url, out, err)) {
    throw new Error(ObjC.unwrap(err[0].localizedDescription));
  }
  return ObjC.unwrap(out[0].absoluteString);
}`

// Error is the failure reported by NSFileManager.
type Error struct {
	ExitCode int
	Message  string
}

func (e *Error) Error() string {
	return e.Message
}

// Service is the macOS trash service.
type Service struct {
	runner shell.Runner
}

// New returns a Service starting osascript with r.
func New(r shell.Runner) *Service {
	return &Service{runner: r}
}

// Trash moves the entry named by fileURL to the trash of its volume.
func (s *Service) Trash(fileURL string) (string, error) {
	res, err := s.runner.Run("osascript", "-l", "JavaScript", "-e", script, fileURL)
	if err != nil {
		return "", fmt.Errorf("start osascript: %w", err)
	}
	if !res.Success() {
		return "", &Error{ExitCode: res.ExitCode, Message: cleanMessage(string(res.Stderr))}
	}
	out := strings.TrimSpace(string(res.Stdout))
	if out == "" {
		return "", &Error{ExitCode: res.ExitCode, Message: "no location reported for " + fileURL}
	}
	return out, nil
}

var (
	// "execution error: Error: The file “a” couldn’t be found. (-2700)"
	errorPrefix = regexp.MustCompile(`^.*?execution error:\s*(Error:\s*)?`)
	errorCode   = regexp.MustCompile(`\s*\(-?\d+\)$`)
)

func cleanMessage(stderr string) string {
	msg := strings.TrimSpace(stderr)
	msg = errorPrefix.ReplaceAllString(msg, "")
	msg = errorCode.ReplaceAllString(msg, "")
	if msg == "" {
		return "osascript failed without a message"
	}
	return msg
}
