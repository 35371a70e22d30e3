package debug

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	content := "DEBUG first\nINFO  second\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Logs(&buf, path, true, false); err != nil {
		t.Fatalf("Logs() error = %v", err)
	}
	if buf.String() != content {
		t.Errorf("Logs() printed %q, want %q", buf.String(), content)
	}
}

func TestLogsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	if err := Logs(&bytes.Buffer{}, path, false, false); !errors.Is(err, ErrLoggingDisabled) {
		t.Errorf("Logs() error = %v, want ErrLoggingDisabled", err)
	}
	if err := Logs(&bytes.Buffer{}, path, true, false); err == nil || errors.Is(err, ErrLoggingDisabled) {
		t.Errorf("Logs() error = %v, want a missing file error", err)
	}
	if err := Logs(&bytes.Buffer{}, path, false, true); !errors.Is(err, ErrLoggingDisabled) {
		t.Errorf("live Logs() error = %v, want ErrLoggingDisabled", err)
	}
}
