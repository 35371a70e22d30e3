package shell

import (
	"runtime"
	"strings"
	"testing"
)

func TestExecRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	testCases := []struct {
		name         string
		script       string
		wantExitCode int
		wantExited   bool
		wantStdout   string
		wantStderr   string
	}{
		{
			name:         "Simple echo command",
			script:       "echo hello world",
			wantExitCode: 0,
			wantExited:   true,
			wantStdout:   "hello world\n",
		},
		{
			name:         "Nonzero exit with stderr",
			script:       "echo oops >&2; exit 3",
			wantExitCode: 3,
			wantExited:   true,
			wantStderr:   "oops\n",
		},
		{
			name:         "Killed by signal",
			script:       "kill -9 $$",
			wantExitCode: -1,
			wantExited:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Exec{}.Run("sh", "-c", tc.script)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if res.ExitCode != tc.wantExitCode {
				t.Errorf("Expected exit code %d, got %d", tc.wantExitCode, res.ExitCode)
			}
			if res.Exited() != tc.wantExited {
				t.Errorf("Exited() = %v, want %v", res.Exited(), tc.wantExited)
			}
			if string(res.Stdout) != tc.wantStdout {
				t.Errorf("Unexpected stdout: %q", res.Stdout)
			}
			if string(res.Stderr) != tc.wantStderr {
				t.Errorf("Unexpected stderr: %q", res.Stderr)
			}
		})
	}
}

func TestExecRunNotFound(t *testing.T) {
	_, err := Exec{}.Run("putback-no-such-command")
	if err == nil {
		t.Fatal("expected an error for a missing program")
	}
	if !strings.Contains(err.Error(), "putback-no-such-command") {
		t.Errorf("error %q does not name the program", err)
	}
}
