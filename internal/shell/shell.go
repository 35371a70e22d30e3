// Package shell runs external programs and captures what they print.
package shell

import (
	"bytes"
	"errors"
	"log/slog"
	"os/exec"

	"al.essio.dev/pkg/shellescape"
)

// Result is the outcome of a process that was started.
type Result struct {
	Stdout []byte
	Stderr []byte

	// ExitCode is the process exit status, or -1 when the process was
	// terminated by a signal.
	ExitCode int
}

// Exited reports whether the process exited on its own with a status code.
func (r *Result) Exited() bool {
	return r.ExitCode >= 0
}

// Success reports whether the process exited with status 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner starts a program and waits for it.
//
// Run returns an error only when the program could not be started or
// waited for. A program that ran and failed is reported through Result.
type Runner interface {
	Run(name string, args ...string) (*Result, error)
}

// Exec is the Runner backed by os/exec.
type Exec struct{}

func (Exec) Run(name string, args ...string) (*Result, error) {
	slog.Debug("run command", "command", shellescape.QuoteCommand(append([]string{name}, args...)))

	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if err == nil {
		return res, nil
	}

	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		return nil, err
	}
	res.ExitCode = ee.ExitCode()
	if errStr := stderr.String(); errStr != "" {
		slog.Warn("command might be failed",
			"command", name,
			"exit", res.ExitCode,
			"output", errStr,
		)
	}
	return res, nil
}
