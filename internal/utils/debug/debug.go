package debug

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

// ErrLoggingDisabled is returned when there is no log to show because
// logging is turned off in the config
var ErrLoggingDisabled = errors.New("logging is not enabled in config")

// Logs prints the log file at path, or follows it when live is set and
// stdout is a terminal
func Logs(w io.Writer, path string, enabled, live bool) error {
	if live {
		return tailLiveLogs(w, path, enabled)
	}
	return showExistingLogs(w, path, enabled)
}

func tailLiveLogs(w io.Writer, path string, enabled bool) error {
	if !enabled {
		return fmt.Errorf("%w: enable logging in config for live debugging", ErrLoggingDisabled)
	}

	shouldFollow := isatty.IsTerminal(os.Stdout.Fd())
	tailConfig := tail.Config{
		ReOpen: shouldFollow,
		Follow: shouldFollow,
		Poll:   true,
		Logger: tail.DiscardingLogger,
		Location: &tail.SeekInfo{
			Offset: 0,
			Whence: io.SeekEnd,
		},
	}

	t, err := tail.TailFile(path, tailConfig)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: try running some commands with logging enabled")
		}
		return err
	}
	defer t.Cleanup()

	for line := range t.Lines {
		if line.Err != nil {
			return line.Err
		}
		fmt.Fprintln(w, line.Text)
	}

	return nil
}

func showExistingLogs(w io.Writer, path string, enabled bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !enabled {
			return fmt.Errorf("%w: enable logging to create log files", ErrLoggingDisabled)
		}
		return fmt.Errorf("no log file exists yet: try running some commands first")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}

	return scanner.Err()
}
