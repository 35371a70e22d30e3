package trash

import (
	"log/slog"

	"github.com/babarot/putback/internal/applescript"
	"github.com/babarot/putback/internal/pathenc"
)

// osascript is the program that runs the Finder script.
const osascript = "osascript"

// deleteWithFinder runs a single script over the whole batch. Success is
// decided by the exit status alone; Finder may have moved some entries
// before a failure and those are not reported back.
func (c Context) deleteWithFinder(paths []pathenc.Bytes) ([]Item, bool, error) {
	script, err := applescript.DeleteScript(paths)
	if err != nil {
		return nil, false, err
	}

	res, err := c.runner.Run(osascript, script.Args()...)
	if err != nil {
		return nil, false, &ProcessError{Code: -1, Err: err}
	}
	if !res.Success() {
		return nil, false, &ProcessError{
			Code:   res.ExitCode,
			Exited: res.Exited(),
			Stderr: string(res.Stderr),
		}
	}

	items, ok := reconcileScript(paths, res.Stdout, c.now())
	if !ok {
		slog.Debug("finder output does not line up with the request", "count", len(paths))
	}
	return items, ok, nil
}
