package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/gobwas/glob"
	"github.com/samber/lo"

	"github.com/babarot/putback/internal/pathenc"
	"github.com/babarot/putback/internal/trash"
	"github.com/babarot/putback/internal/ui/confirm"
)

// target is one command line argument ready to be trashed
type target struct {
	arg  string
	path pathenc.Bytes
	dir  bool
}

func (t target) kind() string {
	if t.dir {
		return "directory"
	}
	return "file"
}

func (c *CLI) Put(args []string) error {
	slog.Debug("cli.put started")
	defer slog.Debug("cli.put finished")

	if len(args) == 0 {
		return errors.New("too few arguments")
	}

	targets, errs := c.prepare(args)
	targets, err := c.confirm(targets)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return formatErrors(errs)
	}

	paths := lo.Map(targets, func(t target, _ int) pathenc.Bytes { return t.path })
	items, ok, err := c.ctx.DeleteAllWithInfo(paths)
	if err != nil {
		c.report(targets[:relocated(err)], nil, false)
		return formatErrors(append(errs, err))
	}
	c.report(targets, items, ok)
	return formatErrors(errs)
}

// prepare resolves every argument, dropping the ones that must not or
// cannot be trashed. Dropped arguments are reported as errors unless -f
// allows them to be missing.
func (c *CLI) prepare(args []string) ([]target, []error) {
	var targets []target
	var errs []error

	for _, arg := range args {
		paths, err := trash.Canonicalize([]string{arg})
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if c.option.Rm.Force {
				slog.Debug("skip nonexistent file", "path", arg)
				continue
			}
			errs = append(errs, fmt.Errorf("cannot remove '%s': no such file or directory", arg))
			continue
		case err != nil:
			errs = append(errs, fmt.Errorf("cannot remove '%s': %w", arg, err))
			continue
		}

		p := paths[0]
		if c.isProtected(p) {
			slog.Warn("refused protected path", "path", p.String())
			errs = append(errs, fmt.Errorf("refusing to remove protected path '%s'", arg))
			continue
		}

		info, err := os.Lstat(p.OSPath())
		if err != nil {
			errs = append(errs, fmt.Errorf("cannot remove '%s': %w", arg, err))
			continue
		}
		targets = append(targets, target{arg: arg, path: p, dir: info.IsDir()})
	}

	// the same entry named twice would fail as missing the second time
	return lo.UniqBy(targets, func(t target) string { return string(t.path) }), errs
}

func (c *CLI) isProtected(p pathenc.Bytes) bool {
	return lo.ContainsBy(c.protected, func(g glob.Glob) bool {
		return g.Match(p.OSPath())
	})
}

// confirm asks the questions rm asks for -i and -I and returns the targets
// the user agreed to remove
func (c *CLI) confirm(targets []target) ([]target, error) {
	if c.option.Rm.Force || len(targets) == 0 {
		return targets, nil
	}

	if c.option.Rm.Once && len(targets) > 3 {
		m := confirm.NewStrict()
		m.Prompt = fmt.Sprintf("remove %d arguments?", len(targets))
		ok, err := c.ask(m)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
	}

	if !c.option.Rm.Interactive {
		return targets, nil
	}

	var kept []target
	for _, t := range targets {
		m := confirm.New()
		m.Prompt = fmt.Sprintf("remove %s '%s'?", t.kind(), t.arg)
		ok, err := c.ask(m)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, t)
		}
	}
	return kept, nil
}

// relocated returns how many entries a failed batch had already moved
func relocated(err error) int {
	var se *trash.ServiceError
	if errors.As(err, &se) {
		return se.Index
	}
	var me *trash.MoveError
	if errors.As(err, &me) {
		return me.Index
	}
	return 0
}

func (c *CLI) report(targets []target, items []trash.Item, ok bool) {
	if c.option.Rm.Verbose || c.config.Core.Verbose {
		for _, t := range targets {
			if t.dir {
				fmt.Fprintf(c.stdout, "removed directory '%s'\n", t.arg)
			} else {
				fmt.Fprintf(c.stdout, "removed '%s'\n", t.arg)
			}
		}
	}

	if !c.option.Info || len(targets) == 0 {
		return
	}
	if !ok {
		fmt.Fprintf(c.stdout, "%d entries trashed, the %s method reported no details\n", len(targets), c.ctx.Method())
		return
	}
	renderItems(c.stdout, items)
}

func formatErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}

	msg := fmt.Sprintf("%d errors occurred:\n", len(errs))
	for _, err := range errs {
		msg += fmt.Sprintf("  * %v\n", err)
	}
	return errors.New(msg)
}
