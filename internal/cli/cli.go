package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"

	"github.com/babarot/putback/internal/config"
	"github.com/babarot/putback/internal/env"
	"github.com/babarot/putback/internal/trash"
	"github.com/babarot/putback/internal/ui/confirm"
	"github.com/babarot/putback/internal/utils/debug"
	"github.com/babarot/putback/internal/utils/log"
)

type Option struct {
	Method string `short:"m" long:"method" description:"Deletion method (finder, service, direct)" value-name:"METHOD"`
	Info   bool   `long:"info" description:"Show where the deleted entries went"`
	Origin string `long:"origin" description:"Show where an entry in the trash came from" value-name:"FILE"`
	Config string `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`
	Rm   RmOption   `group:"Compatible (rm) Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

// RmOption provides compatibility with rm command options
type RmOption struct {
	Interactive bool `short:"i" description:"prompt before every removal"`
	Once        bool `short:"I" description:"prompt once before removing more than three files"`
	Recursive   bool `short:"r" long:"recursive" description:"(dummy) remove directories and their contents recursively"`
	Recursive2  bool `short:"R" description:"(dummy) same as -r"`
	Force       bool `short:"f" long:"force" description:"ignore nonexistent files, never prompt"`
	Directory   bool `short:"d" long:"dir" description:"(dummy) remove empty directories"`
	Verbose     bool `short:"v" long:"verbose" description:"explain what is being done"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	runID   string

	ctx       trash.Context
	protected []glob.Glob

	stdin  io.Reader
	stdout io.Writer

	// ask shows a prompt and reports whether it was accepted
	ask func(confirm.Model) (bool, error)
}

var runID = sync.OnceValue(func() string {
	id := xid.New().String()
	return id
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[OPTIONS] files..."
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging)
	defer slog.Debug("main function finished")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)
	logger.Debug("config loaded", "config", dump(cfg))

	c := CLI{
		version: v,
		option:  opt,
		config:  cfg,
		runID:   runID(),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	}
	c.ask = func(m confirm.Model) (bool, error) {
		return confirm.Ask(m, c.stdin, c.stdout)
	}

	if err := c.Run(args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	if !cfg.Enabled {
		return log.New(log.UseOutput(io.Discard), log.AsDefault())
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.DebugLevel
	}
	return log.New(
		log.UseRotatingFile(env.PUTBACK_LOG_PATH, cfg.Rotation.MaxSize, cfg.Rotation.MaxFiles, cfg.Rotation.MaxAge),
		log.UseLevel(level),
		log.UseReportCaller(true),
		log.UseReportTimestamp(true),
		log.UseTimeFormat(time.Kitchen),
		log.With("run_id", runID()),
		log.AsDefault(),
	)
}

func (c CLI) Run(args []string) error {
	switch {
	case c.option.Meta.Version:
		fmt.Fprint(c.stdout, c.version.Print())
		return nil

	case c.option.Meta.Debug != "":
		return debug.Logs(c.stdout, env.PUTBACK_LOG_PATH, c.config.Logging.Enabled, c.option.Meta.Debug == "live")

	case c.option.Origin != "":
		return c.Origin(c.option.Origin)

	default:
		ctx, err := newContext(c.config, c.option.Method)
		if err != nil {
			return err
		}
		c.ctx = ctx
		protected, err := compileProtected(c.config.Core.Protected)
		if err != nil {
			return err
		}
		c.protected = protected
		return c.Put(args)
	}
}
