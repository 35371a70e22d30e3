// Package log builds the charmbracelet/log handler installed behind slog.
package log

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

var (
	defaultStylesOnce sync.Once
	defaultStyles     *Styles
)

// DefaultStyles returns level styles padded to a common width
func DefaultStyles() *Styles {
	defaultStylesOnce.Do(func() {
		styles := charmlog.DefaultStyles()
		for _, ls := range levelStyles {
			name := strings.ToUpper(ls.level.String())
			styles.Levels[ls.level] = ls.style.SetString(fmt.Sprintf("%-*s", levelWidth, name))
		}
		defaultStyles = styles
	})
	return defaultStyles
}

// New creates a new logger with the given options
func New(opts ...Option) *slog.Logger {
	o := DefaultOptions()
	o.Apply(opts...)

	if o.OutputFunc != nil {
		if w, err := o.OutputFunc(); err == nil {
			o.Writer = w
		}
	}

	handler := charmlog.NewWithOptions(o.Writer, o.Options)
	handler.SetStyles(o.Styles)

	logger := slog.New(handler)
	if len(o.Attrs) > 0 {
		logger = logger.With(o.Attrs...)
	}

	if o.Default {
		slog.SetDefault(logger)
	}

	return logger
}
