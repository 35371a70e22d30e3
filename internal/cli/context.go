package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gobwas/glob"

	"github.com/babarot/putback/internal/config"
	"github.com/babarot/putback/internal/pathenc"
	"github.com/babarot/putback/internal/trash"
	"github.com/babarot/putback/internal/trash/meta"
)

// newContext builds the deletion context from the config. A non-empty
// method overrides core.method.
func newContext(cfg config.Config, method string) (trash.Context, error) {
	if method == "" {
		method = cfg.Core.ResolveMethod()
	}
	m, err := trash.ParseMethod(method)
	if err != nil {
		return trash.Context{}, err
	}
	slog.Debug("deletion method selected", "method", m.String())

	opts := []trash.Option{trash.WithMethod(m)}
	switch m {
	case trash.MethodServiceCall:
		svc, err := newService(cfg)
		if err != nil {
			return trash.Context{}, fmt.Errorf("failed to initialize trash service: %w", err)
		}
		opts = append(opts, trash.WithService(svc))

	case trash.MethodDirectMove:
		home, err := os.UserHomeDir()
		if err != nil {
			return trash.Context{}, err
		}
		dir := cfg.DirectTrashDir(home)
		opts = append(opts, trash.WithTrashDir(pathenc.FromOS(dir)))
		if cfg.Direct.Metadata == "sidecar" {
			opts = append(opts, trash.WithMetadataStore(meta.NewSidecar(dir)))
		}
	}

	return trash.NewContext(opts...), nil
}

func compileProtected(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := config.CompileProtected(p)
		if err != nil {
			return nil, fmt.Errorf("protected pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}
