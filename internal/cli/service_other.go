//go:build !darwin

package cli

import (
	"github.com/babarot/putback/internal/config"
	"github.com/babarot/putback/internal/trash"
	"github.com/babarot/putback/internal/trash/xdg"
)

// newService returns the freedesktop.org trash service
func newService(cfg config.Config) (trash.Service, error) {
	svc, err := xdg.NewService(xdg.Config{
		HomeTrashDir:   cfg.Service.HomeTrashDir,
		HomeFallback:   cfg.Service.HomeFallback,
		ForceHomeTrash: cfg.Service.ForceHomeTrash,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}
