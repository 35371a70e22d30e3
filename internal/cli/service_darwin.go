package cli

import (
	"github.com/babarot/putback/internal/config"
	"github.com/babarot/putback/internal/shell"
	"github.com/babarot/putback/internal/trash"
	"github.com/babarot/putback/internal/trash/nsfm"
)

// newService returns the NSFileManager trash service
func newService(config.Config) (trash.Service, error) {
	return nsfm.New(shell.Exec{}), nil
}
