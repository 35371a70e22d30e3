package trash

import (
	"log/slog"

	"github.com/babarot/putback/internal/pathenc"
)

// Service is a native trash service that moves one entry at a time.
//
// Trash receives the entry as a percent-encoded file URL and returns the
// file URL of the entry's new location, which may carry a different name
// when the trash already held one with the same name.
type Service interface {
	Trash(fileURL string) (string, error)
}

// ServiceFunc adapts a function to Service.
type ServiceFunc func(fileURL string) (string, error)

func (f ServiceFunc) Trash(fileURL string) (string, error) {
	return f(fileURL)
}

func (c Context) deleteWithService(paths []pathenc.Bytes) ([]Item, error) {
	if c.service == nil {
		return nil, ErrNoService
	}

	items := make([]Item, 0, len(paths))
	for i, p := range paths {
		u := pathenc.FileURL(p)
		slog.Debug("call trash service", "url", u)

		newURL, err := c.service.Trash(u)
		if err != nil {
			return nil, &ServiceError{Path: p, Index: i, Cause: err.Error(), Err: err}
		}
		id, err := pathenc.ParseFileURL(newURL)
		if err != nil {
			return nil, &ServiceError{Path: p, Index: i, Cause: "unreadable new location " + newURL, Err: err}
		}
		items = append(items, newItem(p, id, c.now()))
	}
	return items, nil
}
