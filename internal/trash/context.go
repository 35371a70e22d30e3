package trash

import (
	"time"

	"github.com/babarot/putback/internal/pathenc"
	"github.com/babarot/putback/internal/shell"
	"github.com/babarot/putback/internal/trash/meta"
)

// Context selects the deletion method and carries what the method needs.
// It is a value: options are applied once by NewContext or With and a
// Context is never changed afterwards, so it can be shared between
// goroutines.
type Context struct {
	method   Method
	service  Service
	runner   shell.Runner
	trashDir pathenc.Bytes
	store    meta.Store
	now      func() time.Time
}

// Option configures a Context.
type Option func(*Context)

// WithMethod sets the deletion method.
func WithMethod(m Method) Option {
	return func(c *Context) {
		c.method = m
	}
}

// WithService sets the native trash service used by MethodServiceCall.
func WithService(s Service) Option {
	return func(c *Context) {
		c.service = s
	}
}

// WithRunner sets how osascript is started for MethodAutomationScript.
func WithRunner(r shell.Runner) Option {
	return func(c *Context) {
		c.runner = r
	}
}

// WithTrashDir sets the directory MethodDirectMove moves entries into.
func WithTrashDir(dir pathenc.Bytes) Option {
	return func(c *Context) {
		c.trashDir = append(pathenc.Bytes(nil), dir...)
	}
}

// WithMetadataStore sets where MethodDirectMove records origins.
func WithMetadataStore(s meta.Store) Option {
	return func(c *Context) {
		c.store = s
	}
}

// WithClock replaces time.Now for the DeletedAt field of returned items.
func WithClock(now func() time.Time) Option {
	return func(c *Context) {
		c.now = now
	}
}

// NewContext returns a Context using DefaultMethod unless told otherwise.
func NewContext(opts ...Option) Context {
	c := Context{
		method: DefaultMethod,
		runner: shell.Exec{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// With returns a copy of c with opts applied.
func (c Context) With(opts ...Option) Context {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Method returns the configured deletion method.
func (c Context) Method() Method {
	return c.method
}

// TrashDir returns the directory used by MethodDirectMove.
func (c Context) TrashDir() pathenc.Bytes {
	return c.trashDir
}

// MetadataStore returns the store used by MethodDirectMove.
func (c Context) MetadataStore() meta.Store {
	if c.store != nil {
		return c.store
	}
	return defaultStore(c.trashDir)
}

func defaultStore(trashDir pathenc.Bytes) meta.Store {
	return meta.Fallback{
		Primary:   meta.NewXattr(),
		Secondary: meta.NewSidecar(trashDir.OSPath()),
	}
}
