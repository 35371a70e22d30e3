package config

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/babarot/putback/internal/env"
)

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Core: Core{
			Method:  "auto",
			Verbose: false,
			Protected: []string{
				"/",
				"/*",
				"~",
			},
		},
		Service: ServiceConfig{
			HomeFallback: true,
		},
		Direct: DirectConfig{
			Metadata: "xattr",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "debug",
			Rotation: RotationConfig{
				MaxSize:  "10MB",
				MaxFiles: 3,
				MaxAge:   "30 days",
			},
		},
	}
}

// ResolveMethod returns the method name to use, replacing "auto" with the
// platform default: Finder on macOS, the trash service elsewhere.
func (c Core) ResolveMethod() string {
	if !strings.EqualFold(c.Method, "auto") {
		return c.Method
	}
	if runtime.GOOS == "darwin" {
		return "finder"
	}
	return "service"
}

// DirectTrashDir returns the directory used by the direct method. Outside
// macOS it is a directory of our own, never the freedesktop home trash,
// whose entries need .trashinfo files the direct method does not write.
func (c Config) DirectTrashDir(home string) string {
	if c.Direct.TrashDir != "" {
		return c.Direct.TrashDir
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, ".Trash")
	}
	return filepath.Join(env.DataHome(), "putback", "trash")
}
