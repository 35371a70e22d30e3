package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
)

var (
	PUTBACK_CONFIG_PATH string

	PUTBACK_LOG_PATH string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	PUTBACK_CONFIG_PATH = os.Getenv("PUTBACK_CONFIG_PATH")
	PUTBACK_LOG_PATH = os.Getenv("PUTBACK_LOG_PATH")

	// Follow https://specifications.freedesktop.org/basedir-spec/latest/
	if PUTBACK_CONFIG_PATH == "" {
		PUTBACK_CONFIG_PATH = filepath.Join(baseDir("XDG_CONFIG_HOME", defaultXDGConfigDirname), "putback", "config.yaml")
	}
	if PUTBACK_LOG_PATH == "" {
		PUTBACK_LOG_PATH = filepath.Join(DataHome(), "putback", "debug.log")
	}
}

// DataHome returns $XDG_DATA_HOME or its default.
func DataHome() string {
	return baseDir("XDG_DATA_HOME", defaultXDGDataDirname)
}

func baseDir(key, fallback string) string {
	if dir := os.Getenv(key); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(homeDir, fallback)
}
