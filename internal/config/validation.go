package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"

	"github.com/babarot/putback/internal/shell"
	"github.com/babarot/putback/internal/trash"
)

// validateMethod accepts "auto" and every name trash.ParseMethod knows
func validateMethod(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if strings.EqualFold(value, "auto") {
		return true
	}
	_, err := trash.ParseMethod(value)
	return err == nil
}

// validateSize validates the size format (e.g., "10MB", "1GB")
func validateSize(fl validator.FieldLevel) bool {
	_, err := units.FromHumanSize(fl.Field().String())
	return err == nil
}

// validateDuration validates durations such as "30 days" or "1 week"
func validateDuration(fl validator.FieldLevel) bool {
	d, err := duration.Parse(fl.Field().String())
	return err == nil && d > 0
}

// validateGlob checks that a protected path pattern compiles
func validateGlob(fl validator.FieldLevel) bool {
	_, err := CompileProtected(fl.Field().String())
	return err == nil
}

// CompileProtected compiles a protected path pattern. "~" is expanded and
// "*" does not cross path separators while "**" does.
func CompileProtected(pattern string) (glob.Glob, error) {
	expanded, err := shell.ExpandHome(pattern)
	if err != nil {
		return nil, err
	}
	return glob.Compile(expanded, '/')
}

// expandPath expands environment variables and "~" in paths
func expandPath(path string) (string, error) {
	path, err := shell.ExpandHome(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(path)
}

// validateDirPath is a validation function for directory paths that works on any OS.
// The standard "dirpath" validator in go-playground/validator marks some
// valid paths as invalid, particularly on Windows.
//
// Empty strings are considered invalid.
func validateDirPath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" {
		return false
	}
	if strings.ContainsRune(path, 0) {
		return false
	}

	// If path exists, verify that it is a directory
	expanded, err := expandPath(path)
	if err != nil {
		return false
	}
	if fi, err := os.Stat(expanded); err == nil {
		return fi.IsDir()
	} else if !os.IsNotExist(err) {
		if _, ok := err.(*os.PathError); ok {
			// Path error indicates possible OS constraint violation
			return false
		}
	}

	return true
}
