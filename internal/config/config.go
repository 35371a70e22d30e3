package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"

	"github.com/babarot/putback/internal/env"
)

var validate *validator.Validate

type Config struct {
	Core    Core          `yaml:"core"`
	Service ServiceConfig `yaml:"service"`
	Direct  DirectConfig  `yaml:"direct"`
	Logging LoggingConfig `yaml:"logging"`
}

type Core struct {
	// Method is "auto" or a deletion method name
	Method    string   `yaml:"method" validate:"required,method"`
	Verbose   bool     `yaml:"verbose"`
	Protected []string `yaml:"protected" validate:"dive,validGlob"`
}

type ServiceConfig struct {
	HomeTrashDir   string `yaml:"home_trash_dir" validate:"omitempty,dirpath_any"`
	HomeFallback   bool   `yaml:"home_fallback"`
	ForceHomeTrash bool   `yaml:"force_home_trash"`
}

type DirectConfig struct {
	TrashDir string `yaml:"trash_dir" validate:"omitempty,dirpath_any"`
	Metadata string `yaml:"metadata" validate:"required,oneof=xattr sidecar"`
}

type LoggingConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Level    string         `yaml:"level" validate:"required,oneof=debug info warn error"`
	Rotation RotationConfig `yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize  string `yaml:"max_size" validate:"required,validSize"`
	MaxFiles int    `yaml:"max_files" validate:"gte=0"`
	// MaxAge drops rotated files older than this, e.g. "30 days"
	MaxAge string `yaml:"max_age" validate:"omitempty,validDuration"`
}

type configError struct {
	configPath string
	configDir  string
	parser     parser
	err        error
}

type parser struct{}

func (p parser) getDefaultConfigContents() string {
	content, _ := yaml.Marshal(NewDefaultConfig())
	return string(content)
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't find the "%s" config file.
		Please try again after creating it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.PUTBACK_CONFIG_PATH,
		e.parser.getDefaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (p parser) createConfigFile(path string) error {
	if err := p.ensureDirExists(filepath.Dir(path)); err != nil {
		return err
	}

	// Create the config file if missing
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("creating config file as it does not exist", "config-file", path)
		newConfigFile, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return err
		}
		defer newConfigFile.Close()

		if _, err := newConfigFile.WriteString(p.getDefaultConfigContents()); err != nil {
			return err
		}
	}

	return nil
}

func (p parser) ensureDirExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dirPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}

func (p parser) ensureConfigFile() (string, error) {
	path := env.PUTBACK_CONFIG_PATH

	if err := p.createConfigFile(path); err != nil {
		return "", configError{
			configPath: path,
			configDir:  filepath.Dir(path),
			parser:     p,
			err:        err,
		}
	}

	return path, nil
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error {
	return e.err
}

func (p parser) readConfigFile(path string) (Config, error) {
	// fields missing from the file keep their defaults
	cfg := *NewDefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{
			configPath: path,
			configDir:  filepath.Dir(path),
			parser:     p,
			err:        err,
		}
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, err
	}

	if err := validate.Struct(cfg); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return cfg, fmt.Errorf("validation error: field %s, %q is invalid", yamlPath(e.Namespace()), fmt.Sprint(e.Value()))
		}
		return cfg, err
	}

	if err := cfg.expandPaths(); err != nil {
		return cfg, err
	}
	warnUnavailableMethod(cfg.Core.Method)
	return cfg, nil
}

// yamlPath turns "Config.core.protected[0]" into "core.protected[0]"
func yamlPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return rest
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Service.HomeTrashDir, &c.Direct.TrashDir} {
		if *p == "" {
			continue
		}
		expanded, err := expandPath(*p)
		if err != nil {
			return fmt.Errorf("cannot expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

func initParser() parser {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("method", validateMethod)
	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validGlob", validateGlob)
	_ = validate.RegisterValidation("validDuration", validateDuration)
	_ = validate.RegisterValidation("dirpath_any", validateDirPath)

	return parser{}
}

// Parse reads the config file at path, or at the default location when
// path is empty, creating it with defaults there if needed.
func Parse(path string) (Config, error) {
	parser := initParser()

	var cfg Config
	var err error
	var configPath string

	if path == "" {
		configPath, err = parser.ensureConfigFile()
		if err != nil {
			return cfg, parsingError{err: err}
		}
	} else {
		configPath = path
	}
	slog.Debug("config file found", "config-file", configPath)

	cfg, err = parser.readConfigFile(configPath)
	if err != nil {
		return cfg, parsingError{err: err}
	}

	return cfg, nil
}
