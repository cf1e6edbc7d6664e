// Package config loads the optional idlbridge.yaml file.
package config

import (
	"bytes"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idlbridge/idlbridge/internal/errors"
)

// FileName is the configuration file looked up in the root directory.
const FileName = "idlbridge.yaml"

// Config represents the configuration parsed from idlbridge.yaml. Every
// field is optional; ApplyDefaults fills in what is missing.
type Config struct {
	// Output controls artifact names.
	Output OutputConfig `yaml:"output"`
	// Templates selects the template set.
	Templates TemplatesConfig `yaml:"templates"`
	// Generation controls how tasks are scheduled.
	Generation GenerationConfig `yaml:"generation"`
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls the names of generated artifacts.
type OutputConfig struct {
	// HeaderExt is the extension of bridge headers, including the dot.
	HeaderExt string `yaml:"header_ext"`
	// ImplExt is the extension of bridge implementations, including the dot.
	ImplExt string `yaml:"impl_ext"`
	// RegistrationFile is the aggregate registration file, relative to the output directory.
	RegistrationFile string `yaml:"registration_file"`
	// TypeTraitsFile is the type-trait table, relative to the output directory.
	TypeTraitsFile string `yaml:"type_traits_file"`
	// ModuleName is the addon name passed to NODE_API_MODULE.
	ModuleName string `yaml:"module_name"`
}

// TemplatesConfig selects the template set.
type TemplatesConfig struct {
	// Dir overrides the built-in templates. Relative paths in a config file
	// are resolved against the file's directory.
	Dir string `yaml:"dir"`
}

// GenerationConfig controls task scheduling.
type GenerationConfig struct {
	// Sequential runs one task at a time. Output is identical either way.
	Sequential bool `yaml:"sequential"`
	// Workers caps concurrent tasks; 0 means no limit.
	Workers int `yaml:"workers"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path. Empty logs to stderr.
	Path string `yaml:"path"`
}

var moduleNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Load reads, defaults and validates the configuration file at path.
//
// Parameters:
//   - path: The YAML file to read.
//
// Returns:
//   - *Config: The validated configuration.
//   - error: A ConfigError if the file is unreadable, malformed or invalid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config(err, "read config %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}

	if cfg.Templates.Dir != "" && !filepath.IsAbs(cfg.Templates.Dir) {
		cfg.Templates.Dir = filepath.Join(filepath.Dir(path), cfg.Templates.Dir)
	}
	return cfg, nil
}

// Parse decodes YAML content, rejecting unknown fields, then applies
// defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.Config(err, "parse yaml")
	}

	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults sets default values for configuration fields that are missing.
//
// Parameters:
//   - config: The Config object to modify.
func ApplyDefaults(config *Config) {
	if config.Output.HeaderExt == "" {
		config.Output.HeaderExt = ".h"
	}
	if config.Output.ImplExt == "" {
		config.Output.ImplExt = ".cc"
	}
	if config.Output.RegistrationFile == "" {
		config.Output.RegistrationFile = "idlbridge.cc"
	}
	if config.Output.TypeTraitsFile == "" {
		config.Output.TypeTraitsFile = "js_type_traits.h"
	}
	if config.Output.ModuleName == "" {
		config.Output.ModuleName = "idlbridge"
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
}

// Validate checks the configuration for errors, such as clashing file names
// or unsupported log levels.
//
// Parameters:
//   - config: The Config object to validate.
//
// Returns:
//   - error: A ConfigError if the configuration is invalid, or nil otherwise.
func Validate(config *Config) error {
	out := config.Output
	for _, ext := range []struct{ field, value string }{
		{"header_ext", out.HeaderExt},
		{"impl_ext", out.ImplExt},
	} {
		if len(ext.value) < 2 || !strings.HasPrefix(ext.value, ".") || strings.ContainsAny(ext.value, `/\`) {
			return errors.Config(nil, "output.%s: invalid extension %q (expected e.g. \".h\")", ext.field, ext.value)
		}
	}
	if out.HeaderExt == out.ImplExt {
		return errors.Config(nil, "output.header_ext and output.impl_ext are both %q", out.HeaderExt)
	}

	for _, file := range []struct{ field, value string }{
		{"registration_file", out.RegistrationFile},
		{"type_traits_file", out.TypeTraitsFile},
	} {
		if err := validateRelPath(file.value); err != nil {
			return errors.Config(err, "output.%s", file.field)
		}
	}
	if path.Clean(out.RegistrationFile) == path.Clean(out.TypeTraitsFile) {
		return errors.Config(nil, "output.registration_file and output.type_traits_file are both %q", out.RegistrationFile)
	}

	if !moduleNamePattern.MatchString(out.ModuleName) {
		return errors.Config(nil, "output.module_name: %q is not a valid identifier", out.ModuleName)
	}

	if config.Generation.Workers < 0 {
		return errors.Config(nil, "generation.workers: must not be negative, got %d", config.Generation.Workers)
	}

	if config.Logging.Level != "" {
		switch strings.ToLower(config.Logging.Level) {
		case "debug", "info", "warn", "error":
			// ok
		default:
			return errors.Config(nil, "invalid logging level: %s (allowed: debug, info, warn, error)", config.Logging.Level)
		}
	}

	return nil
}

// validateRelPath accepts slash-separated paths that stay inside the output
// directory.
func validateRelPath(p string) error {
	if p == "" {
		return errors.New("path is empty")
	}
	if path.IsAbs(p) || filepath.IsAbs(p) {
		return errors.Newf("%q must be relative to the output directory", p)
	}
	clean := path.Clean(filepath.ToSlash(p))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Newf("%q leaves the output directory", p)
	}
	return nil
}
