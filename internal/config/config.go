// =============================================================================
// Openings Book Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
// Every setting has a default that reproduces the classic behavior of the
// tool: read "openings.dat" and write "openings.csv" in the working
// directory. A YAML file may override any of them, and command-line flags
// override the file.
//
// PRECEDENCE (highest first):
//   1. Command-line flags (applied by the cmd package)
//   2. config.yaml (or the file named by --config)
//   3. Built-in defaults
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultInputFile  = "openings.dat"
	DefaultOutputFile = "openings.csv"
	DefaultFormat     = "csv"
	DefaultEncoding   = "UTF-8"
	DefaultReverseTag = "(t3)"
	DefaultLogLevel   = "info"
	DefaultSheetName  = "Openings"
)

// Formats lists the supported output encodings of the book.
var Formats = []string{"csv", "engine", "xlsx", "sqlite"}

// logLevels lists the accepted values of LogLevel.
var logLevels = []string{"debug", "info", "warn", "error"}

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// FILE SETTINGS
	// =========================================================================

	// InputFile is the openings catalog to convert.
	// Default: "openings.dat"
	InputFile string `yaml:"input_file"`

	// OutputFile is the book to write. It is replaced only when the whole
	// conversion succeeds.
	// Default: "openings.csv"
	OutputFile string `yaml:"output_file"`

	// Format selects the encoding of the book.
	// Valid values: "csv", "engine", "xlsx", "sqlite"
	// Default: "csv"
	Format string `yaml:"format"`

	// Encoding is the character encoding of the catalog.
	// Any WHATWG encoding label is accepted, e.g. "UTF-8", "ISO-8859-1",
	// "Windows-1252".
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// =========================================================================
	// CATALOG SETTINGS
	// =========================================================================

	// ReverseTag is the last-token literal that marks openings whose first
	// three moves are also emitted in reverse order.
	// Default: "(t3)"
	ReverseTag string `yaml:"reverse_tag"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// SheetName is the worksheet name used by the "xlsx" format.
	// Default: "Openings"
	SheetName string `yaml:"sheet_name"`

	// SummaryFile, when set, receives a plain-text summary of each run.
	SummaryFile string `yaml:"summary_file,omitempty"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every setting at its default.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - path: The path to the configuration file.
//   - required: When false, a missing file yields the defaults instead of
//     an error. The cmd package passes false for the implicit
//     "config.yaml" and true when --config was given explicitly.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputFile == "" {
		cfg.InputFile = DefaultInputFile
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Encoding == "" {
		cfg.Encoding = DefaultEncoding
	}
	if cfg.ReverseTag == "" {
		cfg.ReverseTag = DefaultReverseTag
	}
	if cfg.SheetName == "" {
		cfg.SheetName = DefaultSheetName
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// Validate checks the configuration values. It is called by Load and again
// by the cmd package after flags have been applied.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(c.Format)
	c.LogLevel = strings.ToLower(c.LogLevel)

	if !contains(Formats, c.Format) {
		return fmt.Errorf("unknown format %q (valid: %s)", c.Format, strings.Join(Formats, ", "))
	}
	if !contains(logLevels, c.LogLevel) {
		return fmt.Errorf("unknown log level %q (valid: %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}
	if strings.ContainsAny(c.ReverseTag, " \t\r\n") {
		return fmt.Errorf("reverse_tag %q must be a single token", c.ReverseTag)
	}
	if c.InputFile == c.OutputFile {
		return fmt.Errorf("input_file and output_file must differ (both %q)", c.InputFile)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
