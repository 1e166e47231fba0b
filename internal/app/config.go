package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyperifyio/digitruns/internal/report"
	"github.com/hyperifyio/digitruns/internal/source"
)

// Config holds runtime configuration for the application.
type Config struct {
	// InputPath is a file to scan; "-" reads stdin.
	InputPath string
	// OutputPath receives the report; empty writes to stdout.
	OutputPath string

	// Formats
	InputFormat  string // text | html; empty detects from extension
	OutputFormat string // lines | json | yaml | markdown | pdf

	// Extraction
	FoldWidth bool
	Language  string

	// Behavior
	Interactive   bool
	WriteManifest bool
	Verbose       bool
	LogFile       string
	LogLevel      string

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool
}

const (
	inputDefault        = "-"
	outputFormatDefault = "lines"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// ErrNoInput is returned when neither an input path nor interactive mode is set.
var ErrNoInput = fmt.Errorf("%w: input path is required (use - for stdin)", ErrInvalidConfig)

// Defaults fills zero fields with built-in defaults.
func (c *Config) Defaults() {
	if c.OutputFormat == "" {
		c.OutputFormat = outputFormatDefault
	}
}

// ValidateConfig checks settings that would otherwise fail late.
func ValidateConfig(cfg Config) error {
	if !cfg.Interactive && strings.TrimSpace(cfg.InputPath) == "" {
		return ErrNoInput
	}
	if _, err := source.ParseFormat(cfg.InputFormat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	of, err := report.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if of == report.FormatPDF && strings.TrimSpace(cfg.OutputPath) == "" {
		return fmt.Errorf("%w: pdf output needs an output path", ErrInvalidConfig)
	}
	if cfg.WriteManifest && strings.TrimSpace(cfg.OutputPath) == "" {
		return fmt.Errorf("%w: manifest needs an output path", ErrInvalidConfig)
	}
	if cfg.CacheMaxAge < 0 {
		return fmt.Errorf("%w: negative cache max age", ErrInvalidConfig)
	}
	return nil
}
