package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

var (
	outputFormats = []string{"auto", "text", "table", "json", "yaml"}
	logFormats    = []string{"console", "json"}
	logLevels     = []string{"debug", "info", "warn", "error"}
)

func (c *Config) normalize() {
	c.Scan.Pattern = strings.TrimSpace(c.Scan.Pattern)
	if c.Scan.Pattern == "" {
		c.Scan.Pattern = defaultPattern
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = defaultWorkers
	}
	c.Output.Format = normalizeWord(c.Output.Format, defaultOutputFormat)
	c.Logging.Level = normalizeWord(c.Logging.Level, defaultLogLevel)
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	c.Logging.Format = normalizeWord(c.Logging.Format, defaultLogFormat)
}

func normalizeWord(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := filepath.Match(c.Scan.Pattern, ""); err != nil {
		return fmt.Errorf("%w: scan.pattern %q: %v", ErrInvalidConfig, c.Scan.Pattern, err)
	}
	if c.Scan.Workers < 1 || c.Scan.Workers > maxWorkers {
		return fmt.Errorf("%w: scan.workers must be between 1 and %d, got %d", ErrInvalidConfig, maxWorkers, c.Scan.Workers)
	}
	if !slices.Contains(outputFormats, c.Output.Format) {
		return fmt.Errorf("%w: output.format %q (expected %s)", ErrInvalidConfig, c.Output.Format, strings.Join(outputFormats, "|"))
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("%w: logging.level %q (expected %s)", ErrInvalidConfig, c.Logging.Level, strings.Join(logLevels, "|"))
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("%w: logging.format %q (expected %s)", ErrInvalidConfig, c.Logging.Format, strings.Join(logFormats, "|"))
	}
	return nil
}
