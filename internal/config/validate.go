package config

import (
	"compress/flate"
	"errors"
	"fmt"
	"strings"
)

func (c *Config) normalize() {
	c.Metadata.Language = strings.TrimSpace(c.Metadata.Language)
	c.Metadata.TitleSuffix = strings.TrimSpace(c.Metadata.TitleSuffix)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Extract.MaxEntryMiB == 0 {
		c.Extract.MaxEntryMiB = defaultMaxEntryMiB
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Extract.MaxEntryMiB < 0 {
		errs = append(errs, fmt.Errorf("extract.max_entry_mib must be positive, got %d", c.Extract.MaxEntryMiB))
	}
	if c.Pack.CompressionLevel < flate.HuffmanOnly || c.Pack.CompressionLevel > flate.BestCompression {
		errs = append(errs, fmt.Errorf("pack.compression_level must be between %d and %d, got %d",
			flate.HuffmanOnly, flate.BestCompression, c.Pack.CompressionLevel))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be one of text, json, logfmt", c.Logging.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// MaxEntryBytes returns the extraction entry limit in bytes.
func (c *Config) MaxEntryBytes() int64 {
	return int64(c.Extract.MaxEntryMiB) * 1024 * 1024
}
