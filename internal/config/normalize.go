package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStream()
	c.normalizeNaming()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = ExpandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.CacheFile, err = ExpandPath(c.Paths.CacheFile); err != nil {
		return fmt.Errorf("paths.cache_file: %w", err)
	}
	if c.Paths.ReportFile, err = ExpandPath(c.Paths.ReportFile); err != nil {
		return fmt.Errorf("paths.report_file: %w", err)
	}
	if c.Paths.LockFile, err = ExpandPath(c.Paths.LockFile); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeStream() {
	c.Stream.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.Stream.APIBaseURL), "/")
	if env, ok := os.LookupEnv("STREAMFETCH_ACCESS_TOKEN"); ok && strings.TrimSpace(env) != "" {
		c.Stream.AccessToken = strings.TrimSpace(env)
	} else {
		c.Stream.AccessToken = strings.TrimSpace(c.Stream.AccessToken)
	}
	if c.Stream.RequestTimeout <= 0 {
		c.Stream.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeNaming() {
	c.Naming.Template = strings.TrimSpace(c.Naming.Template)
	if c.Naming.Template == "" {
		c.Naming.Template = defaultTemplate
	}
	c.Naming.Format = strings.TrimPrefix(strings.TrimSpace(c.Naming.Format), ".")
	if c.Naming.Format == "" {
		c.Naming.Format = defaultFormat
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
