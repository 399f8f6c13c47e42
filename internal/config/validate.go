package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.CacheFile == "" {
		return errors.New("paths.cache_file must be set")
	}
	if c.Paths.ReportFile == "" {
		return errors.New("paths.report_file must be set")
	}
	return nil
}

func (c *Config) validateNaming() error {
	if strings.ContainsAny(c.Naming.Format, `/\`) {
		return fmt.Errorf("naming.format %q must not contain path separators", c.Naming.Format)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

// ValidateStream checks the remote API settings. It is separate from
// Validate because only commands that talk to the API need a base URL and
// token; cache inspection works without them.
func (c *Config) ValidateStream() error {
	if c.Stream.APIBaseURL == "" {
		return errors.New("stream.api_base_url is required")
	}
	if c.Stream.AccessToken == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/streamfetch/config.toml"
		}
		return fmt.Errorf("stream.access_token is required. Set STREAMFETCH_ACCESS_TOKEN env var or edit %s (create with 'streamfetch config init')", defaultPath)
	}
	return nil
}
