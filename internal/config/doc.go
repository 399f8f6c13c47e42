// Package config loads and validates the streamfetch TOML configuration.
// Values resolve in order: defaults, the config file, then environment
// overrides for secrets. All paths come back expanded and absolute.
package config
