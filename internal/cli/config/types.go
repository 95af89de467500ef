// Package config provides configuration management for the genie CLI.
//
// Configuration is layered from four sources. Precedence, highest
// first: command-line flags, environment variables, a YAML config file,
// built-in defaults. Workspace credentials use the standard Databricks
// variable names; tool settings use the GENIE_ prefix.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Host         string        `koanf:"host"`
	Token        string        `koanf:"token"`
	Timeout      time.Duration `koanf:"timeout"`
	OutputFormat string        `koanf:"output"`
	Verbose      bool          `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second
	DefaultOutput  = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
