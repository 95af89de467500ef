package config

import (
	"fmt"

	"github.com/leapstack-labs/geniespaces/pkg/genie"
)

// Validate checks settings every command depends on. Connection settings
// are checked separately so local-only commands work without them.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("invalid output format %q (valid: auto, text, markdown, json)", c.OutputFormat)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// ValidateConnection checks that workspace connection settings are
// present. Commands that call the API run this before building a client.
// Failures are *genie.ConfigurationError so the top-level error handler
// can attach its credentials hint.
func (c *Config) ValidateConnection() error {
	if c.Host == "" {
		return &genie.ConfigurationError{
			Message: "workspace host is required: set --host, " + genie.EnvHost + ", or host in the config file",
		}
	}
	if c.Token == "" {
		return &genie.ConfigurationError{
			Message: "access token is required: set --token, " + genie.EnvToken + ", or token in the config file",
		}
	}
	return nil
}
