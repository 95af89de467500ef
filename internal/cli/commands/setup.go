package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/geniespaces/internal/cli/config"
	"github.com/leapstack-labs/geniespaces/internal/cli/output"
	"github.com/leapstack-labs/geniespaces/pkg/genie"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Client   *genie.Client
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with an API client and
// renderer. Returns the context and a cleanup function that must be
// called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc := NewCommandContextWithoutClient(cmd)

	if err := cc.Cfg.ValidateConnection(); err != nil {
		return nil, nil, err
	}

	client, err := genie.New(
		genie.WithHost(cc.Cfg.Host),
		genie.WithToken(cc.Cfg.Token),
		genie.WithTimeout(cc.Cfg.Timeout),
		genie.WithLogger(cc.Logger),
	)
	if err != nil {
		return nil, nil, err
	}
	cc.Client = client

	cleanup := func() {
		client.Close()
	}

	return cc, cleanup, nil
}

// NewCommandContextWithoutClient creates a CommandContext for commands
// that work locally and never call the API.
func NewCommandContextWithoutClient(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back
// to environment variables (as when a command runs outside the root).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	timeout := config.DefaultTimeout
	if v := os.Getenv("GENIE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}

	return &config.Config{
		Host:         os.Getenv(genie.EnvHost),
		Token:        os.Getenv(genie.EnvToken),
		Timeout:      timeout,
		OutputFormat: getEnvOrDefault("GENIE_OUTPUT", config.DefaultOutput),
		Verbose:      os.Getenv("GENIE_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
