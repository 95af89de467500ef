// Package cli provides the command-line interface for Genie Spaces.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/geniespaces/internal/cli/commands"
	"github.com/leapstack-labs/geniespaces/internal/cli/config"
	"github.com/leapstack-labs/geniespaces/internal/cli/output"
	"github.com/leapstack-labs/geniespaces/pkg/genie"
)

var cfgFile string

// configKey is used to store config in context.
type configKey struct{}

// rendererKey is used to store renderer in context.
type rendererKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "genie",
		Short: "Manage Databricks Genie Spaces",
		Long: `genie is a toolkit for managing Databricks Genie Space configurations.

It exports spaces to version-controllable JSON documents, creates and
updates spaces from those documents, clones spaces across warehouses,
and validates configuration files locally before anything touches the
workspace.

Credentials come from --host/--token flags, a config file, or the
DATABRICKS_HOST and DATABRICKS_TOKEN environment variables.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			loadDotenv()

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			// Store config, renderer, and logger in context
			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)

			mode := output.Mode(cfg.OutputFormat)
			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
			ctx = context.WithValue(ctx, rendererKey{}, renderer)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			// Print config file used (if verbose)
			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`genie v{{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./genie.yaml)")
	rootCmd.PersistentFlags().String("host", "", "Databricks workspace URL (e.g., https://my-workspace.cloud.databricks.com)")
	rootCmd.PersistentFlags().String("token", "", "Databricks personal access token")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "HTTP timeout for API calls")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.ValidModes(), cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(version))
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewImportCommand())
	rootCmd.AddCommand(commands.NewUpdateCommand())
	rootCmd.AddCommand(commands.NewCloneCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewInfoCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// loadDotenv loads a .env file from the working directory or its parent
// into the process environment. Missing files are not an error.
func loadDotenv() {
	for _, path := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd := NewRootCmd(version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		return err
	}
	return nil
}

// errorHint maps well-known API error types to a recovery suggestion
// printed under the error message.
func errorHint(err error) string {
	var cfgErr *genie.ConfigurationError
	var authErr *genie.AuthenticationError
	var notFoundErr *genie.NotFoundError
	switch {
	case errors.As(err, &cfgErr):
		return "Set DATABRICKS_HOST and DATABRICKS_TOKEN environment variables, or use --host and --token flags."
	case errors.As(err, &authErr):
		return "Check your token and ensure you have 'Can Run' or higher permissions on the space."
	case errors.As(err, &notFoundErr):
		return "Verify the space ID exists and you have access to it."
	}
	return ""
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	return &config.Config{
		Timeout:      config.DefaultTimeout,
		OutputFormat: config.DefaultOutput,
	}
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	// Return default renderer if none in context
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for genie.

To load completions:

Bash:
  $ source <(genie completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ genie completion bash > /etc/bash_completion.d/genie
  # macOS:
  $ genie completion bash > $(brew --prefix)/etc/bash_completion.d/genie

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ genie completion zsh > "${fpath[1]}/_genie"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ genie completion fish | source

  # To load completions for each session, execute once:
  $ genie completion fish > ~/.config/fish/completions/genie.fish

PowerShell:
  PS> genie completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> genie completion powershell > genie.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
