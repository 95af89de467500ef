package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/geniespaces/internal/cli/output"
	"github.com/leapstack-labs/geniespaces/pkg/genie"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var (
		file    string
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "export SPACE_ID",
		Short: "Export a Genie Space to JSON",
		Long: `Export the complete configuration of a Genie Space, including tables,
instructions, sample questions, and benchmarks.

By default the document is written to stdout. Use --file to write it to
disk; parent directories are created as needed.`,
		Example: `  # Export to stdout
  genie export 01ef1a2b3c4d5e6f

  # Export to a file
  genie export 01ef1a2b3c4d5e6f -f my-space.json

  # Compact JSON for scripting
  genie export 01ef1a2b3c4d5e6f --compact > space.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], file, compact)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Write the document to this path instead of stdout")
	cmd.Flags().BoolVar(&compact, "compact", false, "Emit compact JSON instead of pretty-printed")

	return cmd
}

func runExport(cmd *cobra.Command, spaceID, file string, compact bool) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := cc.Client.ExportSpace(cmd.Context(), spaceID)
	if err != nil {
		return err
	}
	exp, err := resp.Export()
	if err != nil {
		return err
	}
	if exp == nil {
		return genie.ErrEmptySpace
	}

	data, err := exp.Marshal(!compact)
	if err != nil {
		return err
	}

	r := cc.Renderer

	// Without a file the document itself is the output, in every mode.
	if file == "" {
		r.Println(string(data))
		return nil
	}

	if dir := filepath.Dir(file); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(exportResult{SpaceID: resp.SpaceID, Title: resp.Title, File: file})
	case output.ModeMarkdown:
		r.Success(fmt.Sprintf("Exported space %q to %s", resp.Title, file))
		r.Println(output.FormatKeyValue("Space ID", resp.SpaceID))
		return nil
	default:
		r.Success(fmt.Sprintf("Exported space %q to %s", resp.Title, file))
		r.Muted("  Space ID: " + resp.SpaceID)
		return nil
	}
}

type exportResult struct {
	SpaceID string `json:"space_id"`
	Title   string `json:"title"`
	File    string `json:"file"`
}
