package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/geniespaces/internal/cli/output"
	"github.com/leapstack-labs/geniespaces/pkg/genie"
)

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	var (
		warehouseID string
		parentPath  string
		title       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create a Genie Space from a JSON file",
		Long: `Create a new Genie Space from an exported configuration file.

The file is validated locally before anything is sent to the workspace.`,
		Example: `  # Import with required options
  genie import my-space.json -w abc123 -p "/Workspace/Users/me/Genie Spaces"

  # Import with a custom title
  genie import my-space.json -w abc123 -p "/Workspace/Shared/Spaces" --title "Production Space"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], genie.ImportRequest{
				WarehouseID: warehouseID,
				ParentPath:  parentPath,
				Title:       title,
				Description: description,
			})
		},
	}

	cmd.Flags().StringVarP(&warehouseID, "warehouse", "w", "", "SQL warehouse ID for the new space")
	cmd.Flags().StringVarP(&parentPath, "path", "p", "", "Workspace path for the new space")
	cmd.Flags().StringVar(&title, "title", "", "Display title for the space")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description for the space")
	_ = cmd.MarkFlagRequired("warehouse")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func runImport(cmd *cobra.Command, file string, req genie.ImportRequest) error {
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("file not found: %s", file)
	}

	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := cc.Client.ImportSpaceFromFile(cmd.Context(), file, req)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(resp)
	}

	r.Panel("Import Complete", []string{
		"Title: " + resp.Title,
		"Space ID: " + resp.SpaceID,
		"Warehouse: " + req.WarehouseID,
		"Path: " + req.ParentPath,
	})
	return nil
}
