package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/geniespaces/internal/cli/output"
	"github.com/leapstack-labs/geniespaces/pkg/genie"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand() *cobra.Command {
	var (
		file        string
		title       string
		description string
		warehouseID string
	)

	cmd := &cobra.Command{
		Use:   "update SPACE_ID",
		Short: "Update an existing Genie Space",
		Long: `Update the configuration of an existing Genie Space.

You can replace the full configuration from a file, change individual
metadata fields, or both in one call. Only the fields you specify are
sent; everything else is left untouched.`,
		Example: `  # Replace the configuration from a file
  genie update 01ef1a2b3c4d5e6f --file updated-config.json

  # Change just the title
  genie update 01ef1a2b3c4d5e6f --title "New Title"

  # Move to a different warehouse
  genie update 01ef1a2b3c4d5e6f -w new-warehouse-id`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, args[0], file, genie.UpdateRequest{
				Title:       title,
				Description: description,
				WarehouseID: warehouseID,
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the JSON configuration file")
	cmd.Flags().StringVar(&title, "title", "", "New display title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&warehouseID, "warehouse", "w", "", "New SQL warehouse ID")

	return cmd
}

func runUpdate(cmd *cobra.Command, spaceID, file string, req genie.UpdateRequest) error {
	if file == "" && req.Title == "" && req.Description == "" && req.WarehouseID == "" {
		return errors.New("no changes specified: use --file, --title, --description, or --warehouse")
	}

	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("file not found: %s", file)
		}
	}

	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var resp *genie.SpaceResponse
	if file != "" {
		resp, err = cc.Client.UpdateSpaceFromFile(cmd.Context(), spaceID, file, req)
	} else {
		resp, err = cc.Client.UpdateSpace(cmd.Context(), spaceID, req)
	}
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(resp)
	}

	r.Panel("Update Complete", []string{
		"Title: " + resp.Title,
		"Space ID: " + resp.SpaceID,
	})
	return nil
}
