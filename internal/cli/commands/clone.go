package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/geniespaces/internal/cli/output"
	"github.com/leapstack-labs/geniespaces/pkg/genie"
)

// NewCloneCommand creates the clone command.
func NewCloneCommand() *cobra.Command {
	var (
		warehouseID string
		parentPath  string
		title       string
	)

	cmd := &cobra.Command{
		Use:   "clone SOURCE_SPACE_ID",
		Short: "Clone a Genie Space to a new location",
		Long: `Create a copy of an existing Genie Space in a new location, optionally
on a different warehouse.

Without --title the copy is named after the source with a " (Copy)"
suffix.`,
		Example: `  # Clone with a new title
  genie clone 01ef1a2b3c4d5e6f -w def456 -p "/Workspace/Users/me/Spaces" --title "Dev Copy"

  # Clone into a shared folder
  genie clone 01ef1a2b3c4d5e6f -w prod-warehouse -p "/Workspace/Shared/Genie Spaces"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClone(cmd, genie.CloneRequest{
				SourceID:    args[0],
				WarehouseID: warehouseID,
				ParentPath:  parentPath,
				Title:       title,
			})
		},
	}

	cmd.Flags().StringVarP(&warehouseID, "warehouse", "w", "", "SQL warehouse ID for the new space")
	cmd.Flags().StringVarP(&parentPath, "path", "p", "", "Workspace path for the new space")
	cmd.Flags().StringVar(&title, "title", "", "Title for the cloned space")
	_ = cmd.MarkFlagRequired("warehouse")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func runClone(cmd *cobra.Command, req genie.CloneRequest) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := cc.Client.CloneSpace(cmd.Context(), req)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(cloneResult{
			SpaceID:  resp.SpaceID,
			Title:    resp.Title,
			SourceID: req.SourceID,
		})
	}

	r.Panel("Clone Complete", []string{
		"New Title: " + resp.Title,
		"New Space ID: " + resp.SpaceID,
		"Source ID: " + req.SourceID,
	})
	return nil
}

type cloneResult struct {
	SpaceID  string `json:"space_id"`
	Title    string `json:"title"`
	SourceID string `json:"source_id"`
}
