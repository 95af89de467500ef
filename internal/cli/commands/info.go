package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/geniespaces/internal/cli/output"
	"github.com/leapstack-labs/geniespaces/pkg/genie"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info SPACE_ID",
		Short: "Show information about a Genie Space",
		Long: `Display a summary of a space configuration without exporting the full
JSON document: metadata, registered tables and metric views, and the
sample questions surfaced to users.`,
		Example: `  genie info 01ef1a2b3c4d5e6f

  genie info 01ef1a2b3c4d5e6f --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}

	return cmd
}

func runInfo(cmd *cobra.Command, spaceID string) error {
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

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infoResult{
			SpaceID:     resp.SpaceID,
			Title:       resp.Title,
			Description: resp.Description,
			WarehouseID: resp.WarehouseID,
			Counts:      countComponents(exp),
		})
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown

	r.Panel("Space Information", []string{
		"Title: " + resp.Title,
		"Space ID: " + resp.SpaceID,
		"Warehouse: " + orNA(resp.WarehouseID),
		"Description: " + orNA(resp.Description),
	})

	if ds := exp.DataSources; ds != nil && len(ds.Tables) > 0 {
		r.Println("")
		r.Header(2, "Tables")
		t := r.NewTable()
		t.AppendHeader(table.Row{"Identifier", "Columns Configured"})
		for _, tbl := range ds.Tables {
			t.AppendRow(table.Row{tbl.Identifier, len(tbl.ColumnConfigs)})
		}
		renderTable(t, markdown)
	}

	if ds := exp.DataSources; ds != nil && len(ds.MetricViews) > 0 {
		r.Println("")
		r.Header(2, "Metric Views")
		t := r.NewTable()
		t.AppendHeader(table.Row{"Identifier"})
		for _, mv := range ds.MetricViews {
			t.AppendRow(table.Row{mv.Identifier})
		}
		renderTable(t, markdown)
	}

	if cfg := exp.Config; cfg != nil && len(cfg.SampleQuestions) > 0 {
		r.Println("")
		r.Header(2, "Sample Questions")
		for i, sq := range cfg.SampleQuestions {
			if markdown {
				r.Printf("%d. %s\n", i+1, strings.Join(sq.Question, " "))
			} else {
				r.Printf("  %d. %s\n", i+1, strings.Join(sq.Question, " "))
			}
		}
	}

	return nil
}

func renderTable(t table.Writer, markdown bool) {
	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

type infoResult struct {
	SpaceID     string      `json:"space_id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	WarehouseID string      `json:"warehouse_id,omitempty"`
	Counts      spaceCounts `json:"counts"`
}
