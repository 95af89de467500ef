package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/geniespaces/internal/cli/output"
	"github.com/leapstack-labs/geniespaces/pkg/space"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a Genie Space configuration file",
		Long: `Parse a configuration file and validate it against the space schema.

Validation runs entirely locally, which makes it useful for catching
errors before an import, in editors, and in CI.`,
		Example: `  genie validate my-space.json

  # Machine-readable summary
  genie validate my-space.json --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, file string) error {
	cc := NewCommandContextWithoutClient(cmd)
	r := cc.Renderer

	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("file not found: %s", file)
	}

	exp, err := space.Load(file)
	if err != nil {
		return err
	}
	counts := countComponents(exp)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(validateResult{Valid: true, File: file, Counts: counts})
	}

	r.Success("Valid configuration file: " + file)
	r.Println("")
	r.Header(2, "Configuration Summary")

	t := r.NewTable()
	t.AppendHeader(table.Row{"Component", "Count"})
	t.AppendRow(table.Row{"Sample Questions", counts.SampleQuestions})
	t.AppendRow(table.Row{"Tables", counts.Tables})
	t.AppendRow(table.Row{"Metric Views", counts.MetricViews})
	t.AppendRow(table.Row{"Text Instructions", counts.TextInstructions})
	t.AppendRow(table.Row{"SQL Examples", counts.SQLExamples})
	t.AppendRow(table.Row{"SQL Functions", counts.SQLFunctions})
	t.AppendRow(table.Row{"Join Specs", counts.JoinSpecs})
	t.AppendRow(table.Row{"Benchmark Questions", counts.BenchmarkQuestions})

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	return nil
}

type validateResult struct {
	Valid  bool        `json:"valid"`
	File   string      `json:"file"`
	Counts spaceCounts `json:"counts"`
}

// spaceCounts summarizes how many of each component a document carries.
type spaceCounts struct {
	SampleQuestions    int `json:"sample_questions"`
	Tables             int `json:"tables"`
	MetricViews        int `json:"metric_views"`
	TextInstructions   int `json:"text_instructions"`
	SQLExamples        int `json:"sql_examples"`
	SQLFunctions       int `json:"sql_functions"`
	JoinSpecs          int `json:"join_specs"`
	BenchmarkQuestions int `json:"benchmark_questions"`
}

func countComponents(exp *space.Export) spaceCounts {
	var c spaceCounts
	if exp.Config != nil {
		c.SampleQuestions = len(exp.Config.SampleQuestions)
	}
	if ds := exp.DataSources; ds != nil {
		c.Tables = len(ds.Tables)
		c.MetricViews = len(ds.MetricViews)
	}
	if ins := exp.Instructions; ins != nil {
		c.TextInstructions = len(ins.TextInstructions)
		c.SQLExamples = len(ins.ExampleQuestionSQLs)
		c.SQLFunctions = len(ins.SQLFunctions)
		c.JoinSpecs = len(ins.JoinSpecs)
	}
	if exp.Benchmarks != nil {
		c.BenchmarkQuestions = len(exp.Benchmarks.Questions)
	}
	return c
}
