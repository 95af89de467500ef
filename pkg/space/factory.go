package space

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh identifier: 32 lowercase hex characters, no
// dashes.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// splitLines converts raw text to the document's line-sequence form.
// Single-line text becomes a one-element sequence.
func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// NewSampleQuestion builds a sample question from raw text, splitting it
// into lines. An empty id generates one.
func NewSampleQuestion(question, id string) SampleQuestion {
	if id == "" {
		id = NewID()
	}
	return SampleQuestion{ID: id, Question: splitLines(question)}
}

// NewTable builds a table entry. A non-empty description is stored as a
// single line.
func NewTable(identifier, description string, columns []ColumnConfig) Table {
	t := Table{Identifier: identifier, ColumnConfigs: columns}
	if description != "" {
		t.Description = []string{description}
	}
	return t
}

// NewColumnConfig builds a column entry. A non-empty description is
// stored as a single line; false flags stay absent on the wire.
func NewColumnConfig(columnName, description string, synonyms []string, exclude, getExampleValues, buildValueDictionary bool) ColumnConfig {
	cc := ColumnConfig{
		ColumnName:           columnName,
		Synonyms:             synonyms,
		Exclude:              exclude,
		GetExampleValues:     getExampleValues,
		BuildValueDictionary: buildValueDictionary,
	}
	if description != "" {
		cc.Description = []string{description}
	}
	return cc
}

// NewMetricView builds a metric view entry.
func NewMetricView(identifier, description string) MetricView {
	mv := MetricView{Identifier: identifier}
	if description != "" {
		mv.Description = []string{description}
	}
	return mv
}

// NewTextInstruction builds a text instruction from raw text, splitting
// it into lines. Empty text leaves the content absent.
func NewTextInstruction(text, id string) TextInstruction {
	if id == "" {
		id = NewID()
	}
	ti := TextInstruction{ID: id}
	if text != "" {
		ti.Content = splitLines(text)
	}
	return ti
}

// NewParameter builds a query parameter declaration.
func NewParameter(name, typeHint, description string) Parameter {
	p := Parameter{Name: name, TypeHint: typeHint}
	if description != "" {
		p.Description = []string{description}
	}
	return p
}

// NewExampleQuestionSQL builds an example query. The question is stored
// whole as a single entry; the sql is split into lines.
func NewExampleQuestionSQL(question, sql string, params []Parameter, usageGuidance, id string) ExampleQuestionSQL {
	if id == "" {
		id = NewID()
	}
	eq := ExampleQuestionSQL{
		ID:         id,
		Question:   []string{question},
		SQL:        splitLines(sql),
		Parameters: params,
	}
	if usageGuidance != "" {
		eq.UsageGuidance = []string{usageGuidance}
	}
	return eq
}

// NewSQLFunction registers a catalog function by its dotted identifier.
func NewSQLFunction(identifier, id string) SQLFunction {
	if id == "" {
		id = NewID()
	}
	return SQLFunction{ID: id, Identifier: identifier}
}

// NewJoinSpec builds a join specification. The join condition is stored
// as a single sql entry; a non-empty comment is stored as a single line.
func NewJoinSpec(leftIdentifier, leftAlias, rightIdentifier, rightAlias, joinCondition, comment, id string) JoinSpec {
	if id == "" {
		id = NewID()
	}
	js := JoinSpec{
		ID:    id,
		Left:  JoinSource{Identifier: leftIdentifier, Alias: leftAlias},
		Right: JoinSource{Identifier: rightIdentifier, Alias: rightAlias},
		SQL:   []string{joinCondition},
	}
	if comment != "" {
		js.Comment = []string{comment}
	}
	return js
}

// NewBenchmarkAnswer builds a SQL-format answer from raw SQL text,
// splitting it into lines.
func NewBenchmarkAnswer(sql string) BenchmarkAnswer {
	return BenchmarkAnswer{Format: FormatSQL, Content: splitLines(sql)}
}

// NewBenchmarkQuestion builds an evaluation case with a single
// SQL-format answer.
func NewBenchmarkQuestion(question, answerSQL, id string) BenchmarkQuestion {
	if id == "" {
		id = NewID()
	}
	return BenchmarkQuestion{
		ID:       id,
		Question: splitLines(question),
		Answer:   []BenchmarkAnswer{NewBenchmarkAnswer(answerSQL)},
	}
}
