package space

// Export is the root of a space configuration document.
//
// Version identifies the schema revision and defaults to 1 when absent
// from the source document. Every section is optional: a nil pointer
// means the section was absent and stays absent when serialized.
type Export struct {
	Version      int           `json:"version"`
	Config       *Config       `json:"config,omitzero"`
	DataSources  *DataSources  `json:"data_sources,omitzero"`
	Instructions *Instructions `json:"instructions,omitzero"`
	Benchmarks   *Benchmarks   `json:"benchmarks,omitzero"`
}

// Config holds the conversational surface of a space.
type Config struct {
	// SampleQuestions is never absent on the wire: an empty list
	// serializes as []. See MarshalJSON in serialize.go.
	SampleQuestions []SampleQuestion `json:"sample_questions"`
}

// SampleQuestion is a suggested question surfaced to space users.
type SampleQuestion struct {
	ID       string   `json:"id"`
	Question []string `json:"question"`
}

// DataSources lists the catalog objects a space can query.
type DataSources struct {
	Tables      []Table      `json:"tables,omitzero"`
	MetricViews []MetricView `json:"metric_views,omitzero"`
}

// Table registers a table with the space. Identifier is the dotted
// three-part name (catalog.schema.table).
type Table struct {
	Identifier    string         `json:"identifier"`
	Description   []string       `json:"description,omitzero"`
	ColumnConfigs []ColumnConfig `json:"column_configs,omitzero"`
}

// ColumnConfig tunes how a single column is exposed to the assistant.
// The boolean flags collapse to absent on the wire when false.
type ColumnConfig struct {
	ColumnName           string   `json:"column_name"`
	Description          []string `json:"description,omitzero"`
	Synonyms             []string `json:"synonyms,omitzero"`
	Exclude              bool     `json:"exclude,omitempty"`
	GetExampleValues     bool     `json:"get_example_values,omitempty"`
	BuildValueDictionary bool     `json:"build_value_dictionary,omitempty"`
}

// MetricView registers a metric view with the space.
type MetricView struct {
	Identifier  string   `json:"identifier"`
	Description []string `json:"description,omitzero"`
}

// Instructions carries the guidance the assistant consults when
// generating SQL.
type Instructions struct {
	TextInstructions    []TextInstruction    `json:"text_instructions,omitzero"`
	ExampleQuestionSQLs []ExampleQuestionSQL `json:"example_question_sqls,omitzero"`
	SQLFunctions        []SQLFunction        `json:"sql_functions,omitzero"`
	JoinSpecs           []JoinSpec           `json:"join_specs,omitzero"`
}

// TextInstruction is free-form guidance text.
type TextInstruction struct {
	ID      string   `json:"id"`
	Content []string `json:"content,omitzero"`
}

// Parameter declares a named parameter used by an example query.
type Parameter struct {
	Name        string   `json:"name"`
	TypeHint    string   `json:"type_hint"`
	Description []string `json:"description,omitzero"`
}

// ExampleQuestionSQL pairs a natural-language question with the SQL that
// answers it. Question holds the text as a single entry; SQL is split
// into lines.
type ExampleQuestionSQL struct {
	ID            string      `json:"id"`
	Question      []string    `json:"question"`
	SQL           []string    `json:"sql"`
	Parameters    []Parameter `json:"parameters,omitzero"`
	UsageGuidance []string    `json:"usage_guidance,omitzero"`
}

// SQLFunction registers a catalog function the assistant may call.
type SQLFunction struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
}

// JoinSource is one side of a join specification.
type JoinSource struct {
	Identifier string `json:"identifier"`
	Alias      string `json:"alias"`
}

// JoinSpec tells the assistant how two sources join. SQL holds the join
// condition.
type JoinSpec struct {
	ID      string     `json:"id"`
	Left    JoinSource `json:"left"`
	Right   JoinSource `json:"right"`
	SQL     []string   `json:"sql"`
	Comment []string   `json:"comment,omitzero"`
}

// Benchmarks holds evaluation questions with known-good answers.
type Benchmarks struct {
	// Questions is never absent on the wire: an empty list serializes
	// as []. See MarshalJSON in serialize.go.
	Questions []BenchmarkQuestion `json:"questions"`
}

// BenchmarkQuestion is an evaluation case. Answer is a sequence for
// forward compatibility; current callers populate exactly one entry.
type BenchmarkQuestion struct {
	ID       string            `json:"id"`
	Question []string          `json:"question"`
	Answer   []BenchmarkAnswer `json:"answer"`
}

// FormatSQL is the only benchmark answer format currently defined.
const FormatSQL = "SQL"

// BenchmarkAnswer is a known-good answer in a given format.
type BenchmarkAnswer struct {
	Format  string   `json:"format"`
	Content []string `json:"content"`
}
