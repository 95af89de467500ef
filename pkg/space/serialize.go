package space

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Parse decodes JSON text into an Export tree.
//
// Unknown keys are ignored. A missing version decodes as 1, records with
// an absent or empty id get one generated, and a missing benchmark
// answer format defaults to SQL. Malformed JSON, wrong-shaped values,
// and missing required fields surface as *SchemaError.
func Parse(data []byte) (*Export, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &SchemaError{Message: "document is empty"}
	}

	var e Export
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, &SchemaError{Message: "invalid document: " + err.Error(), err: err}
	}
	e.normalize()
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Load reads and parses a space document from disk.
func Load(path string) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load space document: %w", err)
	}
	return Parse(data)
}

// Marshal encodes the tree to JSON. Absent optional fields are omitted
// entirely, never emitted as null. Key order follows struct field order,
// so equal documents marshal to identical bytes. pretty selects 2-space
// indentation over compact single-line output.
func (e *Export) Marshal(pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(e, "", "  ")
	}
	return json.Marshal(e)
}

// Save writes the document to path.
func (e *Export) Save(path string, pretty bool) error {
	data, err := e.Marshal(pretty)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save space document: %w", err)
	}
	return nil
}

// ToMap returns the document as nested maps, slices, and scalars with
// the same omission rules as Marshal.
func (e *Export) ToMap() (map[string]any, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalJSON applies the version default: a document without a
// version key decodes as version 1.
func (e *Export) UnmarshalJSON(data []byte) error {
	type alias Export
	aux := struct {
		Version *int `json:"version"`
		*alias
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Version == nil {
		e.Version = 1
	} else {
		e.Version = *aux.Version
	}
	return nil
}

// MarshalJSON keeps sample_questions present on the wire even when the
// slice is nil.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	if a.SampleQuestions == nil {
		a.SampleQuestions = []SampleQuestion{}
	}
	return json.Marshal(a)
}

// MarshalJSON keeps questions present on the wire even when the slice is
// nil.
func (b Benchmarks) MarshalJSON() ([]byte, error) {
	type alias Benchmarks
	a := alias(b)
	if a.Questions == nil {
		a.Questions = []BenchmarkQuestion{}
	}
	return json.Marshal(a)
}

// normalize fills generated and defaulted fields after a decode:
// identifiers, the benchmark answer format, and the two never-absent
// sequences.
func (e *Export) normalize() {
	if c := e.Config; c != nil {
		if c.SampleQuestions == nil {
			c.SampleQuestions = []SampleQuestion{}
		}
		for i := range c.SampleQuestions {
			if c.SampleQuestions[i].ID == "" {
				c.SampleQuestions[i].ID = NewID()
			}
		}
	}
	if ins := e.Instructions; ins != nil {
		for i := range ins.TextInstructions {
			if ins.TextInstructions[i].ID == "" {
				ins.TextInstructions[i].ID = NewID()
			}
		}
		for i := range ins.ExampleQuestionSQLs {
			if ins.ExampleQuestionSQLs[i].ID == "" {
				ins.ExampleQuestionSQLs[i].ID = NewID()
			}
		}
		for i := range ins.SQLFunctions {
			if ins.SQLFunctions[i].ID == "" {
				ins.SQLFunctions[i].ID = NewID()
			}
		}
		for i := range ins.JoinSpecs {
			if ins.JoinSpecs[i].ID == "" {
				ins.JoinSpecs[i].ID = NewID()
			}
		}
	}
	if b := e.Benchmarks; b != nil {
		if b.Questions == nil {
			b.Questions = []BenchmarkQuestion{}
		}
		for i := range b.Questions {
			q := &b.Questions[i]
			if q.ID == "" {
				q.ID = NewID()
			}
			for j := range q.Answer {
				if q.Answer[j].Format == "" {
					q.Answer[j].Format = FormatSQL
				}
			}
		}
	}
}

// validate walks the tree and reports the first missing required field
// or invalid value.
func (e *Export) validate() error {
	if c := e.Config; c != nil {
		for i, sq := range c.SampleQuestions {
			if sq.Question == nil {
				return missingField(fmt.Sprintf("config.sample_questions[%d].question", i))
			}
		}
	}
	if ds := e.DataSources; ds != nil {
		for i, t := range ds.Tables {
			if t.Identifier == "" {
				return missingField(fmt.Sprintf("data_sources.tables[%d].identifier", i))
			}
			for j, cc := range t.ColumnConfigs {
				if cc.ColumnName == "" {
					return missingField(fmt.Sprintf("data_sources.tables[%d].column_configs[%d].column_name", i, j))
				}
			}
		}
		for i, mv := range ds.MetricViews {
			if mv.Identifier == "" {
				return missingField(fmt.Sprintf("data_sources.metric_views[%d].identifier", i))
			}
		}
	}
	if ins := e.Instructions; ins != nil {
		for i, eq := range ins.ExampleQuestionSQLs {
			path := fmt.Sprintf("instructions.example_question_sqls[%d]", i)
			if eq.Question == nil {
				return missingField(path + ".question")
			}
			if eq.SQL == nil {
				return missingField(path + ".sql")
			}
			for j, p := range eq.Parameters {
				if p.Name == "" {
					return missingField(fmt.Sprintf("%s.parameters[%d].name", path, j))
				}
				if p.TypeHint == "" {
					return missingField(fmt.Sprintf("%s.parameters[%d].type_hint", path, j))
				}
			}
		}
		for i, fn := range ins.SQLFunctions {
			if fn.Identifier == "" {
				return missingField(fmt.Sprintf("instructions.sql_functions[%d].identifier", i))
			}
		}
		for i, js := range ins.JoinSpecs {
			path := fmt.Sprintf("instructions.join_specs[%d]", i)
			if js.Left.Identifier == "" || js.Left.Alias == "" {
				return missingField(path + ".left")
			}
			if js.Right.Identifier == "" || js.Right.Alias == "" {
				return missingField(path + ".right")
			}
			if js.SQL == nil {
				return missingField(path + ".sql")
			}
		}
	}
	if b := e.Benchmarks; b != nil {
		for i, q := range b.Questions {
			path := fmt.Sprintf("benchmarks.questions[%d]", i)
			if q.Question == nil {
				return missingField(path + ".question")
			}
			if q.Answer == nil {
				return missingField(path + ".answer")
			}
			for j, a := range q.Answer {
				answerPath := fmt.Sprintf("%s.answer[%d]", path, j)
				if a.Format != FormatSQL {
					return &SchemaError{
						Path:    answerPath + ".format",
						Message: fmt.Sprintf("unsupported format %q", a.Format),
					}
				}
				if a.Content == nil {
					return missingField(answerPath + ".content")
				}
			}
		}
	}
	return nil
}
