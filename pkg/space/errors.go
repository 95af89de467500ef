package space

import "fmt"

// SchemaError reports a document that cannot be decoded into a valid
// Export tree. Path names the offending field in dotted form, for
// example data_sources.tables[0].identifier.
type SchemaError struct {
	Path    string
	Message string
	err     error
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return "space: " + e.Message
	}
	return fmt.Sprintf("space: %s: %s", e.Path, e.Message)
}

func (e *SchemaError) Unwrap() error { return e.err }

func missingField(path string) *SchemaError {
	return &SchemaError{Path: path, Message: "missing required field"}
}
