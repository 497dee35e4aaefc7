package schema

import "fmt"

// SchemaError is the error type for the schema compiler.
type SchemaError struct {
	Kind    string
	Message string
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("schema error (%v): %v", e.Kind, e.Message)
}

func schemaValidation(input, reason string) error {
	return SchemaError{Kind: "SchemaValidation", Message: fmt.Sprintf("%q: %s", input, reason)}
}

func invalidPattern(input, reason string) error {
	return SchemaError{Kind: "InvalidPattern", Message: fmt.Sprintf("%q: %s", input, reason)}
}
