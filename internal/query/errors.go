package query

import "fmt"

// QueryError is the executor's error type, in the same {Kind, Message} shape
// every package in this module uses.
type QueryError struct {
	Kind    string
	Message string
}

func (e QueryError) Error() string {
	return fmt.Sprintf("query error (%v): %v", e.Kind, e.Message)
}

func invalidQuery(msg string) error {
	return QueryError{Kind: "InvalidQuery", Message: msg}
}

func variableNotFound(name string) error {
	return QueryError{Kind: "VariableNotFound", Message: fmt.Sprintf("variable %q is not bound in this row", name)}
}
