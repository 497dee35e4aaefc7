package createpath

import "fmt"

// CreatePathError is the error type for the create-path engine (§4.7).
type CreatePathError struct {
	Kind    string
	Message string
}

func (e CreatePathError) Error() string {
	return fmt.Sprintf("create-path error (%v): %v", e.Kind, e.Message)
}

func invalidType(msg string) error {
	return CreatePathError{Kind: "InvalidType", Message: msg}
}

func invalidTerm(msg string) error {
	return CreatePathError{Kind: "InvalidTerm", Message: msg}
}

func indexCorruption(msg string) error {
	return CreatePathError{Kind: "IndexCorruption", Message: msg}
}
