package ident

import "fmt"

// IdentError is the error type for the identifier service.
type IdentError struct {
	Kind    string
	Message string
}

func (e IdentError) Error() string {
	return fmt.Sprintf("identifier error (%v): %v", e.Kind, e.Message)
}

func hexConversionError(msg string) error {
	return IdentError{Kind: "HexConversionError", Message: msg}
}
