package props

import "fmt"

// PropsError is the error type for the property map.
type PropsError struct {
	Kind    string
	Message string
}

func (e PropsError) Error() string {
	return fmt.Sprintf("property error (%v): %v", e.Kind, e.Message)
}

func keyAlreadyExists(key string) error {
	return PropsError{
		Kind:    "VariableAlreadyExists",
		Message: fmt.Sprintf("property key %q already exists; pass overwrite=true to replace it", key),
	}
}
