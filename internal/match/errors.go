package match

import "fmt"

// MatchError is the error type for the match environment.
type MatchError struct {
	Kind    string
	Message string
}

func (e MatchError) Error() string {
	return fmt.Sprintf("match error (%v): %v", e.Kind, e.Message)
}

func variableNotFound(name string) error {
	return MatchError{Kind: "VariableNotFound", Message: fmt.Sprintf("capture %q is not bound", name)}
}

func contextConflict(name string, original, nw BindingKind) error {
	return MatchError{
		Kind:    "ContextConflict",
		Message: fmt.Sprintf("capture %q is bound as %v, cannot rebind as %v", name, original, nw),
	}
}

func variableAlreadyExists(name string) error {
	return MatchError{Kind: "VariableAlreadyExists", Message: fmt.Sprintf("capture %q is already bound", name)}
}
