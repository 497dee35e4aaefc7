package matcher

import "fmt"

// MatcherError is the error type for the pattern matcher.
type MatcherError struct {
	Kind    string
	Message string
}

func (e MatcherError) Error() string {
	return fmt.Sprintf("matcher error (%v): %v", e.Kind, e.Message)
}

func indexCorruption(msg string) error {
	return MatcherError{Kind: "IndexCorruption", Message: msg}
}
