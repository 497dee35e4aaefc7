package schema

import (
	"fmt"
	"strings"

	"github.com/ritamzico/implica/internal/typing"
)

// TermSchemaKind tags which production of the term-pattern grammar a
// TermSchema node holds.
type TermSchemaKind int

const (
	WildcardTermSchema TermSchemaKind = iota
	VariableTermSchema
	ApplicationTermSchema
	ConstantTermSchema
)

// TermSchema is a compiled term pattern (spec.md §4.3, TermSchema grammar).
type TermSchema struct {
	Kind        TermSchemaKind
	Name        string        // VariableTermSchema: the bound name; ConstantTermSchema: the constant's name
	Function    *TermSchema   // set when Kind == ApplicationTermSchema
	Argument    *TermSchema   // set when Kind == ApplicationTermSchema
	ConstArgs   []*TypeSchema // set when Kind == ConstantTermSchema
}

// CompileTermSchema parses a term-pattern string into a TermSchema tree.
// Unlike type schemas, term schemas have no bare-parenthesis grouping
// production: a parenthesized sub-term is only ever legal as the argument
// list of a "@Name(...)" constant reference.
func CompileTermSchema(pattern string) (*TermSchema, error) {
	trimmed := strings.TrimSpace(pattern)
	if err := validateParenBalance(trimmed); err != nil {
		return nil, err
	}
	return compileTermSchema(trimmed)
}

func compileTermSchema(input string) (*TermSchema, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, invalidPattern(input, "empty pattern")
	}
	if input == "*" {
		return &TermSchema{Kind: WildcardTermSchema}, nil
	}

	if pos, ok := findLastTopLevelSpace(input); ok {
		left := strings.TrimSpace(input[:pos])
		right := strings.TrimSpace(input[pos+1:])
		if left == "" || right == "" {
			return nil, invalidPattern(input, "application pattern has an empty left or right side")
		}
		function, err := compileTermSchema(left)
		if err != nil {
			return nil, err
		}
		argument, err := compileTermSchema(right)
		if err != nil {
			return nil, err
		}
		return &TermSchema{Kind: ApplicationTermSchema, Function: function, Argument: argument}, nil
	}

	if strings.HasPrefix(input, "@") {
		return compileConstantTermSchema(input)
	}

	if err := typing.ValidateIdentifier(input); err != nil {
		return nil, err
	}
	return &TermSchema{Kind: VariableTermSchema, Name: input}, nil
}

func compileConstantTermSchema(input string) (*TermSchema, error) {
	openParen := strings.IndexByte(input, '(')
	if openParen < 0 {
		return nil, invalidPattern(input, "constant pattern must have parentheses with type arguments")
	}
	name := strings.TrimSpace(input[1:openParen])
	if name == "" {
		return nil, invalidPattern(input, "constant name must not be empty")
	}
	if !strings.HasSuffix(input, ")") {
		return nil, invalidPattern(input, "constant pattern has unexpected content after its closing parenthesis")
	}
	argsStr := input[openParen+1 : len(input)-1]

	var args []*TypeSchema
	for _, piece := range splitTopLevelCommas(argsStr) {
		arg, err := CompileTypeSchema(piece)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return &TermSchema{Kind: ConstantTermSchema, Name: name, ConstArgs: args}, nil
}

// String renders a round-trippable textual form.
func (s *TermSchema) String() string {
	switch s.Kind {
	case WildcardTermSchema:
		return "*"
	case VariableTermSchema:
		return s.Name
	case ApplicationTermSchema:
		return fmt.Sprintf("%s %s", s.Function.String(), s.Argument.String())
	case ConstantTermSchema:
		args := make([]string, len(s.ConstArgs))
		for i, a := range s.ConstArgs {
			args[i] = a.String()
		}
		return fmt.Sprintf("@%s(%s)", s.Name, strings.Join(args, ", "))
	default:
		return "<invalid term schema>"
	}
}
