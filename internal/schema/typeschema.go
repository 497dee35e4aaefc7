package schema

import (
	"fmt"
	"strings"

	"github.com/ritamzico/implica/internal/typing"
)

// TypeSchemaKind tags which production of the type-pattern grammar a
// TypeSchema node holds.
type TypeSchemaKind int

const (
	WildcardSchema TypeSchemaKind = iota
	VariableSchema
	ArrowSchema
	CaptureSchema
)

// TypeSchema is a compiled type pattern (spec.md §4.3, TypeSchema grammar).
type TypeSchema struct {
	Kind  TypeSchemaKind
	Name  string // VariableSchema: the variable name; CaptureSchema: the capture name
	Left  *TypeSchema
	Right *TypeSchema // set when Kind == ArrowSchema
	Inner *TypeSchema // set when Kind == CaptureSchema
}

// CompileTypeSchema parses a type-pattern string into a TypeSchema tree.
func CompileTypeSchema(pattern string) (*TypeSchema, error) {
	trimmed := strings.TrimSpace(pattern)
	if err := validateParenBalance(trimmed); err != nil {
		return nil, err
	}
	return compileTypeSchema(trimmed)
}

func compileTypeSchema(input string) (*TypeSchema, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, schemaValidation(input, "empty pattern")
	}
	if input == "*" {
		return &TypeSchema{Kind: WildcardSchema}, nil
	}

	// Arrow detection happens before capture/group detection at depth 0, so
	// that e.g. "(in:*) -> (out:*)" splits on the arrow rather than being
	// mistaken for a single capture.
	if pos, ok := findTopLevelArrow(input); ok {
		left, err := compileTypeSchema(input[:pos])
		if err != nil {
			return nil, err
		}
		right, err := compileTypeSchema(input[pos+2:])
		if err != nil {
			return nil, err
		}
		return &TypeSchema{Kind: ArrowSchema, Left: left, Right: right}, nil
	}

	if strings.HasPrefix(input, "(") && strings.HasSuffix(input, ")") {
		inner := input[1 : len(input)-1]
		if pos, ok := findTopLevelColon(inner); ok {
			namePart := strings.TrimSpace(inner[:pos])
			patternPart := inner[pos+1:]
			innerSchema, err := compileTypeSchema(patternPart)
			if err != nil {
				return nil, err
			}
			if namePart == "" {
				return innerSchema, nil
			}
			if err := typing.ValidateIdentifier(namePart); err != nil {
				return nil, err
			}
			return &TypeSchema{Kind: CaptureSchema, Name: namePart, Inner: innerSchema}, nil
		}
		// No top-level colon: a bare parenthesized group used purely for
		// precedence. Strip one layer and reparse.
		return compileTypeSchema(inner)
	}

	if err := typing.ValidateIdentifier(input); err != nil {
		return nil, err
	}
	return &TypeSchema{Kind: VariableSchema, Name: input}, nil
}

// String renders a round-trippable textual form (R1: parse-print-parse
// yields a structurally equal tree).
func (s *TypeSchema) String() string {
	switch s.Kind {
	case WildcardSchema:
		return "*"
	case VariableSchema:
		return s.Name
	case ArrowSchema:
		left := s.Left.String()
		if s.Left.Kind == ArrowSchema {
			// Arrows associate to the right, so a left-nested arrow needs a group.
			left = "(" + left + ")"
		}
		return fmt.Sprintf("%s -> %s", left, s.Right.String())
	case CaptureSchema:
		return fmt.Sprintf("(%s:%s)", s.Name, s.Inner.String())
	default:
		return "<invalid type schema>"
	}
}
