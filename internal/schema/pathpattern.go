package schema

import (
	"fmt"
	"strings"

	"github.com/ritamzico/implica/internal/props"
	"github.com/ritamzico/implica/internal/typing"
)

// Direction is the compiled direction of an edge token in a path pattern.
type Direction int

const (
	Forward Direction = iota
	Backward
	Any
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "->"
	case Backward:
		return "<-"
	default:
		return "-"
	}
}

// ElementSchema is the compiled schema shared by node and edge tokens: an
// optional capture variable, an optional type/term schema, and an optional
// property filter.
type ElementSchema struct {
	Variable string
	Type     *TypeSchema
	Term     *TermSchema
	Props    map[string]props.Value
}

// NodeSchema is a compiled node token "(var?:type?:term?{props}?)".
type NodeSchema struct {
	ElementSchema
}

// EdgeSchema is a compiled edge token "-[var?:type?:term?{props}?]-" with a
// direction carried by its surrounding arrow brackets.
type EdgeSchema struct {
	ElementSchema
	Direction Direction
}

// PathPattern is a compiled sequence of node tokens joined by edge tokens:
// len(Nodes) == len(Edges)+1.
type PathPattern struct {
	Nodes []*NodeSchema
	Edges []*EdgeSchema
}

// CompilePathPattern parses a path-pattern string into a PathPattern,
// enforcing spec.md §4.3's structural rules (at least one node, node/edge
// count parity, at most one arrowhead per edge).
func CompilePathPattern(pattern string) (*PathPattern, error) {
	if err := validateParenBalance(pattern); err != nil {
		return nil, err
	}
	s := strings.TrimSpace(pattern)
	pp := &PathPattern{}

	pos := 0
	for pos < len(s) {
		for pos < len(s) && s[pos] == ' ' {
			pos++
		}
		if pos >= len(s) {
			break
		}
		if s[pos] != '(' {
			return nil, invalidPattern(pattern, fmt.Sprintf("expected a node token at offset %d", pos))
		}
		content, next, err := extractBalanced(s, pos, '(', ')')
		if err != nil {
			return nil, err
		}
		node, err := compileElementContent(content)
		if err != nil {
			return nil, err
		}
		pp.Nodes = append(pp.Nodes, &NodeSchema{ElementSchema: *node})
		pos = next

		for pos < len(s) && s[pos] == ' ' {
			pos++
		}
		if pos >= len(s) {
			break
		}
		edge, next, err := compileEdgeToken(s, pos)
		if err != nil {
			return nil, err
		}
		pp.Edges = append(pp.Edges, edge)
		pos = next
	}

	if len(pp.Nodes) == 0 {
		return nil, invalidPattern(pattern, "path pattern must contain at least one node")
	}
	if len(pp.Nodes) != len(pp.Edges)+1 {
		return nil, invalidPattern(pattern, "node count must equal edge count plus one")
	}
	return pp, nil
}

// compileEdgeToken recognizes "-[...]->",  "<-[...]-", or "-[...]-" starting
// at pos, and returns the compiled edge plus the offset just past it.
func compileEdgeToken(s string, pos int) (*EdgeSchema, int, error) {
	direction := Forward
	cursor := pos
	if strings.HasPrefix(s[cursor:], "<-[") {
		direction = Backward
		cursor += 2 // past "<-"
	} else if strings.HasPrefix(s[cursor:], "-[") {
		cursor += 1 // past "-"
	} else {
		return nil, 0, invalidPattern(s, fmt.Sprintf("expected an edge token at offset %d", pos))
	}

	content, next, err := extractBalanced(s, cursor, '[', ']')
	if err != nil {
		return nil, 0, err
	}

	switch {
	case strings.HasPrefix(s[next:], "->"):
		if direction == Backward {
			return nil, 0, invalidPattern(s, "edge token has both a leading \"<-\" and a trailing \"->\"")
		}
		next += 2
	case strings.HasPrefix(s[next:], "-"):
		if direction == Forward {
			// No arrowhead on either side: "-[...]-" matches either orientation.
			direction = Any
		}
		next += 1
	default:
		return nil, 0, invalidPattern(s, fmt.Sprintf("edge token at offset %d is missing its closing dash", pos))
	}

	elem, err := compileElementContent(content)
	if err != nil {
		return nil, 0, err
	}
	return &EdgeSchema{ElementSchema: *elem, Direction: direction}, next, nil
}

// extractBalanced returns the content strictly between the open/close
// delimiter at s[pos] and its matching close, plus the offset just past the
// close.
func extractBalanced(s string, pos int, open, close byte) (string, int, error) {
	if pos >= len(s) || s[pos] != open {
		return "", 0, invalidPattern(s, fmt.Sprintf("expected %q at offset %d", open, pos))
	}
	depth := 0
	for i := pos; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[pos+1 : i], i + 1, nil
			}
		}
	}
	return "", 0, invalidPattern(s, "unbalanced delimiter starting at offset "+fmt.Sprint(pos))
}

// compileElementContent parses "var? (':' type_schema (':' term_schema)?)?
// ('{' props '}')?" shared by node and edge tokens.
func compileElementContent(content string) (*ElementSchema, error) {
	head := content
	var propsText string
	hasProps := false
	if idx, ok := findTopLevelByte(content, '{'); ok {
		if content[len(content)-1] != '}' {
			return nil, invalidPattern(content, "property block must end the element token")
		}
		head = content[:idx]
		propsText = content[idx+1 : len(content)-1]
		hasProps = true
	}

	var variable, typeText, termText string
	if idx, ok := findTopLevelColon(head); ok {
		variable = strings.TrimSpace(head[:idx])
		rest := head[idx+1:]
		if idx2, ok := findTopLevelColon(rest); ok {
			typeText = strings.TrimSpace(rest[:idx2])
			termText = strings.TrimSpace(rest[idx2+1:])
		} else {
			typeText = strings.TrimSpace(rest)
		}
	} else {
		variable = strings.TrimSpace(head)
	}

	if variable != "" {
		if err := typing.ValidateIdentifier(variable); err != nil {
			return nil, err
		}
	}

	elem := &ElementSchema{Variable: variable}
	if typeText != "" {
		ts, err := CompileTypeSchema(typeText)
		if err != nil {
			return nil, err
		}
		elem.Type = ts
	}
	if termText != "" {
		tm, err := CompileTermSchema(termText)
		if err != nil {
			return nil, err
		}
		elem.Term = tm
	}
	if hasProps {
		p, err := CompilePropertyLiteral(propsText)
		if err != nil {
			return nil, err
		}
		elem.Props = p
	}
	return elem, nil
}

// findTopLevelByte returns the offset of the first occurrence of target at
// paren-depth 0.
func findTopLevelByte(input string, target byte) (int, bool) {
	depth := 0
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '(':
			depth++
		case ')':
			depth--
		default:
			if input[i] == target && depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
