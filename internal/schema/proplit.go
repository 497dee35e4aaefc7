package schema

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ritamzico/implica/internal/props"
)

// propLexer tokenizes the property-literal grammar of spec.md §4.3: quoted
// strings, decimal integers, floats (including scientific notation),
// true/false, and null/None. Grounded on the teacher's
// internal/dsl/grammar.go dslLexer construction (lexer.MustSimple with the
// same rule-ordering discipline: Float before Int so "3.14" isn't swallowed
// as Int "3").
var propLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(true|false|null|None)\b`},
	{Name: "Float", Pattern: `-?\d+\.\d+([eE][+-]?\d+)?|-?\d+[eE][+-]?\d+`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"|'([^'\\]|\\.)*'`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[:,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type propsAST struct {
	Props []*propAST `parser:"( @@ ( \",\" @@ )* )?"`
}

type propAST struct {
	Key   string        `parser:"@Ident \":\""`
	Value *propValueAST `parser:"@@"`
}

type propValueAST struct {
	Str   *string  `parser:"  @String"`
	Float *float64 `parser:"| @Float"`
	Int   *int64   `parser:"| @Int"`
	True  bool     `parser:"| @\"true\""`
	False bool     `parser:"| @\"false\""`
	Null  bool     `parser:"| @(\"null\" | \"None\")"`
}

var propParser = participle.MustBuild[propsAST](
	participle.Lexer(propLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace"),
)

// CompilePropertyLiteral parses the contents of a path-pattern "{...}"
// property block (braces already stripped by the caller) into a property
// map.
func CompilePropertyLiteral(text string) (map[string]props.Value, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	ast, err := propParser.ParseString("", text)
	if err != nil {
		return nil, invalidPattern(text, "malformed property literal: "+err.Error())
	}
	out := make(map[string]props.Value, len(ast.Props))
	for _, p := range ast.Props {
		v, err := compilePropValue(p.Value)
		if err != nil {
			return nil, err
		}
		out[p.Key] = v
	}
	return out, nil
}

func compilePropValue(v *propValueAST) (props.Value, error) {
	switch {
	case v.Str != nil:
		unescaped, err := unescapeStringLiteral(*v.Str)
		if err != nil {
			return props.Value{}, err
		}
		return props.String(unescaped), nil
	case v.Float != nil:
		return props.Float(*v.Float), nil
	case v.Int != nil:
		return props.Int(*v.Int), nil
	case v.True:
		return props.Bool(true), nil
	case v.False:
		return props.Bool(false), nil
	case v.Null:
		return props.Null, nil
	default:
		return props.Value{}, invalidPattern("", "empty property value")
	}
}

// unescapeStringLiteral strips the surrounding quote character and resolves
// the escapes spec.md §4.3 requires: \n \t \r \\ \" \' \0.
func unescapeStringLiteral(lit string) (string, error) {
	if len(lit) < 2 {
		return "", invalidPattern(lit, "malformed string literal")
	}
	body := lit[1 : len(lit)-1]

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", invalidPattern(lit, "dangling escape at end of string literal")
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '0':
			b.WriteByte(0)
		default:
			return "", invalidPattern(lit, "unrecognized escape sequence \\"+string(body[i]))
		}
	}
	return b.String(), nil
}
