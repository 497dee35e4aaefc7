package schema

import "testing"

func TestCompileTypeSchemaWildcard(t *testing.T) {
	ts, err := CompileTypeSchema("*")
	if err != nil {
		t.Fatalf("CompileTypeSchema failed: %v", err)
	}
	if ts.Kind != WildcardSchema {
		t.Errorf("Kind = %v, want WildcardSchema", ts.Kind)
	}
}

func TestCompileTypeSchemaVariable(t *testing.T) {
	ts, err := CompileTypeSchema("A")
	if err != nil {
		t.Fatalf("CompileTypeSchema failed: %v", err)
	}
	if ts.Kind != VariableSchema || ts.Name != "A" {
		t.Errorf("got Kind=%v Name=%q, want VariableSchema %q", ts.Kind, ts.Name, "A")
	}
}

func TestCompileTypeSchemaArrow(t *testing.T) {
	ts, err := CompileTypeSchema("A -> B")
	if err != nil {
		t.Fatalf("CompileTypeSchema failed: %v", err)
	}
	if ts.Kind != ArrowSchema {
		t.Fatalf("Kind = %v, want ArrowSchema", ts.Kind)
	}
	if ts.Left.Name != "A" || ts.Right.Name != "B" {
		t.Errorf("got left=%q right=%q, want A, B", ts.Left.Name, ts.Right.Name)
	}
}

func TestCompileTypeSchemaCapture(t *testing.T) {
	ts, err := CompileTypeSchema("(T:*)")
	if err != nil {
		t.Fatalf("CompileTypeSchema failed: %v", err)
	}
	if ts.Kind != CaptureSchema || ts.Name != "T" {
		t.Fatalf("got Kind=%v Name=%q, want CaptureSchema %q", ts.Kind, ts.Name, "T")
	}
	if ts.Inner.Kind != WildcardSchema {
		t.Error("capture's inner schema should be the wildcard")
	}
}

func TestCompileTypeSchemaBareGroup(t *testing.T) {
	ts, err := CompileTypeSchema("(A)")
	if err != nil {
		t.Fatalf("CompileTypeSchema failed: %v", err)
	}
	if ts.Kind != VariableSchema || ts.Name != "A" {
		t.Error("a bare parenthesized group should strip to its inner schema")
	}
}

func TestCompileTypeSchemaArrowOverGroups(t *testing.T) {
	ts, err := CompileTypeSchema("(in:*) -> (out:*)")
	if err != nil {
		t.Fatalf("CompileTypeSchema failed: %v", err)
	}
	if ts.Kind != ArrowSchema {
		t.Fatalf("Kind = %v, want ArrowSchema", ts.Kind)
	}
	if ts.Left.Kind != CaptureSchema || ts.Left.Name != "in" {
		t.Error("left side should be a capture schema named in")
	}
	if ts.Right.Kind != CaptureSchema || ts.Right.Name != "out" {
		t.Error("right side should be a capture schema named out")
	}
}

func TestCompileTypeSchemaStringRoundTrip(t *testing.T) {
	for _, src := range []string{"*", "A", "A -> B", "(T:*)"} {
		ts, err := CompileTypeSchema(src)
		if err != nil {
			t.Fatalf("CompileTypeSchema(%q) failed: %v", src, err)
		}
		reparsed, err := CompileTypeSchema(ts.String())
		if err != nil {
			t.Fatalf("CompileTypeSchema(%q) (reparse) failed: %v", ts.String(), err)
		}
		if reparsed.String() != ts.String() {
			t.Errorf("round trip mismatch: %q -> %q -> %q", src, ts.String(), reparsed.String())
		}
	}
}

func TestCompileTypeSchemaInvalidIdentifier(t *testing.T) {
	if _, err := CompileTypeSchema("1abc"); err == nil {
		t.Error("a digit-leading identifier should fail to compile")
	}
}

func TestCompileTypeSchemaUnbalancedParens(t *testing.T) {
	if _, err := CompileTypeSchema("(A"); err == nil {
		t.Error("unbalanced parens should fail to compile")
	}
}
