// Package props implements the property map and structural comparator of
// spec.md §3 ("Property map") and §4.9 ("Property comparator").
package props

// Kind tags which variant of the Value sum a property holds.
type Kind int

const (
	NullKind Kind = iota
	IntKind
	FloatKind
	BoolKind
	StringKind
	ListKind
	MapKind
	HostKind
)

// Value is a property value: null, an integer, a float, a boolean, a string,
// a list of values, a nested map, or an opaque host object compared by
// identity. The teacher's graph.Value (internal/graph/value.go) has the
// same tagged-struct shape for the scalar cases; List/Map/Host/Null extend
// it per spec.md §3. The zero Value is Null, not Int(0): a property literal
// that fails to compile to any recognized kind must never silently read back
// as zero.
type Value struct {
	Kind Kind
	I    int64
	F    float64
	B    bool
	S    string
	List []Value
	Map  map[string]Value
	Host any
}

// Null is the distinct null/none property value. It compares equal only to
// another Null, never to Int(0) or any other kind.
var Null = Value{Kind: NullKind}

func Int(i int64) Value      { return Value{Kind: IntKind, I: i} }
func Float(f float64) Value  { return Value{Kind: FloatKind, F: f} }
func Bool(b bool) Value      { return Value{Kind: BoolKind, B: b} }
func String(s string) Value  { return Value{Kind: StringKind, S: s} }
func List(vs []Value) Value  { return Value{Kind: ListKind, List: vs} }
func Map(m map[string]Value) Value {
	return Value{Kind: MapKind, Map: m}
}
func Host(h any) Value { return Value{Kind: HostKind, Host: h} }
