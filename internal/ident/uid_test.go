package ident

import "testing"

func TestHexRoundTrip(t *testing.T) {
	u := HashVariable("A")
	s := u.Hex()

	got, err := FromHex(s)
	if err != nil {
		t.Fatalf("FromHex failed: %v", err)
	}
	if got != u {
		t.Errorf("FromHex(Hex(u)) = %v, want %v", got, u)
	}
}

func TestFromHexInvalid(t *testing.T) {
	if _, err := FromHex("not-hex"); err == nil {
		t.Error("expected error for non-hex string")
	}
	if _, err := FromHex("abcd"); err == nil {
		t.Error("expected error for short hex string")
	}
}

func TestHashVariableDeterministic(t *testing.T) {
	a := HashVariable("A")
	b := HashVariable("A")
	if a != b {
		t.Error("HashVariable should be deterministic")
	}
	if HashVariable("B") == a {
		t.Error("different names should hash differently")
	}
}

func TestDomainSeparation(t *testing.T) {
	// A variable named to look like another domain's encoding must not
	// collide with that domain's actual hash.
	v := HashVariable("arr:x")
	arrow := HashArrow(HashVariable("x"), HashVariable("y"))
	if v == arrow {
		t.Error("variable and arrow hashes collided across domains")
	}
}

func TestHashArrowOrderMatters(t *testing.T) {
	a := HashVariable("A")
	b := HashVariable("B")
	if HashArrow(a, b) == HashArrow(b, a) {
		t.Error("HashArrow should not be symmetric")
	}
}

func TestHashBasicTermDistinctByType(t *testing.T) {
	typA := HashVariable("A")
	typB := HashVariable("B")
	if HashBasicTerm("x", typA) == HashBasicTerm("x", typB) {
		t.Error("same term name under different types should differ")
	}
}

func TestHashApplicationDistinct(t *testing.T) {
	f := HashBasicTerm("f", HashVariable("A"))
	x := HashBasicTerm("x", HashVariable("A"))
	y := HashBasicTerm("y", HashVariable("A"))
	resultType := HashVariable("B")

	fx := HashApplication(f, x, resultType)
	fy := HashApplication(f, y, resultType)
	if fx == fy {
		t.Error("applications with different arguments should hash differently")
	}
}

func TestZeroNeverProduced(t *testing.T) {
	if HashVariable("") == Zero {
		t.Error("HashVariable should never produce the zero Uid")
	}
}
