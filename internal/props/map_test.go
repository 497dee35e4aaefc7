package props

import "testing"

func TestSetAndGet(t *testing.T) {
	pm := NewPropertyMap(nil)
	if err := pm.Set("k", Int(1), false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok := pm.Get("k")
	if !ok {
		t.Fatal("Get should find the set key")
	}
	if v.I != 1 {
		t.Errorf("v.I = %d, want 1", v.I)
	}
}

func TestSetWithoutOverwriteFails(t *testing.T) {
	pm := NewPropertyMap(nil)
	pm.Set("k", Int(1), false)
	if err := pm.Set("k", Int(2), false); err == nil {
		t.Error("Set should fail on an existing key without overwrite")
	}
	v, _ := pm.Get("k")
	if v.I != 1 {
		t.Error("a failed Set must not change the existing value")
	}
}

func TestSetWithOverwrite(t *testing.T) {
	pm := NewPropertyMap(nil)
	pm.Set("k", Int(1), false)
	if err := pm.Set("k", Int(2), true); err != nil {
		t.Fatalf("Set with overwrite should succeed: %v", err)
	}
	v, _ := pm.Get("k")
	if v.I != 2 {
		t.Errorf("v.I = %d, want 2", v.I)
	}
}

func TestNewPropertyMapSeeded(t *testing.T) {
	seed := map[string]Value{"k": Int(1)}
	pm := NewPropertyMap(seed)
	seed["k"] = Int(99)

	v, _ := pm.Get("k")
	if v.I != 1 {
		t.Error("NewPropertyMap should defensively copy its initial map")
	}
}

func TestMergeAbortsOnConflict(t *testing.T) {
	pm := NewPropertyMap(nil)
	pm.Set("a", Int(1), false)

	err := pm.Merge(map[string]Value{"b": Int(2), "a": Int(3)}, false)
	if err == nil {
		t.Fatal("Merge should fail when any key conflicts")
	}
	// b may or may not have been applied depending on map iteration order;
	// what matters is that the conflicting key a was left untouched.
	v, _ := pm.Get("a")
	if v.I != 1 {
		t.Error("Merge must not overwrite a conflicting key when overwrite is false")
	}
}

func TestMergeOverwrite(t *testing.T) {
	pm := NewPropertyMap(nil)
	pm.Set("a", Int(1), false)
	if err := pm.Merge(map[string]Value{"a": Int(2), "b": Int(3)}, true); err != nil {
		t.Fatalf("Merge with overwrite should succeed: %v", err)
	}
	va, _ := pm.Get("a")
	vb, _ := pm.Get("b")
	if va.I != 2 || vb.I != 3 {
		t.Errorf("got a=%d b=%d, want a=2 b=3", va.I, vb.I)
	}
}

func TestSnapshotIsDefensiveCopy(t *testing.T) {
	pm := NewPropertyMap(nil)
	pm.Set("k", Int(1), false)

	snap := pm.Snapshot()
	snap["k"] = Int(99)

	v, _ := pm.Get("k")
	if v.I != 1 {
		t.Error("mutating a Snapshot must not affect the PropertyMap")
	}
}

func TestLen(t *testing.T) {
	pm := NewPropertyMap(nil)
	if pm.Len() != 0 {
		t.Errorf("Len() = %d, want 0", pm.Len())
	}
	pm.Set("a", Int(1), false)
	pm.Set("b", Int(2), false)
	if pm.Len() != 2 {
		t.Errorf("Len() = %d, want 2", pm.Len())
	}
}
