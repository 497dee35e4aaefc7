package matcher

import "github.com/ritamzico/implica/internal/props"

// matchesProps implements §4.6.6: every required key must be present in the
// stored property map and structurally equal per the comparator in
// internal/props. A missing key is a mismatch, never an error.
func matchesProps(required map[string]props.Value, stored *props.PropertyMap) bool {
	if len(required) == 0 {
		return true
	}
	if stored == nil {
		return false
	}
	for key, want := range required {
		got, ok := stored.Get(key)
		if !ok || !props.Equal(want, got) {
			return false
		}
	}
	return true
}
