package typing

var reservedIdentifiers = map[string]struct{}{
	"True":  {},
	"False": {},
	"None":  {},
}

const maxIdentifierBytes = 255

// ValidateIdentifier exposes validateIdentifier to other packages (the
// schema compiler validates capture and variable-pattern names with the same
// rule set types and terms use).
func ValidateIdentifier(name string) error {
	return validateIdentifier(name)
}

// validateIdentifier enforces spec.md §4.2's naming rules for type-variable
// and basic-term names: non-empty, not digit-leading, alphanumeric/underscore
// only, under the byte cap, and not a reserved keyword.
func validateIdentifier(name string) error {
	if name == "" {
		return InvalidIdentifier{Name: name, Reason: "must not be empty"}
	}
	if len(name) > maxIdentifierBytes {
		return InvalidIdentifier{Name: name, Reason: "exceeds 255 bytes"}
	}
	if _, reserved := reservedIdentifiers[name]; reserved {
		return InvalidIdentifier{Name: name, Reason: "is a reserved keyword"}
	}

	first := rune(name[0])
	if first >= '0' && first <= '9' {
		return InvalidIdentifier{Name: name, Reason: "must not start with a digit"}
	}

	for _, r := range name {
		if !isIdentRune(r) {
			return InvalidIdentifier{Name: name, Reason: "must contain only letters, digits, and underscores, with no whitespace"}
		}
	}

	return nil
}

func isIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	default:
		return false
	}
}
