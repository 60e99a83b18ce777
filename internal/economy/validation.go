package economy

import "regexp"

// unitNumberPattern is the canonical stored format: exactly four
// digits, zero-padded. Display layers prepend '#'.
var unitNumberPattern = regexp.MustCompile(`^[0-9]{4}$`)

// ValidUnitNumber reports whether s is a canonical unit number.
func ValidUnitNumber(s string) bool {
	return unitNumberPattern.MatchString(s)
}
