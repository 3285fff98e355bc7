// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address for storage and lookups.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Grade canonicalizes a grade label ("  grade 8 " -> "Grade 8" is NOT
// attempted; we only trim). Grade labels are compared exactly.
func Grade(s string) string {
	return strings.TrimSpace(s)
}
