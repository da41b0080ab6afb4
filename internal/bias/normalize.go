package bias

import "strings"

// genderTable is the single shared classification table. Keys are trimmed
// and lowercased before lookup, so classification is identical for the same
// input regardless of row order or surrounding whitespace.
var genderTable = map[string]Category{
	"male":   Male,
	"m":      Male,
	"1":      Male,
	"female": Female,
	"f":      Female,
	"0":      Female,
}

// Normalize maps one raw cell value to its canonical category. It is a pure
// total function over strings: anything outside the table (including the
// empty string) is Unknown, and it never fails.
func Normalize(raw string) Category {
	if cat, ok := genderTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return cat
	}
	return Unknown
}
