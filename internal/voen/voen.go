// Package voen normalizes VÖEN values, the 10-digit tax identifiers used to
// match bank counterparties against invoiced customers.
package voen

import "regexp"

// Length is the number of digits in a valid VÖEN.
const Length = 10

var (
	voenPattern = regexp.MustCompile(`\d{10}`)
	exactVOEN   = regexp.MustCompile(`^\d{10}$`)
)

// Normalize extracts the first 10-digit run from a raw cell value.
// Source exports pad the identifier with labels, spaces and punctuation,
// so anything around the digits is ignored. Returns "" when no 10-digit
// run is present.
func Normalize(raw string) string {
	return voenPattern.FindString(raw)
}

// Valid reports whether s is a normalized VÖEN.
func Valid(s string) bool {
	return exactVOEN.MatchString(s)
}
