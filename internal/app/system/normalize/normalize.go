// Package normalize canonicalises user input before it is validated or
// compared.
package normalize

import "strings"

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name and collapses inner runs of whitespace.
// Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Option trims and lowercases an enumerated value such as an order status,
// dish category or dietary class.
func Option(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a free-text query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Direction maps a sort direction parameter to "asc" or "desc".
// Anything unrecognised is ascending.
func Direction(s string) string {
	if Option(s) == "desc" {
		return "desc"
	}
	return "asc"
}
