// Package normalize holds the input normalization rules applied before
// anything is written to the store.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims an invoice status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
