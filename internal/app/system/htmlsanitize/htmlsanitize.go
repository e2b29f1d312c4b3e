// Package htmlsanitize strips unsafe HTML from user-authored bodies
// (announcements, assignments, notes) before they are stored.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowTables()
	return p
}

// Sanitize returns s with scripts, event handlers, and javascript: URLs
// removed. Plain text passes through unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
