// Package ids generates the prefixed opaque identifiers used as document
// keys ("user_1f0c9a2b3d4e", "class_…"). The suffix is 12 hex chars of a
// random UUID, matching what the frontend stores and displays.
package ids

import (
	"strings"

	"github.com/google/uuid"
)

func gen(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + hex[:12]
}

func User() string         { return gen("user") }
func Class() string        { return gen("class") }
func Enrollment() string   { return gen("enroll") }
func Video() string        { return gen("video") }
func Announcement() string { return gen("annc") }
func Assignment() string   { return gen("assign") }
func Note() string         { return gen("note") }
func Attendance() string   { return gen("attend") }
func Progress() string     { return gen("progress") }
func Transaction() string  { return gen("txn") }
func Invoice() string      { return gen("invoice") }
func Schedule() string     { return gen("sched") }

// MeetCode returns the 10-char code used to mint meet links.
func MeetCode() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return hex[:10]
}
