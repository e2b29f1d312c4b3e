// internal/domain/models/enrollment.go
package models

import "time"

// Enrollment is the authoritative join between students and classes.
// Exactly one document per (user_id, class_id), enforced by a unique index.
type Enrollment struct {
	EnrollmentID string    `bson:"enrollment_id" json:"enrollment_id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	ClassID      string    `bson:"class_id" json:"class_id"`
	EnrolledAt   time.Time `bson:"enrolled_at" json:"enrolled_at"`
}
