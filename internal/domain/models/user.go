// internal/domain/models/user.go
package models

import "time"

// User represents students, teachers, and admins.
//
// NOTE:
//   - Class membership is not embedded on User.
//     Use the enrollments collection to discover a student's classes.
//   - PasswordHash is never serialized to JSON.
type User struct {
	UserID  string `bson:"user_id" json:"user_id"`
	Email   string `bson:"email" json:"email"`
	Name    string `bson:"name" json:"name"`
	Picture string `bson:"picture,omitempty" json:"picture,omitempty"`
	Role    string `bson:"role" json:"role"` // student | teacher | admin

	PasswordHash string `bson:"password" json:"-"`

	// Teacher profile fields. MeetLink is the authoritative source for the
	// meet link shown on that teacher's classes.
	MeetLink      string `bson:"meet_link,omitempty" json:"meet_link,omitempty"`
	RecordingLink string `bson:"recording_link,omitempty" json:"recording_link,omitempty"`

	// Google OAuth linkage (teachers only).
	GoogleAccessToken  string `bson:"google_access_token,omitempty" json:"-"`
	GoogleRefreshToken string `bson:"google_refresh_token,omitempty" json:"-"`
	GoogleConnected    bool   `bson:"google_connected,omitempty" json:"google_connected,omitempty"`

	CreditBalance int64 `bson:"credit_balance" json:"credit_balance"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
