// internal/domain/models/attendance.go
package models

import "time"

// AttendanceEntry marks one student's presence for a session.
type AttendanceEntry struct {
	StudentID string `bson:"student_id" json:"student_id"`
	Present   bool   `bson:"present" json:"present"`
}

// Attendance is the sheet for one class session. Exactly one document per
// (class_id, session_date); submitting again overwrites the sheet.
type Attendance struct {
	AttendanceID string            `bson:"attendance_id" json:"attendance_id"`
	ClassID      string            `bson:"class_id" json:"class_id"`
	SessionDate  string            `bson:"session_date" json:"session_date"` // YYYY-MM-DD
	Records      []AttendanceEntry `bson:"records" json:"records"`
	RecordedBy   string            `bson:"recorded_by" json:"recorded_by"`
	UpdatedAt    time.Time         `bson:"updated_at" json:"updated_at"`
}

// Progress tracks one student's standing in one class. Exactly one document
// per (class_id, student_id); writes are upserts.
type Progress struct {
	ProgressID string    `bson:"progress_id" json:"progress_id"`
	ClassID    string    `bson:"class_id" json:"class_id"`
	StudentID  string    `bson:"student_id" json:"student_id"`
	Score      float64   `bson:"score" json:"score"`
	Remarks    string    `bson:"remarks,omitempty" json:"remarks,omitempty"`
	UpdatedBy  string    `bson:"updated_by" json:"updated_by"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
