// internal/domain/models/class.go
package models

import "time"

// Class represents a scheduled class taught by a teacher.
//
// NOTE:
//   - Student lists are not embedded; all enrollment is stored in the
//     enrollments collection. EnrolledCount is the denormalized counter
//     maintained by a conditional $inc, so enrolled_count <= max_students
//     holds under concurrent enrollment.
//   - MeetLink stored here is only a snapshot; reads resolve the link from
//     the teacher's current profile.
type Class struct {
	ClassID     string `bson:"class_id" json:"class_id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	TeacherID   string `bson:"teacher_id" json:"teacher_id"`
	TeacherName string `bson:"teacher_name" json:"teacher_name"`

	StartTime string `bson:"start_time" json:"start_time"`
	EndTime   string `bson:"end_time" json:"end_time"`

	MaxStudents   int `bson:"max_students" json:"max_students"`
	EnrolledCount int `bson:"enrolled_count" json:"enrolled_count"`

	MeetLink      string `bson:"meet_link,omitempty" json:"meet_link,omitempty"`
	RecordingLink string `bson:"recording_link,omitempty" json:"recording_link,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
