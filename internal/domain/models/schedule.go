// internal/domain/models/schedule.go
package models

import "time"

// Schedule is a teacher's planned session, independent of any class record.
type Schedule struct {
	ScheduleID  string    `bson:"schedule_id" json:"schedule_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	StartTime   time.Time `bson:"start_time" json:"start_time"`
	EndTime     time.Time `bson:"end_time" json:"end_time"`
	MeetingLink string    `bson:"meeting_link,omitempty" json:"meeting_link,omitempty"`
	TeacherID   string    `bson:"teacher_id" json:"teacher_id"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
