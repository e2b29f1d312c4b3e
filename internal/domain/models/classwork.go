// internal/domain/models/classwork.go
package models

import "time"

// Announcement is a message posted to a class by its teacher (or an admin).
// Content is HTML-sanitized before storage.
type Announcement struct {
	AnnouncementID string    `bson:"announcement_id" json:"announcement_id"`
	ClassID        string    `bson:"class_id" json:"class_id"`
	Title          string    `bson:"title" json:"title"`
	Content        string    `bson:"content,omitempty" json:"content,omitempty"`
	CreatedBy      string    `bson:"created_by" json:"created_by"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Assignment is homework attached to a class. DueDate is an opaque string
// chosen by the teacher (the original frontend sends date-only values).
type Assignment struct {
	AssignmentID string    `bson:"assignment_id" json:"assignment_id"`
	ClassID      string    `bson:"class_id" json:"class_id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	DueDate      string    `bson:"due_date,omitempty" json:"due_date,omitempty"`
	CreatedBy    string    `bson:"created_by" json:"created_by"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Note is free-form class material written by the teacher.
type Note struct {
	NoteID    string    `bson:"note_id" json:"note_id"`
	ClassID   string    `bson:"class_id" json:"class_id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content,omitempty" json:"content,omitempty"`
	AuthorID  string    `bson:"author_id" json:"author_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
