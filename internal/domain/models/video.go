// internal/domain/models/video.go
package models

import "time"

// Video is a recording or lesson video attached to a class.
type Video struct {
	VideoID     string    `bson:"video_id" json:"video_id"`
	ClassID     string    `bson:"class_id" json:"class_id"`
	Title       string    `bson:"title" json:"title"`
	VideoURL    string    `bson:"video_url,omitempty" json:"video_url,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	UploadedBy  string    `bson:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
