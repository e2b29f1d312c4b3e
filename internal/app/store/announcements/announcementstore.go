package announcementstore

import (
	"context"
	"time"

	"github.com/dalemusser/classhub/internal/app/system/ids"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("announcements")}
}

// Create inserts an announcement. Content is expected to be sanitized by the
// caller.
func (s *Store) Create(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	if a.AnnouncementID == "" {
		a.AnnouncementID = ids.Announcement()
	}
	a.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// ListByClass returns a class's announcements, newest first.
func (s *Store) ListByClass(ctx context.Context, classID string) ([]models.Announcement, error) {
	cur, err := s.c.Find(ctx, bson.M{"class_id": classID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Announcement
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one announcement scoped to its class. Returns
// mongo.ErrNoDocuments when nothing matches.
func (s *Store) Delete(ctx context.Context, classID, announcementID string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"class_id": classID, "announcement_id": announcementID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
