package notestore

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
	return &Store{c: db.Collection("notes")}
}

// Create inserts a class note. Content is expected to be sanitized by the
// caller.
func (s *Store) Create(ctx context.Context, n models.Note) (models.Note, error) {
	if n.NoteID == "" {
		n.NoteID = ids.Note()
	}
	n.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

// ListByClass returns a class's notes, newest first.
func (s *Store) ListByClass(ctx context.Context, classID string) ([]models.Note, error) {
	cur, err := s.c.Find(ctx, bson.M{"class_id": classID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Note
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one note scoped to its class. Returns mongo.ErrNoDocuments
// when nothing matches.
func (s *Store) Delete(ctx context.Context, classID, noteID string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"class_id": classID, "note_id": noteID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
