package videostore

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
	return &Store{c: db.Collection("videos")}
}

// Create inserts a video record. Only the URL is stored; video bytes live
// elsewhere.
func (s *Store) Create(ctx context.Context, v models.Video) (models.Video, error) {
	if v.VideoID == "" {
		v.VideoID = ids.Video()
	}
	v.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, v); err != nil {
		return models.Video{}, err
	}
	return v, nil
}

// List returns videos, newest first, optionally filtered by class.
func (s *Store) List(ctx context.Context, classID string) ([]models.Video, error) {
	filter := bson.M{}
	if classID != "" {
		filter["class_id"] = classID
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Video
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
