package progressstore

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
	return &Store{c: db.Collection("progress")}
}

// Upsert writes the progress record for (classID, studentID). One record per
// student per class, backed by the unique (class_id, student_id) index.
func (s *Store) Upsert(ctx context.Context, classID, studentID string, score float64, remarks, updatedBy string) (models.Progress, error) {
	var out models.Progress
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"class_id": classID, "student_id": studentID},
		bson.M{
			"$set": bson.M{
				"score":      score,
				"remarks":    remarks,
				"updated_by": updatedBy,
				"updated_at": time.Now().UTC(),
			},
			"$setOnInsert": bson.M{
				"progress_id": ids.Progress(),
				"class_id":    classID,
				"student_id":  studentID,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return models.Progress{}, err
	}
	return out, nil
}

// ListByClass returns every progress record for a class.
func (s *Store) ListByClass(ctx context.Context, classID string) ([]models.Progress, error) {
	return s.list(ctx, bson.M{"class_id": classID})
}

// ListByClassAndStudent returns one student's progress records for a class.
// Students reading their own standing go through this filter.
func (s *Store) ListByClassAndStudent(ctx context.Context, classID, studentID string) ([]models.Progress, error) {
	return s.list(ctx, bson.M{"class_id": classID, "student_id": studentID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Progress, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Progress
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
