package schedulestore

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
	return &Store{c: db.Collection("schedules")}
}

// Create inserts a schedule entry for a teacher.
func (s *Store) Create(ctx context.Context, sched models.Schedule) (models.Schedule, error) {
	if sched.ScheduleID == "" {
		sched.ScheduleID = ids.Schedule()
	}
	sched.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, sched); err != nil {
		return models.Schedule{}, err
	}
	return sched, nil
}

// ListByTeacher returns a teacher's schedule entries in chronological order.
func (s *Store) ListByTeacher(ctx context.Context, teacherID string) ([]models.Schedule, error) {
	cur, err := s.c.Find(ctx, bson.M{"teacher_id": teacherID},
		options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Schedule
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one schedule entry owned by teacherID. Returns
// mongo.ErrNoDocuments when nothing matches.
func (s *Store) Delete(ctx context.Context, teacherID, scheduleID string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"teacher_id": teacherID, "schedule_id": scheduleID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
