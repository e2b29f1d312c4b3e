package attendancestore

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
	return &Store{c: db.Collection("attendance")}
}

// Upsert writes the attendance sheet for (classID, sessionDate). Repeated
// submissions for the same class and date replace the records in place, so
// one document per session is an invariant, backed by the unique
// (class_id, session_date) index.
func (s *Store) Upsert(ctx context.Context, classID, sessionDate string, records []models.AttendanceEntry, recordedBy string) (models.Attendance, error) {
	if records == nil {
		records = []models.AttendanceEntry{}
	}

	var out models.Attendance
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"class_id": classID, "session_date": sessionDate},
		bson.M{
			"$set": bson.M{
				"records":     records,
				"recorded_by": recordedBy,
				"updated_at":  time.Now().UTC(),
			},
			"$setOnInsert": bson.M{
				"attendance_id": ids.Attendance(),
				"class_id":      classID,
				"session_date":  sessionDate,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return models.Attendance{}, err
	}
	return out, nil
}

// ListByClass returns a class's attendance sheets, most recent session first.
func (s *Store) ListByClass(ctx context.Context, classID string) ([]models.Attendance, error) {
	cur, err := s.c.Find(ctx, bson.M{"class_id": classID},
		options.Find().SetSort(bson.D{{Key: "session_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Attendance
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one attendance sheet scoped to its class. Returns
// mongo.ErrNoDocuments when nothing matches.
func (s *Store) Delete(ctx context.Context, classID, attendanceID string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"class_id": classID, "attendance_id": attendanceID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
