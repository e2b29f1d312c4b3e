package enrollmentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/classhub/internal/app/system/ids"
	"github.com/dalemusser/classhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateEnrollment is returned when the student is already enrolled in
// the class. Enforced by the unique (user_id, class_id) index, so concurrent
// requests cannot both succeed.
var ErrDuplicateEnrollment = errors.New("student already enrolled in this class")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("enrollments")}
}

// Create inserts an enrollment for (userID, classID).
func (s *Store) Create(ctx context.Context, userID, classID string) (models.Enrollment, error) {
	e := models.Enrollment{
		EnrollmentID: ids.Enrollment(),
		UserID:       userID,
		ClassID:      classID,
		EnrolledAt:   time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Enrollment{}, ErrDuplicateEnrollment
		}
		return models.Enrollment{}, err
	}
	return e, nil
}

// Exists reports whether userID is enrolled in classID.
func (s *Store) Exists(ctx context.Context, userID, classID string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "class_id": classID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns a student's enrollments, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]models.Enrollment, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "enrolled_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Enrollment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClassIDsForUser returns the class IDs a student is enrolled in.
func (s *Store) ClassIDsForUser(ctx context.Context, userID string) ([]string, error) {
	enrollments, err := s.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	classIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		classIDs = append(classIDs, e.ClassID)
	}
	return classIDs, nil
}

// DeleteByClass removes every enrollment for a class. Used when the class
// itself is deleted.
func (s *Store) DeleteByClass(ctx context.Context, classID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"class_id": classID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
