package classstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/classhub/internal/app/system/ids"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultMaxStudents is the class capacity when the request omits one.
const DefaultMaxStudents = 50

// ErrClassFull is returned by IncrementEnrolled when the class is at capacity.
var ErrClassFull = errors.New("class is at capacity")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("classes")}
}

// Create inserts a new class with a zero enrolled count.
func (s *Store) Create(ctx context.Context, cls models.Class) (models.Class, error) {
	if cls.ClassID == "" {
		cls.ClassID = ids.Class()
	}
	if cls.MaxStudents <= 0 {
		cls.MaxStudents = DefaultMaxStudents
	}
	cls.EnrolledCount = 0
	cls.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, cls); err != nil {
		return models.Class{}, err
	}
	return cls, nil
}

// GetByID loads a class by class_id. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, classID string) (*models.Class, error) {
	var cls models.Class
	if err := s.c.FindOne(ctx, bson.M{"class_id": classID}).Decode(&cls); err != nil {
		return nil, err
	}
	return &cls, nil
}

// ListAll returns every class, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Class, error) {
	return s.list(ctx, bson.M{})
}

// ListByTeacher returns the classes owned by one teacher, newest first.
func (s *Store) ListByTeacher(ctx context.Context, teacherID string) ([]models.Class, error) {
	return s.list(ctx, bson.M{"teacher_id": teacherID})
}

// ListByIDs returns the classes whose class_id is in ids. Order is newest
// first; missing IDs are silently absent.
func (s *Store) ListByIDs(ctx context.Context, classIDs []string) ([]models.Class, error) {
	if len(classIDs) == 0 {
		return nil, nil
	}
	return s.list(ctx, bson.M{"class_id": bson.M{"$in": classIDs}})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Class, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Class
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// IncrementEnrolled bumps enrolled_count by one, but only while the class is
// under capacity. The capacity check and the increment are a single
// conditional update, so concurrent enrollments cannot overshoot
// max_students. Returns ErrClassFull when the class did not match (at
// capacity, or deleted since the caller's existence check).
func (s *Store) IncrementEnrolled(ctx context.Context, classID string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"class_id": classID,
			"$expr":    bson.M{"$lt": bson.A{"$enrolled_count", "$max_students"}},
		},
		bson.M{"$inc": bson.M{"enrolled_count": 1}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrClassFull
	}
	return nil
}

// DecrementEnrolled undoes an increment when the enrollment insert fails
// after the counter was bumped. Floors at zero.
func (s *Store) DecrementEnrolled(ctx context.Context, classID string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"class_id": classID, "enrolled_count": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"enrolled_count": -1}},
	)
	return err
}

// SetMeetLink stores a generated meet link on the class.
func (s *Store) SetMeetLink(ctx context.Context, classID, link string) error {
	return s.setField(ctx, classID, "meet_link", link)
}

// SetRecordingLink stores a recording link on the class.
func (s *Store) SetRecordingLink(ctx context.Context, classID, link string) error {
	return s.setField(ctx, classID, "recording_link", link)
}

func (s *Store) setField(ctx context.Context, classID, field, value string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"class_id": classID}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a class. Enrollment cleanup is the caller's responsibility.
// Returns mongo.ErrNoDocuments when no class matches.
func (s *Store) Delete(ctx context.Context, classID string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"class_id": classID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
