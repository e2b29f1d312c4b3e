package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/classhub/internal/app/system/ids"
	"github.com/dalemusser/classhub/internal/app/system/normalize"
	"github.com/dalemusser/classhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "student"|"teacher"|"admin"`)
)

func validRole(role string) bool {
	switch role {
	case "student", "teacher", "admin":
		return true
	}
	return false
}

// Create inserts a new user after normalizing and validating fields.
// The password hash is expected to be set by the caller.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.UserID == "" {
		u.UserID = ids.User()
	}
	u.Email = normalize.Email(u.Email)
	u.Name = normalize.Name(u.Name)
	if u.Role == "" {
		u.Role = "student"
	}
	if !validRole(u.Role) {
		return models.User{}, errBadRole
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by user_id. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all users, newest first.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update holds the admin-patchable fields. Nil means "leave unchanged".
type Update struct {
	Role          *string
	Name          *string
	MeetLink      *string
	RecordingLink *string
}

// ErrNoFields is returned by Patch when the update would change nothing.
var ErrNoFields = errors.New("no fields to update")

// Patch applies a partial update to one user. Returns mongo.ErrNoDocuments
// when no user matches.
func (s *Store) Patch(ctx context.Context, userID string, upd Update) error {
	set := bson.M{}
	if upd.Role != nil {
		role := normalize.Role(*upd.Role)
		if !validRole(role) {
			return errBadRole
		}
		set["role"] = role
	}
	if upd.Name != nil {
		set["name"] = normalize.Name(*upd.Name)
	}
	if upd.MeetLink != nil {
		set["meet_link"] = *upd.MeetLink
	}
	if upd.RecordingLink != nil {
		set["recording_link"] = *upd.RecordingLink
	}
	if len(set) == 0 {
		return ErrNoFields
	}
	set["updated_at"] = time.Now().UTC()

	res, err := s.c.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetGoogleTokens stores the OAuth tokens obtained for a teacher and marks
// the account connected. Returns mongo.ErrNoDocuments when no user matches.
func (s *Store) SetGoogleTokens(ctx context.Context, userID, accessToken, refreshToken string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{
		"google_access_token":  accessToken,
		"google_refresh_token": refreshToken,
		"google_connected":     true,
		"updated_at":           time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AdjustCredits applies a signed delta to the user's credit balance and
// returns the new balance. Returns mongo.ErrNoDocuments when no user matches.
func (s *Store) AdjustCredits(ctx context.Context, userID string, delta int64) (int64, error) {
	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$inc": bson.M{"credit_balance": delta},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return 0, err
	}
	return u.CreditBalance, nil
}
