// internal/app/store/users/fetcher.go
package userstore

import (
	"context"

	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/normalize"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher implements auth.UserFetcher to load fresh user data on each
// request, so role changes and deletions take effect immediately.
type Fetcher struct {
	users *mongo.Collection
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{users: db.Collection("users")}
}

// FetchUser retrieves a user by ID. A missing record returns (nil, nil); any
// other lookup failure returns the error so it is not mistaken for a deleted
// account.
func (f *Fetcher) FetchUser(ctx context.Context, userID string) (*auth.SessionUser, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u models.User
	proj := options.FindOne().SetProjection(bson.M{
		"user_id": 1,
		"name":    1,
		"email":   1,
		"role":    1,
	})
	err := f.users.FindOne(ctx, bson.M{"user_id": userID}, proj).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &auth.SessionUser{
		ID:    u.UserID,
		Name:  u.Name,
		Email: u.Email,
		Role:  normalize.Role(u.Role),
	}, nil
}
