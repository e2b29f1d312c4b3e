// internal/app/store/oauthstate/store.go
package oauthstate

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultTTL bounds how long a consent round-trip may take.
const DefaultTTL = 10 * time.Minute

// State is an OAuth2 state token bound to the user who started the flow.
// The callback resolves the token back to that user instead of trusting
// anything the browser sends.
type State struct {
	State     string    `bson:"state"`
	UserID    string    `bson:"user_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

// Store manages OAuth2 state tokens in MongoDB.
type Store struct {
	c *mongo.Collection
}

// New creates a new OAuth state Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("oauth_states")}
}

// Begin creates and stores a fresh random state token for userID, valid for
// ttl (DefaultTTL when ttl <= 0).
func (s *Store) Begin(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	state := hex.EncodeToString(buf)

	now := time.Now().UTC()
	_, err := s.c.InsertOne(ctx, State{
		State:     state,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
	if err != nil {
		return "", err
	}
	return state, nil
}

// Redeem checks a state token and, if valid and unexpired, deletes it
// (one-time use) and returns the user who started the flow. valid=false
// means unknown, expired, or already used.
func (s *Store) Redeem(ctx context.Context, state string) (userID string, valid bool, err error) {
	var st State
	err = s.c.FindOneAndDelete(ctx, bson.M{
		"state":      state,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&st)

	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return st.UserID, true, nil
}

// CleanupExpired removes expired state tokens. Backup for when TTL index
// cleanup is delayed.
func (s *Store) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$lt": time.Now().UTC()},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
