package creditstore

import (
	"context"
	"time"

	"github.com/dalemusser/classhub/internal/app/system/ids"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store keeps the credit transaction ledger. The running balance lives on
// the user document and is adjusted by userstore.AdjustCredits.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("credit_transactions")}
}

// Record appends one signed adjustment to the ledger.
func (s *Store) Record(ctx context.Context, t models.CreditTransaction) (models.CreditTransaction, error) {
	if t.TransactionID == "" {
		t.TransactionID = ids.Transaction()
	}
	t.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.CreditTransaction{}, err
	}
	return t, nil
}

// ListByUser returns a user's transactions, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]models.CreditTransaction, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CreditTransaction
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
