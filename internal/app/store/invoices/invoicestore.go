package invoicestore

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

var errBadStatus = errors.New(`status must be "pending"|"paid"|"void"`)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("invoices")}
}

func validStatus(status string) bool {
	switch status {
	case models.InvoicePending, models.InvoicePaid, models.InvoiceVoid:
		return true
	}
	return false
}

// Create inserts an invoice, defaulting status to pending.
func (s *Store) Create(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	if inv.InvoiceID == "" {
		inv.InvoiceID = ids.Invoice()
	}
	if inv.Status == "" {
		inv.Status = models.InvoicePending
	}
	if !validStatus(inv.Status) {
		return models.Invoice{}, errBadStatus
	}

	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

// ListAll returns every invoice, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Invoice, error) {
	return s.list(ctx, bson.M{})
}

// ListByStudent returns one student's invoices, newest first.
func (s *Store) ListByStudent(ctx context.Context, studentID string) ([]models.Invoice, error) {
	return s.list(ctx, bson.M{"student_id": studentID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Invoice, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Invoice
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves an invoice to a new status. Returns
// mongo.ErrNoDocuments when no invoice matches.
func (s *Store) UpdateStatus(ctx context.Context, invoiceID, status string) error {
	if !validStatus(status) {
		return errBadStatus
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"invoice_id": invoiceID}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes an invoice. Returns mongo.ErrNoDocuments when no invoice
// matches.
func (s *Store) Delete(ctx context.Context, invoiceID string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"invoice_id": invoiceID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
