// internal/app/features/invoices/handler.go
package invoices

import (
	"context"
	"errors"
	"net/http"

	invoicestore "github.com/dalemusser/classhub/internal/app/store/invoices"
	"github.com/dalemusser/classhub/internal/app/system/apperr"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/dalemusser/classhub/internal/app/system/normalize"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/webjson"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves student invoices.
type Handler struct {
	Invoices *invoicestore.Store
	Log      *zap.Logger
}

func NewHandler(invoices *invoicestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Invoices: invoices, Log: logger}
}

type createRequest struct {
	StudentID   string `json:"student_id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

// Create handles POST /api/invoices (admin).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, err)
		return
	}
	if req.StudentID == "" {
		webjson.Error(w, apperr.E(apperr.Validation, "student_id is required"))
		return
	}
	if req.Amount <= 0 {
		webjson.Error(w, apperr.E(apperr.Validation, "amount must be positive"))
		return
	}

	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inv, err := h.Invoices.Create(ctx, models.Invoice{
		StudentID:   req.StudentID,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedBy:   su.ID,
	})
	if err != nil {
		h.Log.Error("invoices: create failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.OK(w, inv)
}

// List handles GET /api/invoices. Admins see everything (optionally
// filtered by student_id); everyone else sees their own.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		invoices []models.Invoice
		err      error
	)
	if authz.IsAdmin(r) {
		if studentID := query.Get(r, "student_id"); studentID != "" {
			invoices, err = h.Invoices.ListByStudent(ctx, studentID)
		} else {
			invoices, err = h.Invoices.ListAll(ctx)
		}
	} else {
		invoices, err = h.Invoices.ListByStudent(ctx, su.ID)
	}
	if err != nil {
		h.Log.Error("invoices: list failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	webjson.OK(w, invoices)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/invoices/{invoiceID}/status (admin).
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "invoiceID")

	var req statusRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, err)
		return
	}

	status := normalize.Status(req.Status)
	switch status {
	case models.InvoicePending, models.InvoicePaid, models.InvoiceVoid:
	default:
		webjson.Error(w, apperr.E(apperr.Validation, "status must be pending, paid, or void"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Invoices.UpdateStatus(ctx, invoiceID, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.NotFound, "Invoice not found"))
			return
		}
		h.Log.Error("invoices: status update failed", zap.String("invoice_id", invoiceID), zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.Message(w, "Invoice updated successfully")
}

// Delete handles DELETE /api/invoices/{invoiceID} (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "invoiceID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Invoices.Delete(ctx, invoiceID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.NotFound, "Invoice not found"))
			return
		}
		h.Log.Error("invoices: delete failed", zap.String("invoice_id", invoiceID), zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.Message(w, "Invoice deleted successfully")
}
