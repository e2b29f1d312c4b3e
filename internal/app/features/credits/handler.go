// internal/app/features/credits/handler.go
package credits

import (
	"context"
	"errors"
	"net/http"

	creditstore "github.com/dalemusser/classhub/internal/app/store/credits"
	userstore "github.com/dalemusser/classhub/internal/app/store/users"
	"github.com/dalemusser/classhub/internal/app/system/apperr"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/webjson"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves credit adjustments and history. The balance lives on the
// user document; the transaction collection is the audit trail.
type Handler struct {
	Credits *creditstore.Store
	Users   *userstore.Store
	Log     *zap.Logger
}

func NewHandler(credits *creditstore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Credits: credits, Users: users, Log: logger}
}

type adjustRequest struct {
	UserID string `json:"user_id"`
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

// Adjust handles POST /api/credits/adjust (admin). Amount is signed; the
// balance increment and the ledger entry are written in that order, so the
// ledger never shows an adjustment that did not land on the balance.
func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, err)
		return
	}
	if req.UserID == "" {
		webjson.Error(w, apperr.E(apperr.Validation, "user_id is required"))
		return
	}
	if req.Amount == 0 {
		webjson.Error(w, apperr.E(apperr.Validation, "amount must be non-zero"))
		return
	}

	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	balance, err := h.Users.AdjustCredits(ctx, req.UserID, req.Amount)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.NotFound, "User not found"))
			return
		}
		h.Log.Error("credits: adjust failed", zap.String("user_id", req.UserID), zap.Error(err))
		webjson.Error(w, err)
		return
	}

	txn, err := h.Credits.Record(ctx, models.CreditTransaction{
		UserID:     req.UserID,
		Amount:     req.Amount,
		Reason:     req.Reason,
		AdjustedBy: su.ID,
	})
	if err != nil {
		h.Log.Error("credits: ledger write failed", zap.String("user_id", req.UserID), zap.Error(err))
		webjson.Error(w, err)
		return
	}

	webjson.OK(w, map[string]any{
		"transaction":    txn,
		"credit_balance": balance,
	})
}

// List handles GET /api/credits. Users see their own balance and history;
// admins may pass user_id to inspect any account.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	userID := su.ID
	if requested := query.Get(r, "user_id"); requested != "" && requested != su.ID {
		if !authz.IsAdmin(r) {
			webjson.Error(w, apperr.E(apperr.Forbidden, "Admin access required"))
			return
		}
		userID = requested
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.NotFound, "User not found"))
			return
		}
		h.Log.Error("credits: user lookup failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}

	txns, err := h.Credits.ListByUser(ctx, userID)
	if err != nil {
		h.Log.Error("credits: history failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if txns == nil {
		txns = []models.CreditTransaction{}
	}

	webjson.OK(w, map[string]any{
		"user_id":        userID,
		"credit_balance": user.CreditBalance,
		"transactions":   txns,
	})
}
