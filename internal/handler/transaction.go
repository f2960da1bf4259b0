package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danielotieno/ledgerbook/internal/domain"
	"github.com/danielotieno/ledgerbook/internal/logging"
	"github.com/danielotieno/ledgerbook/internal/service"
)

type ledgerService interface {
	ApplyEntry(ctx context.Context, req service.ApplyEntryRequest) (*domain.Transaction, error)
	ListRecent(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	ledger ledgerService
	users  roleChecker
}

func NewTransactionHandler(ledger ledgerService, users roleChecker) *TransactionHandler {
	return &TransactionHandler{ledger: ledger, users: users}
}

type transactionDTO struct {
	ID          uuid.UUID        `json:"id"`
	Kind        domain.EntryKind `json:"kind"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toTransactionDTO(t *domain.Transaction) transactionDTO {
	return transactionDTO{
		ID:          t.ID,
		Kind:        t.Kind,
		Amount:      t.Amount,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

type createEntryRequest struct {
	Kind        domain.EntryKind `json:"kind"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
}

// Create applies a credit or debit to the target account. Admin-gated at the
// route; validation belongs to the ledger service.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	entry, err := h.ledger.ApplyEntry(r.Context(), service.ApplyEntryRequest{
		UserID:      targetID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to apply ledger entry", "error", err, "user_id", targetID)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTransactionDTO(entry))
}

// List returns the owner's most recent entries, newest first. Owner or admin.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	targetID, appErr := ownerOrAdmin(r, h.users)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	entries, err := h.ledger.ListRecent(r.Context(), targetID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list transactions", "error", err, "user_id", targetID)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transactionDTO, 0, len(entries))
	for i := range entries {
		dtos = append(dtos, toTransactionDTO(&entries[i]))
	}
	RespondSuccess(w, http.StatusOK, dtos)
}
