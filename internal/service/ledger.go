package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danielotieno/ledgerbook/internal/domain"
	"github.com/danielotieno/ledgerbook/internal/logging"
	"github.com/danielotieno/ledgerbook/internal/repository"
)

// LedgerService owns the one operation pair that mutates balances: a
// commutative balance increment plus exactly one appended entry, committed
// together.
type LedgerService struct {
	users   userRepository
	entries transactionRepository
	db      *sql.DB
}

func NewLedgerService(users userRepository, entries transactionRepository, db *sql.DB) *LedgerService {
	return &LedgerService{users: users, entries: entries, db: db}
}

type ApplyEntryRequest struct {
	UserID      uuid.UUID
	Kind        domain.EntryKind
	Amount      decimal.Decimal
	Description string
}

func (r ApplyEntryRequest) validate() error {
	if !r.Kind.IsValid() {
		return fmt.Errorf("validate: %w", domain.ErrInvalidKind)
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("validate: %w", domain.ErrInvalidAmount)
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("validate: %w", domain.ErrEmptyDescription)
	}
	return nil
}

// ApplyEntry applies a signed balance delta and appends the corresponding
// entry. The entry stores the unsigned magnitude; the sign lives in the kind.
// Both writes go through one transaction, so the running total and the entry
// log cannot drift apart on failure.
func (s *LedgerService) ApplyEntry(ctx context.Context, req ApplyEntryRequest) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("ApplyEntry: %w", err)
	}

	entry := &domain.Transaction{
		ID:          uuid.New(),
		UserID:      req.UserID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   time.Now().UTC(),
	}

	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.users.IncrementBalance(ctx, tx, req.UserID, entry.SignedAmount()); err != nil {
			return err
		}
		return s.entries.Append(ctx, tx, entry)
	})
	if err != nil {
		return nil, fmt.Errorf("ApplyEntry: %w", err)
	}

	log.Info("ledger entry applied",
		"entry_id", entry.ID,
		"user_id", req.UserID,
		"kind", req.Kind,
		"amount", req.Amount,
	)

	return entry, nil
}

// ListRecent returns the display window: newest entries first.
func (s *LedgerService) ListRecent(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	entries, err := s.entries.ListRecent(ctx, userID, repository.DefaultWindow)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	return entries, nil
}
