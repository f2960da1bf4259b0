package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danielotieno/ledgerbook/internal/domain"
)

const transactionColumns = `id, user_id, kind, amount, description, created_at`

// DefaultWindow is the number of entries shown by default: the most recent 50.
const DefaultWindow = 50

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Append writes one immutable ledger entry. There is deliberately no update
// or delete counterpart.
func (r *TransactionRepository) Append(ctx context.Context, tx *sql.Tx, entry *domain.Transaction) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, kind, amount, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.UserID, entry.Kind, entry.Amount, entry.Description, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Append: %w", err)
	}
	return nil
}

// ListRecent returns a user's entries newest-first, bounded by limit.
func (r *TransactionRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = DefaultWindow
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer rows.Close()

	var entries []domain.Transaction
	for rows.Next() {
		e, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("ListRecent: scan: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRecent: rows: %w", err)
	}
	return entries, nil
}

// SumEntries recomputes the balance from the entries themselves. The stored
// balance is a cached running total; this is the authoritative figure.
func (r *TransactionRepository) SumEntries(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CASE WHEN kind = 'credit' THEN amount ELSE -amount END), 0)
		 FROM transactions WHERE user_id = $1`,
		userID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("SumEntries: %w", err)
	}
	return sum, nil
}

func scanTransaction(s scanner) (*domain.Transaction, error) {
	var e domain.Transaction
	err := s.Scan(
		&e.ID, &e.UserID, &e.Kind, &e.Amount, &e.Description, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
