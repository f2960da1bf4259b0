package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danielotieno/ledgerbook/internal/domain"
)

type userRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, delta decimal.Decimal) error
}

type transactionRepository interface {
	Append(ctx context.Context, tx *sql.Tx, entry *domain.Transaction) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error)
}
