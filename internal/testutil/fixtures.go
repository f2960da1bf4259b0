package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielotieno/ledgerbook/internal/domain"
)

const TestPassword = "password123"

func SeedUser(t *testing.T, db *sql.DB, email string, role domain.Role, balance string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Balance:      decimal.RequireFromString(balance),
		RegisteredAt: time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO users (id, email, password_hash, role, balance, registered_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.Balance, u.RegisteredAt,
	)
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

// SeedTransaction inserts an entry with an explicit timestamp, for tests that
// assert on display ordering.
func SeedTransaction(t *testing.T, db *sql.DB, userID uuid.UUID, kind domain.EntryKind, amount, description string, createdAt time.Time) *domain.Transaction {
	t.Helper()

	e := &domain.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Kind:        kind,
		Amount:      decimal.RequireFromString(amount),
		Description: description,
		CreatedAt:   createdAt,
	}

	_, err := db.Exec(
		`INSERT INTO transactions (id, user_id, kind, amount, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.UserID, e.Kind, e.Amount, e.Description, e.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed transaction for %s: %v", userID, err)
	}
	return e
}

func GetBalance(t *testing.T, db *sql.DB, userID uuid.UUID) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	err := db.QueryRow(`SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		t.Fatalf("get balance %s: %v", userID, err)
	}
	return balance
}

func CountTransactions(t *testing.T, db *sql.DB, userID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		t.Fatalf("count transactions for %s: %v", userID, err)
	}
	return count
}
