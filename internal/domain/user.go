package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the account record, one per principal. Balance is a cached running
// total over the user's transactions; the transaction rows are the source of
// truth.
type User struct {
	ID           uuid.UUID
	Email        string
	DisplayName  *string
	PasswordHash string
	Role         Role
	Balance      decimal.Decimal
	RegisteredAt time.Time
}
