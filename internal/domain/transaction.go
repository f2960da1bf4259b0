package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryKind string

const (
	EntryKindCredit EntryKind = "credit"
	EntryKindDebit  EntryKind = "debit"
)

func (k EntryKind) IsValid() bool {
	return k == EntryKindCredit || k == EntryKindDebit
}

// Transaction is one append-only ledger entry beneath a user. Amount is the
// unsigned magnitude; the sign is recoverable from Kind.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Kind        EntryKind
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

// SignedAmount returns the delta this entry applied to the balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == EntryKindDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
