package db_models

import "github.com/google/uuid"

type TokenTransactionType string

const (
	TokenEarned TokenTransactionType = "earned"
	TokenSpent  TokenTransactionType = "spent"
)

// TokenTransaction is an append-only ledger row. Amount is always positive;
// the sign is carried by Type. Account.TokenBalance must equal the net sum
// of an account's rows here.
type TokenTransaction struct {
	BaseModel
	UserID uuid.UUID            `gorm:"index"`
	Amount int64                `gorm:"check:amount > 0"`
	Type   TokenTransactionType `gorm:"size:8;index"`
	Reason string

	Account Account `gorm:"foreignKey:UserID"`
}
