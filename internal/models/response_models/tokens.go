package response_models

import "github.com/google/uuid"

type TokenBalanceResponse struct {
	Balance int64 `json:"balance"`
}

type TokenTransactionResponse struct {
	ID        uuid.UUID `json:"id"`
	Amount    int64     `json:"amount"`
	Type      string    `json:"type"` // earned | spent
	Reason    string    `json:"reason"`
	CreatedAt int64     `json:"created_at"`
}
