package response_models

import "github.com/google/uuid"

type AccountResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Emoji        string    `json:"emoji"`
	Unit         string    `json:"unit"`
	TokenBalance int64     `json:"token_balance"`
}
