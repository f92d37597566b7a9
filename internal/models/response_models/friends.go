package response_models

import "github.com/google/uuid"

type FriendResponse struct {
	ConnectionID uuid.UUID `json:"connection_id"`
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Emoji        string    `json:"emoji"`
	Unit         string    `json:"unit"`
}

type PendingRequestResponse struct {
	ConnectionID uuid.UUID `json:"connection_id"`
	FromID       uuid.UUID `json:"from_id"`
	FromName     string    `json:"from_name"`
	FromUsername string    `json:"from_username"`
}

// CompareResponse is a head-to-head stats block for the caller and one friend.
type CompareResponse struct {
	Me     CompareSide `json:"me"`
	Friend CompareSide `json:"friend"`
}

type CompareSide struct {
	ID    uuid.UUID      `json:"id"`
	Name  string         `json:"name"`
	Emoji string         `json:"emoji"`
	Stats DashboardStats `json:"stats"`
}
