package request_models

type FriendRequest struct {
	Username string `json:"username" binding:"required"`
}
