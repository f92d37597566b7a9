package request_models

type SignUpRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateSettingsRequest struct {
	DisplayName *string `json:"display_name"`
	Emoji       *string `json:"emoji"`
	Unit        *string `json:"unit"` // "kg" | "lbs"
}
