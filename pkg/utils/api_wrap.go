package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service-layer sentinel errors onto HTTP statuses.
// Insufficient tokens gets its own 402 so the UI can render a "top up"
// message instead of a generic failure.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrRecordNotFound):
		RespondError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrUsernameTaken):
		RespondError(c, http.StatusConflict, "Username already taken")
	case errors.Is(err, ErrMissingInput):
		RespondError(c, http.StatusBadRequest, "Missing exercise name or history")
	case errors.Is(err, ErrInsufficientHistory):
		RespondError(c, http.StatusBadRequest, "Need at least 2 sessions of this exercise")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrSelfFriend):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInsufficientTokens):
		RespondError(c, http.StatusPaymentRequired, "Insufficient tokens")
	case errors.Is(err, ErrNotFriends):
		RespondError(c, http.StatusForbidden, "Not friends with this user")
	case errors.Is(err, ErrAIService), errors.Is(err, ErrAIParse):
		RespondError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
