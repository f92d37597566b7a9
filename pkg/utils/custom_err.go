package utils

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrRecordNotFound     = errors.New("record not found")
	ErrDatabaseError      = errors.New("database error")

	ErrMissingInput        = errors.New("missing exercise name or history")
	ErrInsufficientHistory = errors.New("insufficient history")
	ErrInsufficientTokens  = errors.New("insufficient tokens")
	ErrAIService           = errors.New("ai service error")
	ErrAIParse             = errors.New("failed to parse ai response")

	ErrNotFriends   = errors.New("not friends with this user")
	ErrSelfFriend   = errors.New("you cannot add yourself")
	ErrInvalidInput = errors.New("invalid input")
)
