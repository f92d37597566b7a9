package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/request_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/response_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

type AccountServiceInterface interface {
	SignUp(ctx context.Context, req *request_models.SignUpRequest) (string, error)
	Login(ctx context.Context, req *request_models.LoginRequest) (string, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.AccountResponse, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, req *request_models.UpdateSettingsRequest) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

func (a *AccountService) SignUp(ctx context.Context, req *request_models.SignUpRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))

	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if existing != nil {
		return "", utils.ErrEmailAlreadyExists
	}

	existing, err = a.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if existing != nil {
		return "", utils.ErrUsernameTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return "", err
	}

	account := &db_models.Account{
		Name:         req.DisplayName,
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Emoji:        "💪",
		Unit:         db_models.UnitKg,
	}
	if err := a.accountRepo.Insert(ctx, account); err != nil {
		return "", utils.ErrDatabaseError
	}

	return utils.CreateToken(account.ID)
}

func (a *AccountService) Login(ctx context.Context, req *request_models.LoginRequest) (string, error) {
	account, err := a.accountRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if account == nil {
		return "", utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, req.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return utils.CreateToken(account.ID)
}

func (a *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	return &response_models.AccountResponse{
		ID:           account.ID,
		Name:         account.Name,
		Username:     account.Username,
		Email:        account.Email,
		Emoji:        account.Emoji,
		Unit:         string(account.Unit),
		TokenBalance: account.TokenBalance,
	}, nil
}

func (a *AccountService) UpdateSettings(ctx context.Context, userID uuid.UUID, req *request_models.UpdateSettingsRequest) error {
	fields := map[string]interface{}{}
	if req.DisplayName != nil && strings.TrimSpace(*req.DisplayName) != "" {
		fields["name"] = strings.TrimSpace(*req.DisplayName)
	}
	if req.Emoji != nil {
		fields["emoji"] = *req.Emoji
	}
	if req.Unit != nil {
		unit := db_models.Unit(*req.Unit)
		if unit != db_models.UnitKg && unit != db_models.UnitLbs {
			return utils.ErrInvalidInput
		}
		fields["unit"] = unit
	}
	if len(fields) == 0 {
		return nil
	}

	if err := a.accountRepo.UpdateFields(ctx, userID, fields); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
