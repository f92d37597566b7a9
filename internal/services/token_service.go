package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/response_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	mem "github.com/pawcz12345-dotcom/ironpact/pkg/memcache"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

const (
	// Earn rules applied when a session is saved.
	LogReward    int64 = 1
	PRReward     int64 = 2
	StreakReward int64 = 5

	// StreakSessions is the trailing-week session count that pays the
	// streak bonus. Paid only when the count lands exactly on it, so a
	// fifth session in the same window earns nothing extra.
	StreakSessions = 4
)

type TokenServiceInterface interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	Award(ctx context.Context, userID uuid.UUID, amount int64, reason string) error
	Spend(ctx context.Context, userID uuid.UUID, amount int64, reason string) error
	ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]response_models.TokenTransactionResponse, error)
	// RewardSessionSave applies the earn rules for a freshly saved session
	// and returns the total awarded plus one human-readable line per rule.
	RewardSessionSave(ctx context.Context, userID uuid.UUID, session *db_models.Session) (int64, []string, error)
}

type TokenService struct {
	tokenRepo    repositories.TokenRepository
	sessionRepo  repositories.SessionRepository
	balanceCache mem.BalanceStore
}

func NewTokenService(
	tokenRepo repositories.TokenRepository,
	sessionRepo repositories.SessionRepository,
	balanceCache mem.BalanceStore,
) TokenServiceInterface {
	return &TokenService{
		tokenRepo:    tokenRepo,
		sessionRepo:  sessionRepo,
		balanceCache: balanceCache,
	}
}

func (t *TokenService) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	balance, err := t.tokenRepo.GetBalance(ctx, userID)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	t.balanceCache.SetAuthoritative(userID, balance)
	return balance, nil
}

func (t *TokenService) Award(ctx context.Context, userID uuid.UUID, amount int64, reason string) error {
	if amount <= 0 {
		return utils.ErrInvalidInput
	}
	if err := t.tokenRepo.Award(ctx, userID, amount, reason); err != nil {
		return utils.ErrDatabaseError
	}
	t.balanceCache.Bump(userID, amount)
	return nil
}

func (t *TokenService) Spend(ctx context.Context, userID uuid.UUID, amount int64, reason string) error {
	if amount <= 0 {
		return utils.ErrInvalidInput
	}
	err := t.tokenRepo.Spend(ctx, userID, amount, reason)
	if err != nil {
		if err == utils.ErrInsufficientTokens {
			return err
		}
		return utils.ErrDatabaseError
	}
	t.balanceCache.Bump(userID, -amount)
	return nil
}

func (t *TokenService) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]response_models.TokenTransactionResponse, error) {
	txns, err := t.tokenRepo.ListTransactions(ctx, userID, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.TokenTransactionResponse, 0, len(txns))
	for _, txn := range txns {
		result = append(result, response_models.TokenTransactionResponse{
			ID:        txn.ID,
			Amount:    txn.Amount,
			Type:      string(txn.Type),
			Reason:    txn.Reason,
			CreatedAt: txn.CreatedAt,
		})
	}
	return result, nil
}

func (t *TokenService) RewardSessionSave(ctx context.Context, userID uuid.UUID, session *db_models.Session) (int64, []string, error) {
	var total int64
	var lines []string

	award := func(amount int64, reason string) error {
		if err := t.tokenRepo.Award(ctx, userID, amount, reason); err != nil {
			return utils.ErrDatabaseError
		}
		total += amount
		lines = append(lines, fmt.Sprintf("+%d %s", amount, reason))
		return nil
	}

	if err := award(LogReward, "session logged"); err != nil {
		return total, lines, err
	}

	if prCount := CountSessionPRs(session); prCount > 0 {
		if err := award(PRReward*int64(prCount), fmt.Sprintf("%d personal record(s)", prCount)); err != nil {
			return total, lines, err
		}
	}

	recent, err := t.recentSessionCount(ctx, userID, session.Date)
	if err == nil && recent == StreakSessions {
		if err := award(StreakReward, "4 sessions this week"); err != nil {
			return total, lines, err
		}
	}

	t.balanceCache.Bump(userID, total)
	return total, lines, nil
}

// recentSessionCount counts sessions dated inside the trailing 7-day window
// ending at the given date, the just-saved session included.
func (t *TokenService) recentSessionCount(ctx context.Context, userID uuid.UUID, date string) (int, error) {
	end := utils.ParseDate(date)
	if end.IsZero() {
		end = time.Now().UTC()
	}
	start := end.AddDate(0, 0, -6).Format(utils.DateLayout)
	endStr := end.Format(utils.DateLayout)

	sessions, err := t.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, s := range sessions {
		if s.Date >= start && s.Date <= endStr {
			count++
		}
	}
	return count, nil
}
