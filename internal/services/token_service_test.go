package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
	mem "github.com/pawcz12345-dotcom/ironpact/pkg/memcache"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

type awardCall struct {
	amount int64
	reason string
}

type stubTokenRepo struct {
	balance    int64
	balanceErr error
	awards     []awardCall
	awardErr   error
	spends     []awardCall
	spendErr   error
}

func (s *stubTokenRepo) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.balance, s.balanceErr
}

func (s *stubTokenRepo) Award(ctx context.Context, userID uuid.UUID, amount int64, reason string) error {
	if s.awardErr != nil {
		return s.awardErr
	}
	s.awards = append(s.awards, awardCall{amount, reason})
	s.balance += amount
	return nil
}

func (s *stubTokenRepo) Spend(ctx context.Context, userID uuid.UUID, amount int64, reason string) error {
	if s.spendErr != nil {
		return s.spendErr
	}
	if s.balance < amount {
		return utils.ErrInsufficientTokens
	}
	s.spends = append(s.spends, awardCall{amount, reason})
	s.balance -= amount
	return nil
}

func (s *stubTokenRepo) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.TokenTransaction, error) {
	return nil, nil
}

type stubSessionRepo struct {
	sessions []db_models.Session
	listErr  error
}

func (s *stubSessionRepo) Insert(ctx context.Context, session *db_models.Session) error {
	s.sessions = append(s.sessions, *session)
	return nil
}

func (s *stubSessionRepo) FindById(ctx context.Context, userID, sessionID uuid.UUID) (*db_models.Session, error) {
	return nil, nil
}

func (s *stubSessionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Session, error) {
	return s.sessions, s.listErr
}

func (s *stubSessionRepo) ListByUserAndDate(ctx context.Context, userID uuid.UUID, date string) ([]db_models.Session, error) {
	return nil, nil
}

func (s *stubSessionRepo) UpdateFields(ctx context.Context, userID, sessionID uuid.UUID, fields map[string]interface{}) error {
	return nil
}

func (s *stubSessionRepo) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	return nil
}

func prSession(date string, prCount int) *db_models.Session {
	sets := make([]db_models.SetEntry, 0, prCount+1)
	sets = append(sets, db_models.SetEntry{Weight: 80, Reps: 5})
	for i := 0; i < prCount; i++ {
		sets = append(sets, db_models.SetEntry{Weight: 100 + float64(i), Reps: 5, IsPR: true})
	}
	return &db_models.Session{
		Date:      date,
		Type:      db_models.SessionPush,
		Exercises: []db_models.SessionExercise{{Name: "Bench Press", Sets: sets}},
	}
}

func newTokenService(tokenRepo *stubTokenRepo, sessionRepo *stubSessionRepo) TokenServiceInterface {
	return NewTokenService(tokenRepo, sessionRepo, mem.NewBalanceCache(time.Minute))
}

func TestRewardSessionSave_BaseReward(t *testing.T) {
	tokenRepo := &stubTokenRepo{}
	sessionRepo := &stubSessionRepo{}
	svc := newTokenService(tokenRepo, sessionRepo)

	session := prSession("2025-03-10", 0)
	sessionRepo.sessions = []db_models.Session{*session}

	total, lines, err := svc.RewardSessionSave(context.Background(), uuid.New(), session)
	require.NoError(t, err)
	assert.Equal(t, LogReward, total)
	require.Len(t, lines, 1)
	assert.Equal(t, "+1 session logged", lines[0])
}

func TestRewardSessionSave_PRBonusScalesWithCount(t *testing.T) {
	tokenRepo := &stubTokenRepo{}
	sessionRepo := &stubSessionRepo{}
	svc := newTokenService(tokenRepo, sessionRepo)

	session := prSession("2025-03-10", 3)
	sessionRepo.sessions = []db_models.Session{*session}

	total, lines, err := svc.RewardSessionSave(context.Background(), uuid.New(), session)
	require.NoError(t, err)
	assert.Equal(t, LogReward+3*PRReward, total)
	assert.Len(t, lines, 2)
}

func TestRewardSessionSave_StreakBonusExactlyAtFour(t *testing.T) {
	tokenRepo := &stubTokenRepo{}
	sessionRepo := &stubSessionRepo{}
	svc := newTokenService(tokenRepo, sessionRepo)

	// Three earlier sessions inside the trailing week plus the new one.
	sessionRepo.sessions = []db_models.Session{
		*prSession("2025-03-05", 0),
		*prSession("2025-03-07", 0),
		*prSession("2025-03-09", 0),
		*prSession("2025-03-10", 0),
	}

	total, _, err := svc.RewardSessionSave(context.Background(), uuid.New(), prSession("2025-03-10", 0))
	require.NoError(t, err)
	assert.Equal(t, LogReward+StreakReward, total)
}

func TestRewardSessionSave_NoStreakBonusPastFour(t *testing.T) {
	tokenRepo := &stubTokenRepo{}
	sessionRepo := &stubSessionRepo{}
	svc := newTokenService(tokenRepo, sessionRepo)

	sessionRepo.sessions = []db_models.Session{
		*prSession("2025-03-04", 0),
		*prSession("2025-03-05", 0),
		*prSession("2025-03-07", 0),
		*prSession("2025-03-09", 0),
		*prSession("2025-03-10", 0),
	}

	total, _, err := svc.RewardSessionSave(context.Background(), uuid.New(), prSession("2025-03-10", 0))
	require.NoError(t, err)
	assert.Equal(t, LogReward, total)
}

func TestRewardSessionSave_OldSessionsOutsideWindow(t *testing.T) {
	tokenRepo := &stubTokenRepo{}
	sessionRepo := &stubSessionRepo{}
	svc := newTokenService(tokenRepo, sessionRepo)

	// 2025-03-03 is 7 days before the save date, one past the window.
	sessionRepo.sessions = []db_models.Session{
		*prSession("2025-03-03", 0),
		*prSession("2025-03-07", 0),
		*prSession("2025-03-09", 0),
		*prSession("2025-03-10", 0),
	}

	total, _, err := svc.RewardSessionSave(context.Background(), uuid.New(), prSession("2025-03-10", 0))
	require.NoError(t, err)
	assert.Equal(t, LogReward, total)
}

func TestSpend_RejectsNonPositiveAmounts(t *testing.T) {
	svc := newTokenService(&stubTokenRepo{balance: 10}, &stubSessionRepo{})

	assert.ErrorIs(t, svc.Spend(context.Background(), uuid.New(), 0, "x"), utils.ErrInvalidInput)
	assert.ErrorIs(t, svc.Spend(context.Background(), uuid.New(), -3, "x"), utils.ErrInvalidInput)
}

func TestSpend_InsufficientBalancePassesThrough(t *testing.T) {
	svc := newTokenService(&stubTokenRepo{balance: 1}, &stubSessionRepo{})

	err := svc.Spend(context.Background(), uuid.New(), 2, "coach")
	assert.ErrorIs(t, err, utils.ErrInsufficientTokens)
}

func TestGetBalance_SeedsShadowCache(t *testing.T) {
	cache := mem.NewBalanceCache(time.Minute)
	svc := NewTokenService(&stubTokenRepo{balance: 7}, &stubSessionRepo{}, cache)
	userID := uuid.New()

	balance, err := svc.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), balance)

	shadow, authoritative, ok := cache.Get(userID)
	require.True(t, ok)
	assert.True(t, authoritative)
	assert.Equal(t, int64(7), shadow)
}
