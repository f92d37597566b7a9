package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/request_models"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

type stubPRRepo struct {
	records map[string]*db_models.PersonalRecord
}

func newStubPRRepo() *stubPRRepo {
	return &stubPRRepo{records: make(map[string]*db_models.PersonalRecord)}
}

func (s *stubPRRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.PersonalRecord, error) {
	var prs []db_models.PersonalRecord
	for _, pr := range s.records {
		prs = append(prs, *pr)
	}
	return prs, nil
}

func (s *stubPRRepo) FindByExercise(ctx context.Context, userID uuid.UUID, exerciseName string) (*db_models.PersonalRecord, error) {
	return s.records[exerciseName], nil
}

func (s *stubPRRepo) Upsert(ctx context.Context, pr *db_models.PersonalRecord) error {
	s.records[pr.ExerciseName] = pr
	return nil
}

type stubProgramRepo struct {
	latestVersion int32
}

func (s *stubProgramRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*db_models.Program, error) {
	return nil, nil
}

func (s *stubProgramRepo) Save(ctx context.Context, userID uuid.UUID, exercises []byte, savedAt string) (int32, error) {
	s.latestVersion++
	return s.latestVersion, nil
}

func (s *stubProgramRepo) LatestVersion(ctx context.Context, userID uuid.UUID) (int32, error) {
	return s.latestVersion, nil
}

func (s *stubProgramRepo) ListVersions(ctx context.Context, userID uuid.UUID) ([]db_models.ProgramVersion, error) {
	return nil, nil
}

func newSessionServiceForTest(sessionRepo *stubSessionRepo, prRepo *stubPRRepo) SessionServiceInterface {
	tokenService := newTokenService(&stubTokenRepo{}, sessionRepo)
	return NewSessionService(sessionRepo, prRepo, &stubProgramRepo{}, tokenService, nil)
}

func createReq(date string, sets ...request_models.SetInput) *request_models.CreateSessionRequest {
	return &request_models.CreateSessionRequest{
		Date: date,
		Type: "push",
		Exercises: []request_models.ExerciseInput{
			{Name: "Bench Press", Sets: sets},
		},
	}
}

func TestCreateSession_FirstSetBecomesPR(t *testing.T) {
	sessionRepo := &stubSessionRepo{}
	prRepo := newStubPRRepo()
	svc := newSessionServiceForTest(sessionRepo, prRepo)

	saved, err := svc.Create(context.Background(), uuid.New(), createReq("2025-03-10",
		request_models.SetInput{Weight: 100, Reps: 5}))
	require.NoError(t, err)

	require.Len(t, saved.Session.Exercises, 1)
	require.Len(t, saved.Session.Exercises[0].Sets, 1)
	assert.True(t, saved.Session.Exercises[0].Sets[0].IsPR)

	pr := prRepo.records["Bench Press"]
	require.NotNil(t, pr)
	assert.Equal(t, CalcE1RM(100, 5), pr.E1RM)
	assert.Equal(t, "2025-03-10", pr.AchievedAt)
}

func TestCreateSession_EqualE1RMIsNotAPR(t *testing.T) {
	sessionRepo := &stubSessionRepo{}
	prRepo := newStubPRRepo()
	prRepo.records["Bench Press"] = &db_models.PersonalRecord{
		ExerciseName: "Bench Press",
		Weight:       100,
		Reps:         5,
		E1RM:         CalcE1RM(100, 5),
	}
	svc := newSessionServiceForTest(sessionRepo, prRepo)

	saved, err := svc.Create(context.Background(), uuid.New(), createReq("2025-03-10",
		request_models.SetInput{Weight: 100, Reps: 5}))
	require.NoError(t, err)
	assert.False(t, saved.Session.Exercises[0].Sets[0].IsPR)
}

func TestCreateSession_OnlyImprovingSetsFlagged(t *testing.T) {
	sessionRepo := &stubSessionRepo{}
	prRepo := newStubPRRepo()
	svc := newSessionServiceForTest(sessionRepo, prRepo)

	saved, err := svc.Create(context.Background(), uuid.New(), createReq("2025-03-10",
		request_models.SetInput{Weight: 100, Reps: 5},
		request_models.SetInput{Weight: 90, Reps: 5},
		request_models.SetInput{Weight: 105, Reps: 5}))
	require.NoError(t, err)

	sets := saved.Session.Exercises[0].Sets
	require.Len(t, sets, 3)
	assert.True(t, sets[0].IsPR)
	assert.False(t, sets[1].IsPR)
	assert.True(t, sets[2].IsPR)

	// The stored record is the session's best, not the first PR.
	assert.Equal(t, 105.0, prRepo.records["Bench Press"].Weight)
}

func TestCreateSession_RewardsAreReported(t *testing.T) {
	sessionRepo := &stubSessionRepo{}
	prRepo := newStubPRRepo()
	svc := newSessionServiceForTest(sessionRepo, prRepo)

	saved, err := svc.Create(context.Background(), uuid.New(), createReq("2025-03-10",
		request_models.SetInput{Weight: 100, Reps: 5}))
	require.NoError(t, err)

	// +1 for the log, +2 for the single PR.
	assert.Equal(t, LogReward+PRReward, saved.TokensEarned)
	assert.Len(t, saved.EarnLines, 2)
}

func TestCreateSession_RewardFailureDoesNotFailSave(t *testing.T) {
	sessionRepo := &stubSessionRepo{}
	prRepo := newStubPRRepo()
	tokenService := newTokenService(&stubTokenRepo{awardErr: errors.New("ledger down")}, sessionRepo)
	svc := NewSessionService(sessionRepo, prRepo, &stubProgramRepo{}, tokenService, nil)

	saved, err := svc.Create(context.Background(), uuid.New(), createReq("2025-03-10",
		request_models.SetInput{Weight: 100, Reps: 5}))
	require.NoError(t, err)
	require.NotNil(t, saved)

	// The session is durable even though the reward write failed.
	assert.Len(t, sessionRepo.sessions, 1)
	assert.Equal(t, int64(0), saved.TokensEarned)
	assert.Empty(t, saved.EarnLines)
}

func TestCreateSession_RejectsBadInput(t *testing.T) {
	svc := newSessionServiceForTest(&stubSessionRepo{}, newStubPRRepo())

	_, err := svc.Create(context.Background(), uuid.New(), createReq("10/03/2025",
		request_models.SetInput{Weight: 100, Reps: 5}))
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.Create(context.Background(), uuid.New(), &request_models.CreateSessionRequest{
		Date: "2025-03-10", Type: "push",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.Create(context.Background(), uuid.New(), createReq("2025-03-10",
		request_models.SetInput{Weight: -5, Reps: 5}))
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
