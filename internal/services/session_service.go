package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/request_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/response_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

type SessionServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *request_models.CreateSessionRequest) (*response_models.SessionSavedResponse, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*response_models.SessionResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]response_models.SessionResponse, error)
	ListByDate(ctx context.Context, userID uuid.UUID, date string) ([]response_models.SessionResponse, error)
	Update(ctx context.Context, userID, sessionID uuid.UUID, req *request_models.UpdateSessionRequest) error
	Delete(ctx context.Context, userID, sessionID uuid.UUID) error
	PersonalRecords(ctx context.Context, userID uuid.UUID) ([]response_models.PersonalRecordResponse, error)
}

type SessionService struct {
	sessionRepo  repositories.SessionRepository
	prRepo       repositories.PRRepository
	programRepo  repositories.ProgramRepository
	tokenService TokenServiceInterface
	embedService EmbeddingServiceInterface
}

func NewSessionService(
	sessionRepo repositories.SessionRepository,
	prRepo repositories.PRRepository,
	programRepo repositories.ProgramRepository,
	tokenService TokenServiceInterface,
	embedService EmbeddingServiceInterface,
) SessionServiceInterface {
	return &SessionService{
		sessionRepo:  sessionRepo,
		prRepo:       prRepo,
		programRepo:  programRepo,
		tokenService: tokenService,
		embedService: embedService,
	}
}

func (s *SessionService) Create(ctx context.Context, userID uuid.UUID, req *request_models.CreateSessionRequest) (*response_models.SessionSavedResponse, error) {
	if utils.ParseDate(req.Date).IsZero() {
		return nil, utils.ErrInvalidInput
	}
	if len(req.Exercises) == 0 {
		return nil, utils.ErrInvalidInput
	}

	session := &db_models.Session{
		UserID:          userID,
		Date:            req.Date,
		Type:            db_models.SessionType(req.Type),
		DurationMinutes: req.DurationMinutes,
		Bodyweight:      req.Bodyweight,
		Notes:           req.Notes,
	}
	if version, err := s.programRepo.LatestVersion(ctx, userID); err == nil && version > 0 {
		session.ProgramVersion = &version
	}

	newPRs, err := s.buildExercises(ctx, userID, req, session)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Insert(ctx, session); err != nil {
		return nil, utils.ErrDatabaseError
	}

	for i := range newPRs {
		newPRs[i].SessionID = &session.ID
		if err := s.prRepo.Upsert(ctx, &newPRs[i]); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	// The session row is durable at this point. A failed reward write must
	// not turn the save into an error; the caller keeps the session and the
	// ledger simply misses the award.
	earned, lines, err := s.tokenService.RewardSessionSave(ctx, userID, session)
	if err != nil {
		log.Printf("session %s saved but reward write failed: %v", session.ID, err)
	}

	// Embedding upkeep is best effort and must never fail the save.
	if s.embedService != nil {
		for _, ex := range session.Exercises {
			s.embedService.EnsureIndexed(ctx, ex.Name)
		}
	}

	return &response_models.SessionSavedResponse{
		Session:      toSessionResponse(session),
		TokensEarned: earned,
		EarnLines:    lines,
	}, nil
}

// buildExercises fills session.Exercises from the request, flagging any set
// whose estimated 1RM strictly beats the stored record for that exercise.
// It returns the record rows to upsert after the session row exists.
func (s *SessionService) buildExercises(ctx context.Context, userID uuid.UUID, req *request_models.CreateSessionRequest, session *db_models.Session) ([]db_models.PersonalRecord, error) {
	var newPRs []db_models.PersonalRecord

	for i, exInput := range req.Exercises {
		name := strings.TrimSpace(exInput.Name)
		if name == "" {
			return nil, utils.ErrInvalidInput
		}

		order := exInput.Order
		if order == 0 {
			order = int32(i + 1)
		}
		exercise := db_models.SessionExercise{
			Name:  name,
			Order: order,
		}

		incumbent, err := s.prRepo.FindByExercise(ctx, userID, name)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		var bestE1RM int64
		if incumbent != nil {
			bestE1RM = incumbent.E1RM
		}

		var sessionBest *db_models.PersonalRecord
		for j, setInput := range exInput.Sets {
			if setInput.Weight < 0 || setInput.Reps < 0 {
				return nil, utils.ErrInvalidInput
			}
			set := db_models.SetEntry{
				SetNumber: int32(j + 1),
				Weight:    setInput.Weight,
				Reps:      setInput.Reps,
				RIR:       setInput.RIR,
			}

			if e1rm := CalcE1RM(setInput.Weight, setInput.Reps); e1rm > bestE1RM {
				set.IsPR = true
				bestE1RM = e1rm
				sessionBest = &db_models.PersonalRecord{
					UserID:       userID,
					ExerciseName: name,
					Weight:       setInput.Weight,
					Reps:         setInput.Reps,
					E1RM:         e1rm,
					AchievedAt:   req.Date,
				}
			}
			exercise.Sets = append(exercise.Sets, set)
		}

		if sessionBest != nil {
			newPRs = append(newPRs, *sessionBest)
		}
		session.Exercises = append(session.Exercises, exercise)
	}

	return newPRs, nil
}

func (s *SessionService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*response_models.SessionResponse, error) {
	session, err := s.sessionRepo.FindById(ctx, userID, sessionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil {
		return nil, utils.ErrRecordNotFound
	}
	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *SessionService) List(ctx context.Context, userID uuid.UUID) ([]response_models.SessionResponse, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, toSessionResponse(&sessions[i]))
	}
	return result, nil
}

func (s *SessionService) ListByDate(ctx context.Context, userID uuid.UUID, date string) ([]response_models.SessionResponse, error) {
	if utils.ParseDate(date).IsZero() {
		return nil, utils.ErrInvalidInput
	}

	sessions, err := s.sessionRepo.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, toSessionResponse(&sessions[i]))
	}
	return result, nil
}

func (s *SessionService) Update(ctx context.Context, userID, sessionID uuid.UUID, req *request_models.UpdateSessionRequest) error {
	fields := map[string]interface{}{}
	if req.Date != nil {
		if utils.ParseDate(*req.Date).IsZero() {
			return utils.ErrInvalidInput
		}
		fields["date"] = *req.Date
	}
	if req.Type != nil {
		t := db_models.SessionType(*req.Type)
		if t != db_models.SessionPush && t != db_models.SessionPull && t != db_models.SessionLegs {
			return utils.ErrInvalidInput
		}
		fields["type"] = t
	}
	if req.DurationMinutes != nil {
		fields["duration_minutes"] = *req.DurationMinutes
	}
	if req.Bodyweight != nil {
		fields["bodyweight"] = *req.Bodyweight
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if len(fields) == 0 {
		return nil
	}

	err := s.sessionRepo.UpdateFields(ctx, userID, sessionID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrRecordNotFound
		}
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *SessionService) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	err := s.sessionRepo.Delete(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrRecordNotFound
		}
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *SessionService) PersonalRecords(ctx context.Context, userID uuid.UUID) ([]response_models.PersonalRecordResponse, error) {
	prs, err := s.prRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.PersonalRecordResponse, 0, len(prs))
	for _, pr := range prs {
		result = append(result, response_models.PersonalRecordResponse{
			ExerciseName: pr.ExerciseName,
			Weight:       pr.Weight,
			Reps:         pr.Reps,
			E1RM:         pr.E1RM,
			AchievedAt:   pr.AchievedAt,
		})
	}
	return result, nil
}

func toSessionResponse(session *db_models.Session) response_models.SessionResponse {
	resp := response_models.SessionResponse{
		ID:              session.ID,
		Date:            session.Date,
		Type:            string(session.Type),
		DurationMinutes: session.DurationMinutes,
		Bodyweight:      session.Bodyweight,
		Notes:           session.Notes,
		ProgramVersion:  session.ProgramVersion,
	}
	for _, ex := range session.Exercises {
		exResp := response_models.ExerciseResponse{
			Name:  ex.Name,
			Order: ex.Order,
		}
		for _, set := range ex.Sets {
			exResp.Sets = append(exResp.Sets, response_models.SetResponse{
				SetNumber: set.SetNumber,
				Weight:    set.Weight,
				Reps:      set.Reps,
				RIR:       set.RIR,
				IsPR:      set.IsPR,
			})
		}
		resp.Exercises = append(resp.Exercises, exResp)
	}
	return resp
}
