package services

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/request_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/response_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

type ProgramServiceInterface interface {
	Get(ctx context.Context, userID uuid.UUID) (*response_models.ProgramResponse, error)
	Save(ctx context.Context, userID uuid.UUID, req *request_models.SaveProgramRequest) (int32, error)
	ListVersions(ctx context.Context, userID uuid.UUID) ([]response_models.ProgramVersionResponse, error)
}

type ProgramService struct {
	programRepo repositories.ProgramRepository
}

func NewProgramService(programRepo repositories.ProgramRepository) ProgramServiceInterface {
	return &ProgramService{
		programRepo: programRepo,
	}
}

type programDoc struct {
	Push []request_models.ProgramExercise `json:"push"`
	Pull []request_models.ProgramExercise `json:"pull"`
	Legs []request_models.ProgramExercise `json:"legs"`
}

// defaultProgram seeds new accounts with a plain push/pull/legs split.
func defaultProgram() programDoc {
	return programDoc{
		Push: []request_models.ProgramExercise{
			{Name: "Bench Press", Order: 1},
			{Name: "Overhead Press", Order: 2},
			{Name: "Incline Dumbbell Press", Order: 3},
			{Name: "Lateral Raise", Order: 4},
			{Name: "Triceps Pushdown", Order: 5},
		},
		Pull: []request_models.ProgramExercise{
			{Name: "Deadlift", Order: 1},
			{Name: "Pull Up", Order: 2},
			{Name: "Barbell Row", Order: 3},
			{Name: "Face Pull", Order: 4},
			{Name: "Biceps Curl", Order: 5},
		},
		Legs: []request_models.ProgramExercise{
			{Name: "Squat", Order: 1},
			{Name: "Romanian Deadlift", Order: 2},
			{Name: "Leg Press", Order: 3},
			{Name: "Leg Curl", Order: 4},
			{Name: "Calf Raise", Order: 5},
		},
	}
}

func (p *ProgramService) Get(ctx context.Context, userID uuid.UUID) (*response_models.ProgramResponse, error) {
	program, err := p.programRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	var doc programDoc
	version := int32(0)
	if program == nil {
		doc = defaultProgram()
	} else {
		if err := json.Unmarshal(program.Exercises, &doc); err != nil {
			return nil, utils.ErrDatabaseError
		}
		version, err = p.programRepo.LatestVersion(ctx, userID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	return &response_models.ProgramResponse{
		Push:    toProgramExercises(doc.Push),
		Pull:    toProgramExercises(doc.Pull),
		Legs:    toProgramExercises(doc.Legs),
		Version: version,
	}, nil
}

func (p *ProgramService) Save(ctx context.Context, userID uuid.UUID, req *request_models.SaveProgramRequest) (int32, error) {
	if len(req.Push) == 0 && len(req.Pull) == 0 && len(req.Legs) == 0 {
		return 0, utils.ErrInvalidInput
	}

	doc := programDoc{
		Push: normalizeProgramDay(req.Push),
		Pull: normalizeProgramDay(req.Pull),
		Legs: normalizeProgramDay(req.Legs),
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return 0, utils.ErrInvalidInput
	}

	version, err := p.programRepo.Save(ctx, userID, payload, utils.TodayStr())
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	return version, nil
}

func (p *ProgramService) ListVersions(ctx context.Context, userID uuid.UUID) ([]response_models.ProgramVersionResponse, error) {
	versions, err := p.programRepo.ListVersions(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.ProgramVersionResponse, 0, len(versions))
	for _, v := range versions {
		result = append(result, response_models.ProgramVersionResponse{
			Version: v.Version,
			SavedAt: v.SavedAt,
		})
	}
	return result, nil
}

// normalizeProgramDay sorts by the given order and renumbers from 1, so a
// client can submit sparse or duplicate order values.
func normalizeProgramDay(exercises []request_models.ProgramExercise) []request_models.ProgramExercise {
	day := make([]request_models.ProgramExercise, len(exercises))
	copy(day, exercises)
	sort.SliceStable(day, func(i, j int) bool {
		return day[i].Order < day[j].Order
	})
	for i := range day {
		day[i].Order = int32(i + 1)
	}
	return day
}

func toProgramExercises(exercises []request_models.ProgramExercise) []response_models.ProgramExerciseResponse {
	result := make([]response_models.ProgramExerciseResponse, 0, len(exercises))
	for _, ex := range exercises {
		result = append(result, response_models.ProgramExerciseResponse{
			Name:  ex.Name,
			Order: ex.Order,
		})
	}
	return result
}
