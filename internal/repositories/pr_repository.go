package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/google/uuid"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
)

type PRRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.PersonalRecord, error)
	FindByExercise(ctx context.Context, userID uuid.UUID, exerciseName string) (*db_models.PersonalRecord, error)
	Upsert(ctx context.Context, pr *db_models.PersonalRecord) error
}

type prRepository struct {
	db *gorm.DB
}

func NewPRRepository(db *gorm.DB) PRRepository {
	return &prRepository{db: db}
}

func (p *prRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.PersonalRecord, error) {
	var prs []db_models.PersonalRecord
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("e1rm DESC").
		Find(&prs).Error
	if err != nil {
		return nil, err
	}
	return prs, nil
}

func (p *prRepository) FindByExercise(ctx context.Context, userID uuid.UUID, exerciseName string) (*db_models.PersonalRecord, error) {
	var pr db_models.PersonalRecord
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND exercise_name = ?", userID, exerciseName).
		First(&pr).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &pr, nil
}

func (p *prRepository) Upsert(ctx context.Context, pr *db_models.PersonalRecord) error {
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "exercise_name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"weight", "reps", "e1rm", "session_id", "achieved_at", "updated_at",
			}),
		}).
		Create(pr).Error
}
