package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/google/uuid"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
)

type ProgramRepository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*db_models.Program, error)
	// Save upserts the user's template and appends a version snapshot in one
	// transaction, returning the new version number.
	Save(ctx context.Context, userID uuid.UUID, exercises []byte, savedAt string) (int32, error)
	LatestVersion(ctx context.Context, userID uuid.UUID) (int32, error)
	ListVersions(ctx context.Context, userID uuid.UUID) ([]db_models.ProgramVersion, error)
}

type programRepository struct {
	db *gorm.DB
}

func NewProgramRepository(db *gorm.DB) ProgramRepository {
	return &programRepository{db: db}
}

func (p *programRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*db_models.Program, error) {
	var program db_models.Program
	err := p.db.WithContext(ctx).First(&program, "user_id = ?", userID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &program, nil
}

func (p *programRepository) Save(ctx context.Context, userID uuid.UUID, exercises []byte, savedAt string) (int32, error) {
	var version int32
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var latest db_models.ProgramVersion
		err := tx.Where("user_id = ?", userID).
			Order("version DESC").
			First(&latest).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		version = latest.Version + 1

		program := &db_models.Program{
			UserID:    userID,
			Exercises: exercises,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"exercises", "updated_at"}),
		}).Create(program).Error; err != nil {
			return err
		}

		snapshot := &db_models.ProgramVersion{
			UserID:    userID,
			Version:   version,
			SavedAt:   savedAt,
			Exercises: exercises,
		}
		return tx.Create(snapshot).Error
	})
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (p *programRepository) LatestVersion(ctx context.Context, userID uuid.UUID) (int32, error) {
	var latest db_models.ProgramVersion
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("version DESC").
		First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return latest.Version, nil
}

func (p *programRepository) ListVersions(ctx context.Context, userID uuid.UUID) ([]db_models.ProgramVersion, error) {
	var versions []db_models.ProgramVersion
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("version DESC").
		Find(&versions).Error
	if err != nil {
		return nil, err
	}
	return versions, nil
}
