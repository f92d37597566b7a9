package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/google/uuid"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
)

type SessionRepository interface {
	Insert(ctx context.Context, session *db_models.Session) error
	FindById(ctx context.Context, userID, sessionID uuid.UUID) (*db_models.Session, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Session, error)
	ListByUserAndDate(ctx context.Context, userID uuid.UUID, date string) ([]db_models.Session, error)
	UpdateFields(ctx context.Context, userID, sessionID uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, userID, sessionID uuid.UUID) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (s *sessionRepository) Insert(ctx context.Context, session *db_models.Session) error {
	// Nested exercises and sets ride along in one create.
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *sessionRepository) FindById(ctx context.Context, userID, sessionID uuid.UUID) (*db_models.Session, error) {
	var session db_models.Session
	err := s.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_order ASC")
		}).
		Preload("Exercises.Sets", func(db *gorm.DB) *gorm.DB {
			return db.Order("set_number ASC")
		}).
		Where("user_id = ?", userID).
		First(&session, "id = ?", sessionID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

func (s *sessionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Session, error) {
	var sessions []db_models.Session
	err := s.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_order ASC")
		}).
		Preload("Exercises.Sets", func(db *gorm.DB) *gorm.DB {
			return db.Order("set_number ASC")
		}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *sessionRepository) ListByUserAndDate(ctx context.Context, userID uuid.UUID, date string) ([]db_models.Session, error) {
	var sessions []db_models.Session
	err := s.db.WithContext(ctx).
		Preload("Exercises.Sets").
		Where("user_id = ? AND date = ?", userID, date).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *sessionRepository) UpdateFields(ctx context.Context, userID, sessionID uuid.UUID, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).
		Model(&db_models.Session{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *sessionRepository) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session db_models.Session
		if err := tx.Where("user_id = ?", userID).First(&session, "id = ?", sessionID).Error; err != nil {
			return err
		}

		var exerciseIDs []uuid.UUID
		if err := tx.Model(&db_models.SessionExercise{}).
			Where("session_id = ?", session.ID).
			Pluck("id", &exerciseIDs).Error; err != nil {
			return err
		}

		if len(exerciseIDs) > 0 {
			if err := tx.Where("exercise_id IN ?", exerciseIDs).Delete(&db_models.SetEntry{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("session_id = ?", session.ID).Delete(&db_models.SessionExercise{}).Error; err != nil {
			return err
		}
		return tx.Delete(&session).Error
	})
}
