package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/google/uuid"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
)

type FriendRepository interface {
	Insert(ctx context.Context, conn *db_models.FriendConnection) error
	FindById(ctx context.Context, connectionID uuid.UUID) (*db_models.FriendConnection, error)
	// FindBetween returns any connection linking the two accounts in either
	// direction, regardless of status.
	FindBetween(ctx context.Context, a, b uuid.UUID) (*db_models.FriendConnection, error)
	UpdateStatus(ctx context.Context, connectionID uuid.UUID, status db_models.FriendStatus) error
	ListAcceptedFor(ctx context.Context, userID uuid.UUID) ([]db_models.FriendConnection, error)
	ListPendingFor(ctx context.Context, userID uuid.UUID) ([]db_models.FriendConnection, error)
}

type friendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (f *friendRepository) Insert(ctx context.Context, conn *db_models.FriendConnection) error {
	return f.db.WithContext(ctx).Create(conn).Error
}

func (f *friendRepository) FindById(ctx context.Context, connectionID uuid.UUID) (*db_models.FriendConnection, error) {
	var conn db_models.FriendConnection
	err := f.db.WithContext(ctx).First(&conn, "id = ?", connectionID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &conn, nil
}

func (f *friendRepository) FindBetween(ctx context.Context, a, b uuid.UUID) (*db_models.FriendConnection, error) {
	var conn db_models.FriendConnection
	err := f.db.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)", a, b, b, a).
		First(&conn).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &conn, nil
}

func (f *friendRepository) UpdateStatus(ctx context.Context, connectionID uuid.UUID, status db_models.FriendStatus) error {
	return f.db.WithContext(ctx).
		Model(&db_models.FriendConnection{}).
		Where("id = ?", connectionID).
		Update("status", status).Error
}

func (f *friendRepository) ListAcceptedFor(ctx context.Context, userID uuid.UUID) ([]db_models.FriendConnection, error) {
	var conns []db_models.FriendConnection
	err := f.db.WithContext(ctx).
		Preload("Requester").
		Preload("Addressee").
		Where("status = ? AND (requester_id = ? OR addressee_id = ?)", db_models.FriendAccepted, userID, userID).
		Find(&conns).Error
	if err != nil {
		return nil, err
	}
	return conns, nil
}

func (f *friendRepository) ListPendingFor(ctx context.Context, userID uuid.UUID) ([]db_models.FriendConnection, error) {
	var conns []db_models.FriendConnection
	err := f.db.WithContext(ctx).
		Preload("Requester").
		Where("status = ? AND addressee_id = ?", db_models.FriendPending, userID).
		Find(&conns).Error
	if err != nil {
		return nil, err
	}
	return conns, nil
}
