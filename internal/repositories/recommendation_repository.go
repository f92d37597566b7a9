package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/google/uuid"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

type RecommendationRepository interface {
	// FindFresh returns the newest cache row for the key created at or after
	// since, or (nil, nil) when none qualifies.
	FindFresh(ctx context.Context, cacheKey string, since time.Time) (*db_models.RecommendationCache, error)
	// InsertPaid charges the account and persists the cache entry in one DB
	// transaction. A failed cache write rolls the charge back, so there is
	// no charged-but-uncached window. Fails with utils.ErrInsufficientTokens
	// when the balance dropped below cost since the caller's pre-check.
	InsertPaid(ctx context.Context, entry *db_models.RecommendationCache, cost int64, reason string) error
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) FindFresh(ctx context.Context, cacheKey string, since time.Time) (*db_models.RecommendationCache, error) {
	var entry db_models.RecommendationCache
	err := r.db.WithContext(ctx).
		Where("cache_key = ? AND created_at >= ?", cacheKey, since.Unix()).
		Order("created_at DESC").
		First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entry, nil
}

func (r *recommendationRepository) InsertPaid(ctx context.Context, entry *db_models.RecommendationCache, cost int64, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.Account{}).
			Where("id = ? AND token_balance >= ?", entry.UserID, cost).
			UpdateColumn("token_balance", gorm.Expr("token_balance - ?", cost))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrInsufficientTokens
		}

		txn := &db_models.TokenTransaction{
			UserID: entry.UserID,
			Amount: cost,
			Type:   db_models.TokenSpent,
			Reason: reason,
		}
		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		return tx.Create(entry).Error
	})
}

// CacheKey builds the composite lookup key for a (user, exercise) pair.
func CacheKey(userID uuid.UUID, exerciseName string) string {
	return "overload_" + userID.String() + "_" + exerciseName
}
