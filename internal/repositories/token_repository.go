package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/google/uuid"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

// TokenRepository owns every write to the token ledger and to the cached
// Account.TokenBalance. Award and Spend each run as a single DB transaction
// so the transaction row and the balance adjustment land together or not
// at all.
type TokenRepository interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	Award(ctx context.Context, userID uuid.UUID, amount int64, reason string) error
	// Spend fails with utils.ErrInsufficientTokens when the conditional
	// decrement matches no row (balance below amount).
	Spend(ctx context.Context, userID uuid.UUID, amount int64, reason string) error
	ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.TokenTransaction, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (t *tokenRepository) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := t.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("id = ?", userID).
		Pluck("token_balance", &balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (t *tokenRepository) Award(ctx context.Context, userID uuid.UUID, amount int64, reason string) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn := &db_models.TokenTransaction{
			UserID: userID,
			Amount: amount,
			Type:   db_models.TokenEarned,
			Reason: reason,
		}
		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		return tx.Model(&db_models.Account{}).
			Where("id = ?", userID).
			UpdateColumn("token_balance", gorm.Expr("token_balance + ?", amount)).Error
	})
}

func (t *tokenRepository) Spend(ctx context.Context, userID uuid.UUID, amount int64, reason string) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional decrement: the balance check and the write are one
		// statement, so concurrent spends cannot overdraw.
		res := tx.Model(&db_models.Account{}).
			Where("id = ? AND token_balance >= ?", userID, amount).
			UpdateColumn("token_balance", gorm.Expr("token_balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrInsufficientTokens
		}

		txn := &db_models.TokenTransaction{
			UserID: userID,
			Amount: amount,
			Type:   db_models.TokenSpent,
			Reason: reason,
		}
		return tx.Create(txn).Error
	})
}

func (t *tokenRepository) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.TokenTransaction, error) {
	if limit <= 0 {
		limit = 10
	}
	var txns []db_models.TokenTransaction
	err := t.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}
