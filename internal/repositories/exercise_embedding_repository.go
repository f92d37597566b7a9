package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
)

type ExerciseEmbeddingRepository interface {
	Upsert(ctx context.Context, name string, embedding pgvector.Vector) error
	Exists(ctx context.Context, name string) (bool, error)
	// Nearest returns up to k exercise names ordered by vector distance,
	// excluding the query name itself.
	Nearest(ctx context.Context, embedding pgvector.Vector, excludeName string, k int) ([]string, error)
}

type exerciseEmbeddingRepository struct {
	db *gorm.DB
}

func NewExerciseEmbeddingRepository(db *gorm.DB) ExerciseEmbeddingRepository {
	return &exerciseEmbeddingRepository{db: db}
}

func (e *exerciseEmbeddingRepository) Upsert(ctx context.Context, name string, embedding pgvector.Vector) error {
	row := &db_models.ExerciseEmbedding{
		Name:      name,
		Embedding: embedding,
	}
	return e.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding", "updated_at"}),
		}).
		Create(row).Error
}

func (e *exerciseEmbeddingRepository) Exists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := e.db.WithContext(ctx).
		Model(&db_models.ExerciseEmbedding{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (e *exerciseEmbeddingRepository) Nearest(ctx context.Context, embedding pgvector.Vector, excludeName string, k int) ([]string, error) {
	if k <= 0 {
		k = 5
	}
	var names []string
	err := e.db.WithContext(ctx).
		Model(&db_models.ExerciseEmbedding{}).
		Where("name <> ?", excludeName).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{embedding}},
		}).
		Limit(k).
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
