package db_models

import "github.com/pgvector/pgvector-go"

// ExerciseEmbedding backs the similar-exercise lookup. One row per distinct
// exercise name across all users.
type ExerciseEmbedding struct {
	BaseModel
	Name      string          `gorm:"uniqueIndex"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
}
