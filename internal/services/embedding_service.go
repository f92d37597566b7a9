package services

import (
	"context"
	"log"
	"strings"

	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

type EmbeddingServiceInterface interface {
	// EnsureIndexed embeds and stores the exercise name if it is not indexed
	// yet. Best effort: failures are logged, never returned.
	EnsureIndexed(ctx context.Context, exerciseName string)
	SimilarExercises(ctx context.Context, exerciseName string, k int) ([]string, error)
}

type EmbeddingService struct {
	client utils.EmbeddingClientInterface
	repo   repositories.ExerciseEmbeddingRepository
}

func NewEmbeddingService(client utils.EmbeddingClientInterface, repo repositories.ExerciseEmbeddingRepository) EmbeddingServiceInterface {
	return &EmbeddingService{
		client: client,
		repo:   repo,
	}
}

func normalizeExercise(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (e *EmbeddingService) EnsureIndexed(ctx context.Context, exerciseName string) {
	name := normalizeExercise(exerciseName)
	if name == "" {
		return
	}

	exists, err := e.repo.Exists(ctx, name)
	if err != nil || exists {
		return
	}

	embedding, err := e.client.GetEmbedding(ctx, name)
	if err != nil {
		log.Printf("embedding for %q failed: %v", name, err)
		return
	}
	if err := e.repo.Upsert(ctx, name, embedding); err != nil {
		log.Printf("embedding upsert for %q failed: %v", name, err)
	}
}

func (e *EmbeddingService) SimilarExercises(ctx context.Context, exerciseName string, k int) ([]string, error) {
	name := normalizeExercise(exerciseName)
	if name == "" {
		return nil, utils.ErrMissingInput
	}

	embedding, err := e.client.GetEmbedding(ctx, name)
	if err != nil {
		return nil, utils.ErrAIService
	}

	names, err := e.repo.Nearest(ctx, embedding, name, k)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return names, nil
}
