package coach_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/pawcz12345-dotcom/ironpact/internal/api/controllers"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	"github.com/pawcz12345-dotcom/ironpact/internal/services"
	mem "github.com/pawcz12345-dotcom/ironpact/pkg/memcache"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

var Module = fx.Provide(
	provideCoachController, provideCoachService, provideCoachClient,
	provideRecommendationRepo, provideEmbeddingService,
	provideEmbeddingClient, provideEmbeddingRepo)

// provideCoachClient picks the provider from COACH_PROVIDER: "gemini" or
// "openai" (default).
func provideCoachClient() utils.CoachClientInterface {
	switch os.Getenv("COACH_PROVIDER") {
	case "gemini":
		client, err := utils.NewGeminiCoachClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatalf("Failed to init gemini client: %v", err)
		}
		return client
	default:
		return utils.NewOpenAICoachClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"))
	}
}

func provideRecommendationRepo(db *gorm.DB) repositories.RecommendationRepository {
	return repositories.NewRecommendationRepository(db)
}

func provideCoachService(
	client utils.CoachClientInterface,
	recRepo repositories.RecommendationRepository,
	tokenRepo repositories.TokenRepository,
	sessionRepo repositories.SessionRepository,
	balanceCache mem.BalanceStore,
) services.CoachServiceInterface {
	return services.NewCoachService(client, recRepo, tokenRepo, sessionRepo, balanceCache)
}

func provideEmbeddingClient() utils.EmbeddingClientInterface {
	return utils.NewOpenAIEmbeddingClient(os.Getenv("OPENAI_API_KEY"))
}

func provideEmbeddingRepo(db *gorm.DB) repositories.ExerciseEmbeddingRepository {
	return repositories.NewExerciseEmbeddingRepository(db)
}

func provideEmbeddingService(
	client utils.EmbeddingClientInterface,
	repo repositories.ExerciseEmbeddingRepository,
) services.EmbeddingServiceInterface {
	return services.NewEmbeddingService(client, repo)
}

func provideCoachController(
	coachService services.CoachServiceInterface,
	embedService services.EmbeddingServiceInterface,
) *controllers.CoachController {
	return controllers.NewCoachController(coachService, embedService)
}
