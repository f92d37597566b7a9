package session_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/pawcz12345-dotcom/ironpact/internal/api/controllers"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	"github.com/pawcz12345-dotcom/ironpact/internal/services"
)

var Module = fx.Provide(
	provideSessionController, provideSessionService, provideSessionRepo, providePRRepo)

func provideSessionRepo(db *gorm.DB) repositories.SessionRepository {
	return repositories.NewSessionRepository(db)
}

func providePRRepo(db *gorm.DB) repositories.PRRepository {
	return repositories.NewPRRepository(db)
}

func provideSessionService(
	sessionRepo repositories.SessionRepository,
	prRepo repositories.PRRepository,
	programRepo repositories.ProgramRepository,
	tokenService services.TokenServiceInterface,
	embedService services.EmbeddingServiceInterface,
) services.SessionServiceInterface {
	return services.NewSessionService(sessionRepo, prRepo, programRepo, tokenService, embedService)
}

func provideSessionController(sessionService services.SessionServiceInterface) *controllers.SessionController {
	return controllers.NewSessionController(sessionService)
}
