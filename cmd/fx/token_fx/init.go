package token_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/pawcz12345-dotcom/ironpact/internal/api/controllers"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	"github.com/pawcz12345-dotcom/ironpact/internal/services"
	mem "github.com/pawcz12345-dotcom/ironpact/pkg/memcache"
)

var Module = fx.Provide(
	provideTokenController, provideTokenService, provideTokenRepo)

func provideTokenRepo(db *gorm.DB) repositories.TokenRepository {
	return repositories.NewTokenRepository(db)
}

func provideTokenService(
	tokenRepo repositories.TokenRepository,
	sessionRepo repositories.SessionRepository,
	balanceCache mem.BalanceStore,
) services.TokenServiceInterface {
	return services.NewTokenService(tokenRepo, sessionRepo, balanceCache)
}

func provideTokenController(tokenService services.TokenServiceInterface) *controllers.TokenController {
	return controllers.NewTokenController(tokenService)
}
