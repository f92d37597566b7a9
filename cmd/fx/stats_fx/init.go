package stats_fx

import (
	"go.uber.org/fx"

	"github.com/pawcz12345-dotcom/ironpact/internal/api/controllers"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	"github.com/pawcz12345-dotcom/ironpact/internal/services"
)

var Module = fx.Provide(
	provideStatsController, provideStatsService)

func provideStatsService(sessionRepo repositories.SessionRepository) services.StatsServiceInterface {
	return services.NewStatsService(sessionRepo)
}

func provideStatsController(statsService services.StatsServiceInterface) *controllers.StatsController {
	return controllers.NewStatsController(statsService)
}
