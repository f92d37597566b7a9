package friend_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/pawcz12345-dotcom/ironpact/internal/api/controllers"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	"github.com/pawcz12345-dotcom/ironpact/internal/services"
)

var Module = fx.Provide(
	provideFriendController, provideFriendService, provideFriendRepo)

func provideFriendRepo(db *gorm.DB) repositories.FriendRepository {
	return repositories.NewFriendRepository(db)
}

func provideFriendService(
	friendRepo repositories.FriendRepository,
	accountRepo repositories.AccountRepository,
	sessionRepo repositories.SessionRepository,
) services.FriendServiceInterface {
	return services.NewFriendService(friendRepo, accountRepo, sessionRepo)
}

func provideFriendController(friendService services.FriendServiceInterface) *controllers.FriendController {
	return controllers.NewFriendController(friendService)
}
