package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/pawcz12345-dotcom/ironpact/internal/api/controllers"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	"github.com/pawcz12345-dotcom/ironpact/internal/services"
)

var Module = fx.Provide(
	provideAccountController, provideAccountService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(accountRepo repositories.AccountRepository) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
