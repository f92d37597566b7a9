package program_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/pawcz12345-dotcom/ironpact/internal/api/controllers"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	"github.com/pawcz12345-dotcom/ironpact/internal/services"
)

var Module = fx.Provide(
	provideProgramController, provideProgramService, provideProgramRepo)

func provideProgramRepo(db *gorm.DB) repositories.ProgramRepository {
	return repositories.NewProgramRepository(db)
}

func provideProgramService(programRepo repositories.ProgramRepository) services.ProgramServiceInterface {
	return services.NewProgramService(programRepo)
}

func provideProgramController(programService services.ProgramServiceInterface) *controllers.ProgramController {
	return controllers.NewProgramController(programService)
}
