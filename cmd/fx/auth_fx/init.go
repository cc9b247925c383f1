package auth_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tiketku/internal/api/controllers"
	"tiketku/internal/repositories"
	"tiketku/internal/services"
)

var Module = fx.Provide(
	provideUserRepository, provideAuthService, provideAuthController,
)

func provideUserRepository(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAuthService(users repositories.UserRepository) services.AuthServiceInterface {
	return services.NewAuthService(users)
}

func provideAuthController(authService services.AuthServiceInterface) *controllers.AuthController {
	return controllers.NewAuthController(authService)
}
