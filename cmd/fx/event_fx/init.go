package event_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tiketku/internal/api/controllers"
	"tiketku/internal/repositories"
	"tiketku/internal/services"
)

var Module = fx.Provide(
	provideEventRepository, provideEventService, provideEventController,
)

func provideEventRepository(db *gorm.DB) repositories.EventRepository {
	return repositories.NewEventRepository(db)
}

func provideEventService(events repositories.EventRepository, cache services.CacheServiceInterface) services.EventServiceInterface {
	return services.NewEventService(events, cache)
}

func provideEventController(eventService services.EventServiceInterface) *controllers.EventController {
	return controllers.NewEventController(eventService)
}
