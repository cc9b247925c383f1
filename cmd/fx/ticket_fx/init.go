package ticket_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tiketku/internal/api/controllers"
	"tiketku/internal/repositories"
	"tiketku/internal/services"
)

var Module = fx.Provide(
	provideTicketRepository, provideTicketService, provideTicketController,
)

func provideTicketRepository(db *gorm.DB) repositories.TicketRepository {
	return repositories.NewTicketRepository(db)
}

func provideTicketService(tickets repositories.TicketRepository, events repositories.EventRepository) services.TicketServiceInterface {
	return services.NewTicketService(tickets, events)
}

func provideTicketController(ticketService services.TicketServiceInterface) *controllers.TicketController {
	return controllers.NewTicketController(ticketService)
}
