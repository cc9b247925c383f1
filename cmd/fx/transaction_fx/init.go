package transaction_fx

import (
	"os"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"tiketku/internal/api/controllers"
	"tiketku/internal/queue"
	"tiketku/internal/repositories"
	"tiketku/internal/services"
)

var Module = fx.Provide(
	provideTransactionRepository, provideTransactionService, provideTransactionController,
)

func provideTransactionRepository(db *gorm.DB, tickets repositories.TicketRepository) repositories.TransactionRepository {
	return repositories.NewTransactionRepository(db, tickets)
}

func provideTransactionService(
	transactions repositories.TransactionRepository,
	tickets repositories.TicketRepository,
	users repositories.UserRepository,
	scheduler queue.ExpiryScheduler,
	storage services.StorageServiceInterface,
	mail services.MailServiceInterface,
) services.TransactionServiceInterface {
	expiry, err := time.ParseDuration(os.Getenv("TRANSACTION_EXPIRY"))
	if err != nil {
		expiry = services.DefaultExpiryWindow
	}

	return services.NewTransactionService(transactions, tickets, users, scheduler, storage, mail, expiry)
}

func provideTransactionController(transactionService services.TransactionServiceInterface) *controllers.TransactionController {
	return controllers.NewTransactionController(transactionService)
}
