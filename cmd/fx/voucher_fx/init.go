package voucher_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tiketku/internal/api/controllers"
	"tiketku/internal/repositories"
	"tiketku/internal/services"
)

var Module = fx.Provide(
	provideVoucherRepository, provideVoucherService, provideVoucherController,
)

func provideVoucherRepository(db *gorm.DB) repositories.VoucherRepository {
	return repositories.NewVoucherRepository(db)
}

func provideVoucherService(vouchers repositories.VoucherRepository, events repositories.EventRepository) services.VoucherServiceInterface {
	return services.NewVoucherService(vouchers, events)
}

func provideVoucherController(voucherService services.VoucherServiceInterface) *controllers.VoucherController {
	return controllers.NewVoucherController(voucherService)
}
