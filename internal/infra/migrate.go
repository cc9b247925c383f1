package infra

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	dbm "tiketku/internal/models/db_models"
)

func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&dbm.User{},
		&dbm.PointBalance{},
		&dbm.Event{},
		&dbm.Ticket{},
		&dbm.Voucher{},
		&dbm.Transaction{},
		&dbm.TransactionDetail{},
	)
	if err != nil {
		logrus.WithError(err).Fatal("error running migrations")
	}
}
