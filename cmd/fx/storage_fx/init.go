package storage_fx

import (
	"os"

	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"tiketku/internal/services"
)

var Module = fx.Provide(provideStorageService)

func provideStorageService() services.StorageServiceInterface {
	instance, err := services.NewCloudinaryStorageService(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		logrus.WithError(err).Fatal("error initializing storage service")
	}
	return instance
}
