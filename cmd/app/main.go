package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"tiketku/cmd/fx/auth_fx"
	"tiketku/cmd/fx/db_fx"
	"tiketku/cmd/fx/event_fx"
	"tiketku/cmd/fx/mail_fx"
	"tiketku/cmd/fx/redis_fx"
	"tiketku/cmd/fx/storage_fx"
	"tiketku/cmd/fx/ticket_fx"
	"tiketku/cmd/fx/transaction_fx"
	"tiketku/cmd/fx/voucher_fx"
	"tiketku/internal/api/controllers"
	"tiketku/internal/infra"
	"tiketku/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, using environment")
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	app := fx.New(
		db_fx.Module,
		redis_fx.Module,
		mail_fx.Module,
		storage_fx.Module,
		auth_fx.Module,
		event_fx.Module,
		ticket_fx.Module,
		voucher_fx.Module,
		transaction_fx.Module,

		fx.Invoke(infra.Migrate),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logrus.WithField("port", os.Getenv("PORT")).Info("starting HTTP server")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					logrus.WithError(err).Fatal("failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logrus.Info("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	ticketController *controllers.TicketController,
	voucherController *controllers.VoucherController,
	transactionController *controllers.TransactionController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, authController, eventController, ticketController, voucherController, transactionController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	ticketController *controllers.TicketController,
	voucherController *controllers.VoucherController,
	transactionController *controllers.TransactionController) {

	authGroup := r.Group("/auth")
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)

	eventGroup := r.Group("/events")
	eventGroup.GET("", eventController.ListEvents)
	eventGroup.GET("/:slug", eventController.GetEvent)
	eventGroup.GET("/:slug/tickets", ticketController.ListByEvent)
	eventGroup.POST("", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("organizer"), eventController.CreateEvent)

	r.POST("/tickets", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("organizer"), ticketController.CreateTicket)

	voucherGroup := r.Group("/vouchers")
	voucherGroup.GET("", voucherController.ListVouchers)
	voucherGroup.POST("", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("organizer"), voucherController.CreateVoucher)

	txnGroup := r.Group("/transactions")
	txnGroup.Use(middleware.JWTAuthMiddleware())
	txnGroup.POST("", transactionController.CreateTransaction)
	txnGroup.GET("", transactionController.ListMyTransactions)
	txnGroup.GET("/:reference", transactionController.GetTransaction)
	txnGroup.PATCH("/:reference/payment-proof", transactionController.UploadPaymentProof)
	txnGroup.PATCH("/:reference/decision", middleware.RoleMiddleware("organizer"), transactionController.DecideTransaction)
}
