package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"tiketku/cmd/fx/db_fx"
	"tiketku/cmd/fx/ticket_fx"
	"tiketku/cmd/fx/transaction_fx"
	"tiketku/internal/infra"
	"tiketku/internal/queue"
	"tiketku/internal/repositories"
	"tiketku/internal/workers"
)

// The expiry worker runs as its own process so delayed jobs keep firing
// while the API restarts or scales independently.
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, using environment")
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	app := fx.New(
		db_fx.Module,
		ticket_fx.Module,
		transaction_fx.Module,

		fx.Provide(provideExpiryWorker),
		fx.Invoke(StartWorker),
	)

	app.Run()
}

func provideExpiryWorker(transactions repositories.TransactionRepository) *workers.ExpiryWorker {
	return workers.NewExpiryWorker(transactions)
}

func StartWorker(lc fx.Lifecycle, worker *workers.ExpiryWorker) {
	srv := asynq.NewServer(infra.AsynqRedisOpt(), asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			queue.QueueTransactions: 1,
		},
		ErrorHandler: workers.LogDroppedJobs(),
	})

	mux := asynq.NewServeMux()
	worker.Register(mux)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logrus.Info("starting expiry worker")
				if err := srv.Run(mux); err != nil {
					logrus.WithError(err).Fatal("failed to start expiry worker")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logrus.Info("stopping expiry worker")
			srv.Shutdown()
			return nil
		},
	})
}
