package infra

import (
	"context"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// InitRedis opens the shared Redis client used by the cache layer. The asynq
// client and server connect separately through AsynqRedisOpt against the same
// instance.
func InitRedis() *redis.Client {
	opt, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		logrus.WithError(err).Fatal("invalid REDIS_URL")
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Fatal("error connecting to redis")
	}

	return client
}

func CloseRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		logrus.WithError(err).Error("error closing redis connection")
	} else {
		logrus.Info("redis connection closed")
	}
}

func AsynqRedisOpt() asynq.RedisConnOpt {
	opt, err := asynq.ParseRedisURI(os.Getenv("REDIS_URL"))
	if err != nil {
		logrus.WithError(err).Fatal("invalid REDIS_URL")
	}
	return opt
}
