package redis_fx

import (
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"tiketku/internal/infra"
	"tiketku/internal/queue"
	"tiketku/internal/services"
)

var Module = fx.Provide(
	provideRedis,
	provideCacheService,
	provideAsynqClient,
	provideExpiryScheduler,
)

func provideRedis() *redis.Client {
	return infra.InitRedis()
}

func provideCacheService(client *redis.Client) services.CacheServiceInterface {
	return services.NewRedisCacheService(client)
}

func provideAsynqClient() *asynq.Client {
	return asynq.NewClient(infra.AsynqRedisOpt())
}

func provideExpiryScheduler(client *asynq.Client) queue.ExpiryScheduler {
	return queue.NewExpiryScheduler(client)
}
