package memcache_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"seraphina/internal/config"
	"seraphina/internal/infra"
	mem "seraphina/pkg/memcache"
)

var Module = fx.Provide(provideRedisClient, provideOTPStore)

// provideRedisClient returns nil when REDIS_ADDR is unset.
func provideRedisClient(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) *redis.Client {
	client := infra.NewRedisClient(cfg, log)
	if client != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
	}
	return client
}

func provideOTPStore(client *redis.Client) mem.OTPStore {
	if client == nil {
		return mem.NewMemoryOTPStore()
	}
	return mem.NewRedisOTPStore(client)
}
