package locker

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/domainmart/domainmart/internal/config"
)

const lockPrefix = "domainmart:lock:"

// Module wires the order lock implementation. Redis gives cross-process
// exclusion; without it a single-process in-memory locker is used.
var Module = fx.Provide(newLocker)

type lockerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newLocker(p lockerParams) (Locker, error) {
	if p.Config.RedisAddr == "" {
		p.Logger.Info("redis not configured, using in-process order locks")
		return NewMemoryLocker(), nil
	}

	client := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return NewRedisLocker(client, lockPrefix), nil
}
