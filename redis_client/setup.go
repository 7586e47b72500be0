package redis_client

import (
	"context"

	redis "github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/dxpr/content-intel/logging"
)

// NewRedis connects and pings. Callers treat a nil client as "dependency
// absent" rather than an error, so a failed ping is reported, not fatal.
func NewRedis(cnf Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cnf.Addr(),
		Password: cnf.Password,
		DB:       cnf.DB,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	logging.Debug("redis connected",
		zap.String("addr", cnf.Addr()),
		zap.Int("db", cnf.DB))
	return client, nil
}
