package objectstore

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/ashigaru9/pgw-sessiond/internal/config"
)

// NewRedisClient dials and pings a Redis server, returning a ready
// client or an error.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.RedisPass,
		DB:           0,
		DialTimeout:  config.RedisConnectTimeout,
		ReadTimeout:  config.RedisCommandTimeout,
		WriteTimeout: config.RedisCommandTimeout,
		PoolSize:     config.RedisPoolSize,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), config.RedisConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
