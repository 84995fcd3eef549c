package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/config"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/usecase/survey"
)

// setupSessionStore picks the session store implementation configured
// in SESSION_STORE.
func setupSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (survey.Store, error) {
	switch cfg.SessionCfg.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisCfg.Addr,
			Username: cfg.RedisCfg.Username,
			Password: cfg.RedisCfg.Password,
			DB:       cfg.RedisCfg.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}

		logger.Info("using redis session store",
			zap.String("addr", cfg.RedisCfg.Addr),
			zap.Duration("ttl", cfg.SessionCfg.TTL),
		)
		return survey.NewRedisStore(client, cfg.SessionCfg.TTL), nil

	default:
		logger.Info("using in-memory session store",
			zap.Duration("ttl", cfg.SessionCfg.TTL),
		)
		return survey.NewMemoryStore(cfg.SessionCfg.TTL), nil
	}
}
