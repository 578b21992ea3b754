package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/samarth/backend/internal/domain/shared"
	"github.com/samarth/backend/internal/infrastructure/auth"
	"github.com/samarth/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Stores bundles the key/value backed components. Client is nil when the
// in-memory fallbacks are in use.
type Stores struct {
	Client      *redis.Client
	Idempotency shared.IdempotencyStore
	Blacklist   auth.TokenBlacklist
}

// Close releases the idempotency janitor and the Redis client.
func (s *Stores) Close() error {
	_ = s.Idempotency.Close()
	if s.Client != nil {
		return s.Client.Close()
	}
	return nil
}

// NewStores connects to Redis when enabled and falls back to in-memory
// stores otherwise. An enabled but unreachable Redis is an error in
// production and a logged fallback elsewhere.
func NewStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Stores, error) {
	if cfg.Redis.Enabled {
		client, err := NewRedisClient(ctx, cfg.Redis)
		if err == nil {
			log.Info("using Redis for idempotency keys and token blacklist", zap.String("addr", cfg.Redis.Addr()))
			return &Stores{
				Client:      client,
				Idempotency: NewRedisIdempotencyStore(client),
				Blacklist:   auth.NewRedisTokenBlacklist(client),
			}, nil
		}
		if cfg.App.IsProduction() {
			return nil, err
		}
		log.Warn("Redis unavailable, falling back to in-memory stores", zap.Error(err))
	}

	return &Stores{
		Idempotency: NewInMemoryIdempotencyStore(0),
		Blacklist:   auth.NewInMemoryTokenBlacklist(),
	}, nil
}
