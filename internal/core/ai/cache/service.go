package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"babounette/internal/infrastructure/config"
	"babounette/internal/pkg/common"
)

// RedisStore cache Redis des réponses IA, partagé entre instances
type RedisStore struct {
	client *redis.Client
	cfg    config.CacheConfig
}

// NewRedisStore crée le cache Redis et vérifie la connexion
func NewRedisStore(cfg config.CacheConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connexion à Redis impossible: %w", err)
	}

	common.LogInfo("cache Redis initialisé", zap.String("addr", cfg.RedisAddr))

	return &RedisStore{
		client: client,
		cfg:    cfg,
	}, nil
}

// Get renvoie la valeur en cache et vrai lors d'un hit
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			common.LogWarn("lecture du cache Redis échouée", zap.Error(err))
		}
		common.LogCacheMiss("redis", key)
		return "", false
	}
	common.LogCacheHit("redis", key)
	return value, true
}

// Set enregistre une valeur avec la durée de vie configurée
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("écriture du cache Redis échouée: %w", err)
	}
	return nil
}

// Close ferme la connexion Redis
func (s *RedisStore) Close() error {
	return s.client.Close()
}
