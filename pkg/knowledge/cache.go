package knowledge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/dukex/sonda/pkg/protocol"
	redis "github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix  = "sonda:kb:"
	DefaultCacheTTL = 1 * time.Hour
)

// redisCmdable is the slice of the Redis API the cache uses.
// redis.UniversalClient satisfies it.
type redisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Cache memoizes knowledge base answers in Redis. Retrieval stays
// available when Redis is not: cache errors degrade to a direct call.
type Cache struct {
	client redisCmdable
	inner  protocol.KnowledgeResponder
	ttl    time.Duration
	logger *slog.Logger
}

func NewCache(client redisCmdable, inner protocol.KnowledgeResponder, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		client: client,
		inner:  inner,
		ttl:    ttl,
		logger: logger.With("module", "knowledge_cache"),
	}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return client, nil
}

func (c *Cache) Retrieve(ctx context.Context, query string) (string, error) {
	key := cacheKey(query)

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		c.logger.Debug("Knowledge cache hit", "key", key)

		return cached, nil
	}

	if !errors.Is(err, redis.Nil) {
		c.logger.Warn("Knowledge cache read failed, querying directly", "error", err)
	}

	answer, err := c.inner.Retrieve(ctx, query)
	if err != nil {
		return "", err
	}

	err = c.client.Set(ctx, key, answer, c.ttl).Err()
	if err != nil {
		c.logger.Warn("Knowledge cache write failed", "error", err)
	}

	return answer, nil
}

func cacheKey(query string) string {
	sum := sha256.Sum256([]byte(query))

	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
