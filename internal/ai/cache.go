package ai

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const embeddingKeyPrefix = "shl-recommender:embedding:"

// cachedEmbedder wraps an Embedder with a redis cache keyed on a hash of the
// input text. Candidate texts repeat on every query, so a warm cache turns
// the embedding strategy into a single provider call per request.
type cachedEmbedder struct {
	inner  Embedder
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedEmbedder decorates inner with a redis-backed cache. Cache failures
// are logged and ignored; the provider is always the source of truth.
func NewCachedEmbedder(inner Embedder, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) Embedder {
	return &cachedEmbedder{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *cachedEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	key := embeddingKey(text)

	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var vector []float32
		if err := json.Unmarshal(data, &vector); err == nil && len(vector) > 0 {
			return vector, nil
		}
	}

	vector, err := c.inner.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(vector); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Debug("embedding cache write failed", zap.Error(err))
		}
	}

	return vector, nil
}

func embeddingKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s%x", embeddingKeyPrefix, sum)
}
