package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const generationTTL = 24 * time.Hour

// GenerationStore hands out increasing view generations per scope.
// Key format: generation:<scope>
type GenerationStore struct {
	client *redis.Client
}

// NewGenerationStore creates a GenerationStore wrapping the given Redis client.
func NewGenerationStore(client *redis.Client) *GenerationStore {
	return &GenerationStore{client: client}
}

// Next increments and returns the generation for scope. Idle scopes expire
// after generationTTL and restart from 1.
func (g *GenerationStore) Next(ctx context.Context, scope string) (uint64, error) {
	key := generationKey(scope)

	pipe := g.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, generationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("next generation: %w", err)
	}
	return uint64(incr.Val()), nil
}

func generationKey(scope string) string {
	return "generation:" + scope
}
