package dashboard

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tiendazana/storefront-api/internal/redisx"
)

// Stats records per-day sales aggregates and remembers which events have
// been applied, since Kafka delivery is at-least-once.
type Stats interface {
	MarkSeen(ctx context.Context, eventID string) (alreadySeen bool, err error)
	Record(ctx context.Context, day string, items int, revenue float64) error
}

type RedisStats struct {
	Client *redis.Client
}

func (s *RedisStats) MarkSeen(ctx context.Context, eventID string) (bool, error) {
	key := fmt.Sprintf(redisx.KeyDedup, "dashboard", eventID)
	set, err := s.Client.SetNX(ctx, key, "1", redisx.TTLDedup).Result()
	if err != nil {
		return false, err
	}
	return !set, nil
}

func (s *RedisStats) Record(ctx context.Context, day string, items int, revenue float64) error {
	key := fmt.Sprintf(redisx.KeyDailyStats, day)
	pipe := s.Client.TxPipeline()
	pipe.HIncrBy(ctx, key, "pedidos", 1)
	pipe.HIncrBy(ctx, key, "items", int64(items))
	pipe.HIncrByFloat(ctx, key, "ventas", revenue)
	pipe.Expire(ctx, key, redisx.TTLDailyStats)
	_, err := pipe.Exec(ctx)
	return err
}
