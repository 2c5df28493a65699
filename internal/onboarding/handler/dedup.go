package handler

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisDeduper remembers external event ids with a TTL so webhook
// redeliveries are acknowledged without reprocessing.
type RedisDeduper struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewRedisDeduper(client *goredis.Client, ttl time.Duration) *RedisDeduper {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisDeduper{client: client, ttl: ttl}
}

func (d *RedisDeduper) FirstSeen(ctx context.Context, externalID string) (bool, error) {
	return d.client.SetNX(ctx, "webhook:event:"+externalID, 1, d.ttl).Result()
}
