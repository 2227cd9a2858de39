package locker

import (
	"context"
	"fmt"
	"log/slog"
	"ticket-chat/errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still carries our token,
// so an expired lock re-acquired by another instance is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisLocker is a Locker shared by every instance pointing at the same Redis.
// Locks expire after ttl so a crashed holder cannot block a key forever.
type RedisLocker struct {
	client *redis.Client
	log    *slog.Logger
	prefix string
	ttl    time.Duration
	retry  time.Duration
}

func NewRedisLocker(client *redis.Client, log *slog.Logger, ttl, retry time.Duration) RedisLocker {
	return RedisLocker{client: client, log: log, prefix: "ticket-chat:lock:", ttl: ttl, retry: retry}
}

// ConnectRedis parses a redis:// URL and pings the server before returning the client.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

func (l RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()
	for {
		acquired, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return func() {}, fmt.Errorf("%w: %s: %v", errors.ErrLockNotAcquired, key, err)
		}
		if acquired {
			return func() { l.release(redisKey, token) }, nil
		}
		select {
		case <-ctx.Done():
			return func() {}, fmt.Errorf("%w: %s: %v", errors.ErrLockNotAcquired, key, ctx.Err())
		case <-time.After(l.retry):
		}
	}
}

// release runs on a fresh context: the caller's one may already be cancelled.
func (l RedisLocker) release(redisKey, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), l.ttl)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		l.log.Warn("Lock not released, it will expire", "key", redisKey, "error", err)
	}
}
