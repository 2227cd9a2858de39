package locker

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"ticket-chat/errors"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// Runs against a real server: REDIS_URL=redis://localhost:6379/0 go test ./locker
func TestRedisLocker(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	req := require.New(t)
	ctx := context.Background()
	client, err := ConnectRedis(ctx, url)
	req.NoError(err)
	defer client.Close()

	l := NewRedisLocker(client, logs.GetLoggerFromLevel(slog.LevelDebug), 5*time.Second, 10*time.Millisecond)
	key := "test:" + t.Name()

	release, err := l.Lock(ctx, key)
	req.NoError(err)

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = l.Lock(waitCtx, key)
	req.ErrorIs(err, errors.ErrLockNotAcquired)

	release()
	release, err = l.Lock(ctx, key)
	req.NoError(err)
	release()
}

func TestConnectRedis_RejectsBadURL(t *testing.T) {
	_, err := ConnectRedis(context.Background(), "not-a-redis-url")
	require.Error(t, err)
}
