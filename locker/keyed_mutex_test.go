package locker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"ticket-chat/errors"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	req := require.New(t)
	k := NewKeyedMutex()
	ctx := context.Background()

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := k.Lock(ctx, "100:alice:bob")
			if err != nil {
				t.Error(err)
				return
			}
			defer release()
			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()
	req.Equal(int32(1), maxInside.Load())
	req.Zero(k.Len())
}

func TestKeyedMutex_DistinctKeysDoNotBlock(t *testing.T) {
	req := require.New(t)
	k := NewKeyedMutex()
	ctx := context.Background()

	releaseA, err := k.Lock(ctx, "100:alice:bob")
	req.NoError(err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	releaseB, err := k.Lock(ctx, "100:alice:carol")
	req.NoError(err)
	releaseB()
	req.Equal(1, k.Len())
}

func TestKeyedMutex_GivesUpWhenContextEnds(t *testing.T) {
	req := require.New(t)
	k := NewKeyedMutex()

	release, err := k.Lock(context.Background(), "key")
	req.NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	noop, err := k.Lock(ctx, "key")
	req.ErrorIs(err, errors.ErrLockNotAcquired)
	noop()

	// Releasing twice is harmless
	release()
	release()
	req.Zero(k.Len())

	release, err = k.Lock(context.Background(), "key")
	req.NoError(err)
	release()
}
