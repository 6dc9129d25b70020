package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLocker_LockUnlock(t *testing.T) {
	mr, client := setupRedis(t)
	l := NewRedisLocker(client, "pv:lock:", time.Minute)

	unlock, err := l.Lock(context.Background(), "1/notes.mp3")
	require.NoError(t, err)
	assert.True(t, mr.Exists("pv:lock:1/notes.mp3"))
	assert.Equal(t, time.Minute, mr.TTL("pv:lock:1/notes.mp3"))

	unlock()
	assert.False(t, mr.Exists("pv:lock:1/notes.mp3"))
}

func TestRedisLocker_WaitsForHolder(t *testing.T) {
	_, client := setupRedis(t)
	l := NewRedisLocker(client, "", time.Minute)
	l.retry = 5 * time.Millisecond

	var inside atomic.Int32
	var maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "k")
			if !assert.NoError(t, err) {
				return
			}
			n := inside.Add(1)
			if n > maxInside.Load() {
				maxInside.Store(n)
			}
			time.Sleep(10 * time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside.Load())
}

func TestRedisLocker_ContextCancelled(t *testing.T) {
	_, client := setupRedis(t)
	l := NewRedisLocker(client, "", time.Minute)
	l.retry = 5 * time.Millisecond

	unlock, err := l.Lock(context.Background(), "busy")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "busy")
	assert.ErrorIs(t, err, ErrNotAcquired)
}

func TestRedisLocker_StaleUnlockKeepsNewHolder(t *testing.T) {
	mr, client := setupRedis(t)
	l := NewRedisLocker(client, "", time.Second)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	unlock2, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	unlock()
	assert.True(t, mr.Exists("k"))
	unlock2()
	assert.False(t, mr.Exists("k"))
}

func TestNop(t *testing.T) {
	unlock, err := Nop{}.Lock(context.Background(), "anything")
	require.NoError(t, err)
	unlock()
}
