package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"intelligence-srv/internal/report/repository"
	"intelligence-srv/pkg/log"
	pkgRedis "intelligence-srv/pkg/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	default:
		f.data[key] = fmt.Sprint(v)
	}
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	_, exists := f.data[key]
	f.mu.Unlock()
	if exists {
		return false, nil
	}
	return true, f.Set(ctx, key, value, ttl)
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.data[key]
	if !ok {
		return "", pkgRedis.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeRedis) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeRedis) Close() error                   { return nil }
func (f *fakeRedis) Ping(ctx context.Context) error { return nil }

func TestCacheContent(t *testing.T) {
	ctx := context.Background()
	fr := newFakeRedis()
	c := New(fr, log.NewNop())

	_, err := c.GetContent(ctx, "r1")
	assert.ErrorIs(t, err, repository.ErrCacheMiss)

	require.NoError(t, c.SetContent(ctx, "r1", []byte(`{"a":1}`), time.Hour))
	got, err := c.GetContent(ctx, "r1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))
	assert.Equal(t, time.Hour, fr.ttls[contentKeyPrefix+"r1"])
}

func TestCacheContent_backendError(t *testing.T) {
	fr := newFakeRedis()
	fr.err = errors.New("connection refused")
	c := New(fr, log.NewNop())

	_, err := c.GetContent(context.Background(), "r1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrCacheMiss)
}

func TestCacheLock(t *testing.T) {
	ctx := context.Background()
	c := New(newFakeRedis(), log.NewNop())

	ok, err := c.AcquireLock(ctx, "hash", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.AcquireLock(ctx, "hash", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.ReleaseLock(ctx, "hash"))
	ok, err = c.AcquireLock(ctx, "hash", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
