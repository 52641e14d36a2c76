package cache

import (
	"context"
	"testing"
	"time"

	"glossrank/internal/platform/testkit"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Meaning    string  `json:"meaning"`
	Confidence float64 `json:"confidence"`
}

func TestMemory_TTL(t *testing.T) {
	clk := testkit.NewClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	m := NewMemory(clk.Now)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "api", []entry{{Meaning: "Application Programming Interface", Confidence: 0.9}}, time.Hour))

	var got []entry
	ok, err := m.Get(ctx, "api", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Application Programming Interface", got[0].Meaning)

	clk.Advance(time.Hour)
	ok, err = m.Get(ctx, "api", &got)
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire exactly at ttl")
	assert.Equal(t, 0, m.Len())
}

func TestMemory_SetSweepsExpired(t *testing.T) {
	clk := testkit.NewClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	m := NewMemory(clk.Now)
	ctx := context.Background()

	for _, k := range []string{"api", "hzzo", "pdv"} {
		require.NoError(t, m.Set(ctx, k, []entry{}, time.Hour))
	}
	require.NoError(t, m.Set(ctx, "kept", []entry{}, 0))
	assert.Equal(t, 4, m.Len())

	clk.Advance(time.Hour + time.Second)
	require.NoError(t, m.Set(ctx, "nato", []entry{}, time.Hour))
	assert.Equal(t, 2, m.Len(), "expired keys never read again are purged")

	var got []entry
	ok, err := m.Get(ctx, "kept", &got)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemory_SweepIsThrottled(t *testing.T) {
	clk := testkit.NewClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	m := NewMemory(clk.Now)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "api", []entry{}, time.Second))
	clk.Advance(2 * time.Second)
	require.NoError(t, m.Set(ctx, "eu", []entry{}, time.Hour))
	assert.Equal(t, 2, m.Len(), "no sweep before SweepInterval has passed")

	clk.Advance(SweepInterval)
	require.NoError(t, m.Set(ctx, "uk", []entry{}, time.Hour))
	assert.Equal(t, 2, m.Len())
}

func TestMemory_NoTTLAndDelete(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", 7, 0))
	var n int
	ok, _ := m.Get(ctx, "k", &n)
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	require.NoError(t, m.Delete(ctx, "k"))
	ok, _ = m.Get(ctx, "k", &n)
	assert.False(t, ok)
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()

	src := []entry{{Meaning: "a"}}
	require.NoError(t, m.Set(ctx, "k", src, time.Minute))
	src[0].Meaning = "mutated"

	var got []entry
	_, _ = m.Get(ctx, "k", &got)
	assert.Equal(t, "a", got[0].Meaning)
}

func TestMemory_DecodeMismatch(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", "text", time.Minute))

	var n int
	ok, err := m.Get(ctx, "k", &n)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestRedis_RoundTripAndExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewRedis(rdb, "glossrank:")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "abbreviation_suggestions_api", []entry{{Meaning: "x", Confidence: 0.7}}, time.Hour))
	assert.True(t, mr.Exists("glossrank:abbreviation_suggestions_api"))

	var got []entry
	ok, err := c.Get(ctx, "abbreviation_suggestions_api", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.7, got[0].Confidence, 1e-9)

	mr.FastForward(time.Hour + time.Second)
	ok, err = c.Get(ctx, "abbreviation_suggestions_api", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_DeleteAndMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewRedis(rdb, "")
	ctx := context.Background()

	var v string
	ok, err := c.Get(ctx, "missing", &v)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestRedis_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	c := NewRedis(rdb, "")
	var v string
	_, err := c.Get(context.Background(), "k", &v)
	assert.Error(t, err)
}

func TestInstrumented_Delegates(t *testing.T) {
	c := Instrumented("test", NewMemory(nil))
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))

	var n int
	ok, err := c.Get(ctx, "k", &n)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "k"))
	ok, _ = c.Get(ctx, "k", &n)
	assert.False(t, ok)
}

func TestNewRedis_NilPanics(t *testing.T) {
	testkit.MustPanic(t, func() { NewRedis(nil, "") })
}
