package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"glossrank/internal/platform/cache"
	"glossrank/internal/platform/testkit"
	content "glossrank/internal/services/content/domain"
	"glossrank/internal/services/content/contenttest"
	"glossrank/internal/services/suggest/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu    sync.Mutex
	terms []string
	by    map[string][]domain.Suggestion
	n     int
}

func (f *fakeProvider) Lookup(_ context.Context, abbr string) []domain.Suggestion {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.terms = append(f.terms, abbr)
	if s, ok := f.by[abbr]; ok {
		return s
	}
	out := make([]domain.Suggestion, f.n)
	for i := range out {
		out[i] = domain.Suggestion{Meaning: fmt.Sprintf("%s meaning %d", abbr, i), Source: "fake", Confidence: 0.8}
	}
	return out
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.terms)
}

type failingCache struct{ cache.Cache }

func (failingCache) Get(context.Context, string, any) (bool, error) {
	return false, errors.New("cache down")
}

func (failingCache) Set(context.Context, string, any, time.Duration) error {
	return errors.New("cache down")
}

func newSvc(t *testing.T, st *contenttest.Store, up *fakeProvider) (*Service, *testkit.Clock) {
	t.Helper()
	clk := testkit.NewClock(time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC))
	return New(st, up, cache.NewMemory(clk.Now), Config{}), clk
}

func TestNew_Defaults(t *testing.T) {
	s := New(contenttest.New(), &fakeProvider{}, cache.NewMemory(nil), Config{})
	assert.Equal(t, time.Hour, s.Cfg.TTL)
	assert.Equal(t, 10, s.Cfg.Max)
}

func TestSuggestions_CachesPerNormalizedKey(t *testing.T) {
	up := &fakeProvider{n: 3}
	s, _ := newSvc(t, contenttest.New(), up)
	ctx := context.Background()

	first, err := s.Suggestions(ctx, "API")
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := s.Suggestions(ctx, "  api ")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, up.calls(), "case and spacing variants share one entry")
	assert.Equal(t, []string{"API"}, up.terms, "upstream sees the display form")
}

func TestSuggestions_ExpiresAfterTTL(t *testing.T) {
	up := &fakeProvider{n: 1}
	s, clk := newSvc(t, contenttest.New(), up)
	ctx := context.Background()

	_, _ = s.Suggestions(ctx, "HZZO")
	clk.Advance(59 * time.Minute)
	_, _ = s.Suggestions(ctx, "HZZO")
	assert.Equal(t, 1, up.calls())

	clk.Advance(time.Minute)
	_, _ = s.Suggestions(ctx, "HZZO")
	assert.Equal(t, 2, up.calls(), "one upstream fetch per ttl window")
}

func TestSuggestions_CapsAtMax(t *testing.T) {
	up := &fakeProvider{n: 25}
	s, _ := newSvc(t, contenttest.New(), up)

	got, err := s.Suggestions(context.Background(), "PDV")
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestSuggestions_EmptyResultIsCached(t *testing.T) {
	up := &fakeProvider{}
	s, _ := newSvc(t, contenttest.New(), up)
	ctx := context.Background()

	got, err := s.Suggestions(ctx, "XYZ")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, _ = s.Suggestions(ctx, "xyz")
	assert.Equal(t, 1, up.calls())
}

func TestSuggestions_BlankTerm(t *testing.T) {
	up := &fakeProvider{n: 1}
	s, _ := newSvc(t, contenttest.New(), up)

	got, err := s.Suggestions(context.Background(), " \t")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, up.calls())
}

func TestSuggestions_CacheFaultFallsThrough(t *testing.T) {
	up := &fakeProvider{n: 2}
	s := New(contenttest.New(), up, failingCache{}, Config{})
	ctx := context.Background()

	got, err := s.Suggestions(ctx, "API")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	_, _ = s.Suggestions(ctx, "API")
	assert.Equal(t, 2, up.calls())
}

func TestSuggestions_ReturnsCopies(t *testing.T) {
	up := &fakeProvider{n: 1}
	s, _ := newSvc(t, contenttest.New(), up)
	ctx := context.Background()

	got, _ := s.Suggestions(ctx, "API")
	got[0].Meaning = "mutated"

	again, _ := s.Suggestions(ctx, "API")
	assert.Equal(t, "API meaning 0", again[0].Meaning)
}

func TestSuggestions_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	up := &fakeProvider{n: 2}
	s := New(contenttest.New(), up, cache.NewRedis(rdb, "glossrank:"), Config{})
	ctx := context.Background()

	_, err := s.Suggestions(ctx, "Api")
	require.NoError(t, err)
	assert.True(t, mr.Exists("glossrank:abbreviation_suggestions_api"))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL("glossrank:abbreviation_suggestions_api").Seconds(), 1)

	_, _ = s.Suggestions(ctx, "API")
	assert.Equal(t, 1, up.calls())

	mr.FastForward(time.Hour + time.Second)
	_, _ = s.Suggestions(ctx, "API")
	assert.Equal(t, 2, up.calls())
}

func TestSuggestions_ConcurrentCallersAgree(t *testing.T) {
	up := &fakeProvider{n: 4}
	s, _ := newSvc(t, contenttest.New(), up)

	var wg sync.WaitGroup
	results := make([][]domain.Suggestion, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = s.Suggestions(context.Background(), "API")
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.Len(t, r, 4)
	}
	assert.LessOrEqual(t, up.calls(), len(results))
}

func TestLookup_ExistingShortCircuits(t *testing.T) {
	st := contenttest.New().AddItem(content.Item{ID: 7, Abbreviation: "HZZO", Meaning: "Hrvatski zavod za zdravstveno osiguranje", Status: content.StatusPending})
	up := &fakeProvider{n: 3}
	s, _ := newSvc(t, st, up)

	got, err := s.Lookup(context.Background(), " HZZO ")
	require.NoError(t, err)
	require.NotNil(t, got.Existing)
	assert.Equal(t, int64(7), got.Existing.ID)
	assert.NotNil(t, got.Suggestions)
	assert.Empty(t, got.Suggestions)
	assert.Zero(t, up.calls())
}

func TestLookup_ExactMatchOnly(t *testing.T) {
	st := contenttest.New().AddItem(content.Item{ID: 7, Abbreviation: "HZZO", Status: content.StatusApproved})
	up := &fakeProvider{n: 2}
	s, _ := newSvc(t, st, up)

	got, err := s.Lookup(context.Background(), "hzzo")
	require.NoError(t, err)
	assert.Nil(t, got.Existing)
	assert.Len(t, got.Suggestions, 2)
}

func TestLookup_StoreError(t *testing.T) {
	st := contenttest.New()
	st.Fail["FindByAbbreviation"] = errors.New("db down")
	up := &fakeProvider{n: 2}
	s, _ := newSvc(t, st, up)

	_, err := s.Lookup(context.Background(), "API")
	require.Error(t, err)
	assert.Zero(t, up.calls())
}
