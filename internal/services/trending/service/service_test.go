package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"glossrank/internal/adapters/scorer"
	"glossrank/internal/core/ranking"
	"glossrank/internal/platform/cache"
	perr "glossrank/internal/platform/errors"
	"glossrank/internal/platform/testkit"
	content "glossrank/internal/services/content/domain"
	"glossrank/internal/services/content/contenttest"
	"glossrank/internal/services/trending/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func days(d float64) time.Time { return now.Add(-time.Duration(d * 24 * float64(time.Hour))) }

type fakeScorer struct {
	out   scorer.Outcome[scorer.TrendingPayload]
	calls int
	limit int
}

func (f *fakeScorer) FetchTrending(_ context.Context, limit int) scorer.Outcome[scorer.TrendingPayload] {
	f.calls++
	f.limit = limit
	return f.out
}

func score(v float64) *float64 { return &v }

func item(id int64, abbr, cat string, status content.Status, created time.Time) content.Item {
	return content.Item{ID: id, Abbreviation: abbr, Meaning: abbr + " meaning", Category: cat, Status: status, CreatedAt: created}
}

func newService(st *contenttest.Store, sc *fakeScorer) *Service {
	var remote domain.TrendingScorer
	if sc != nil {
		remote = sc
	}
	s := New(st, remote, nil, Config{})
	s.Now = func() time.Time { return now }
	s.Jitter = ranking.Fixed(0.05)
	return s
}

// scenarioStore holds item A (2 days, 5 fresh up votes) and item B (50 days, 5 old up votes, 1 fresh comment)
func scenarioStore() *contenttest.Store {
	st := contenttest.New().
		AddItem(item(1, "A", "IT", content.StatusApproved, days(2))).
		AddItem(item(2, "B", "IT", content.StatusApproved, days(50)))
	for u := int64(1); u <= 5; u++ {
		st.AddVote(content.Vote{ItemID: 1, UserID: u, Type: content.Up, CreatedAt: days(1)})
		st.AddVote(content.Vote{ItemID: 2, UserID: u, Type: content.Up, CreatedAt: days(45)})
	}
	st.AddComment(content.Comment{ItemID: 2, UserID: 9, Content: "x", CreatedAt: days(1)})
	return st
}

func TestTrending_RemoteRejoinDropsIneligible(t *testing.T) {
	st := contenttest.New().
		AddItem(item(1, "API", "IT", content.StatusApproved, days(1))).
		AddItem(item(2, "WIP", "IT", content.StatusPending, days(1))).
		AddItem(item(3, "PDV", "Finance", content.StatusApproved, days(1)))
	sc := &fakeScorer{out: scorer.Success(200, scorer.TrendingPayload{Trending: []scorer.Scored{
		{ID: 3, Score: score(0.4)},
		{ID: 2, Score: score(0.9)},
		{ID: 99, Score: score(0.8)},
		{ID: 1},
	}})}

	got, err := newService(st, sc).Trending(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, ranking.SourceRemote, got.Source)
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(3), got.Items[0].ID, "remote order is kept")
	assert.Equal(t, 0.4, got.Items[0].Score)
	assert.Equal(t, "PDV meaning", got.Items[0].Meaning)
	assert.Equal(t, 1.0, got.Items[1].Score, "missing remote score defaults")
	assert.Equal(t, ranking.ReasonRemoteTrending, got.Items[1].Reason)
	assert.Nil(t, got.Items[0].Raw)
	assert.Equal(t, 5, sc.limit)
}

func TestTrending_FallsBackToLocal(t *testing.T) {
	cases := []struct {
		name string
		out  scorer.Outcome[scorer.TrendingPayload]
	}{
		{"transport error", scorer.TransportError[scorer.TrendingPayload](errors.New("dial tcp: refused"))},
		{"rejected", scorer.Rejected[scorer.TrendingPayload](503)},
		{"ok body without trending key", scorer.Success(200, scorer.TrendingPayload{})},
		{"only pending ids", scorer.Success(200, scorer.TrendingPayload{Trending: []scorer.Scored{{ID: 77}}})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := scenarioStore().AddItem(item(77, "WIP", "", content.StatusPending, days(1)))
			got, err := newService(st, &fakeScorer{out: tc.out}).Trending(context.Background(), 10)
			require.NoError(t, err)
			assert.Equal(t, ranking.SourceLocal, got.Source)
			require.Len(t, got.Items, 2)
			assert.Equal(t, ranking.ReasonLocalTrending, got.Items[0].Reason)
			for _, it := range got.Items {
				assert.NotEqual(t, int64(77), it.ID)
			}
		})
	}
}

func TestLocal_NewItemOutranksOldOne(t *testing.T) {
	got, err := newService(scenarioStore(), nil).Local(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "A", got[0].Abbreviation)
	assert.Equal(t, "B", got[1].Abbreviation)
	assert.Equal(t, 5.0, ranking.AgeBonus(days(2), now))
	assert.Equal(t, 0.0, ranking.AgeBonus(days(50), now))

	// A: 0.3*5 + 5 + 0.4*5 = 8.5, B: 0.3*5 + 0.2*1 + 0.1*1 = 1.8
	assert.InDelta(t, 8.5, *got[0].Raw, 1e-9)
	assert.InDelta(t, 1.8, *got[1].Raw, 1e-9)
	assert.Equal(t, 0.85, got[0].Score)
	assert.Equal(t, 0.18, got[1].Score)
	assert.Equal(t, 5, *got[0].VotesSum)
}

func TestLocal_DisplayBoundsAndSaturation(t *testing.T) {
	st := contenttest.New().
		AddItem(item(1, "HOT", "", content.StatusApproved, days(1))).
		AddItem(item(2, "HOTTER", "", content.StatusApproved, days(1))).
		AddItem(item(3, "COLD", "", content.StatusApproved, days(400))).
		AddItem(item(4, "HATED", "", content.StatusApproved, days(400)))
	for u := int64(1); u <= 20; u++ {
		st.AddVote(content.Vote{ItemID: 1, UserID: u, Type: content.Up, CreatedAt: days(1)})
		st.AddVote(content.Vote{ItemID: 2, UserID: u, Type: content.Up, CreatedAt: days(1)})
		st.AddComment(content.Comment{ItemID: 2, UserID: u, Content: "!", CreatedAt: days(1)})
	}
	st.AddVote(content.Vote{ItemID: 4, UserID: 1, Type: content.Down, CreatedAt: days(300)})

	got, err := newService(st, nil).Local(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 4)

	// known saturation: both hot items display 1.0 while raw keeps them apart
	assert.Equal(t, "HOTTER", got[0].Abbreviation)
	assert.Equal(t, 1.0, got[0].Score)
	assert.Equal(t, 1.0, got[1].Score)
	assert.Greater(t, *got[0].Raw, *got[1].Raw)

	for i, it := range got {
		assert.GreaterOrEqual(t, it.Score, 0.01)
		assert.LessOrEqual(t, it.Score, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, *got[i-1].Raw, *it.Raw, "sorted by raw")
		}
	}
	assert.Equal(t, 0.01, got[3].Score, "negative raw still displays the floor")
}

func TestLocal_LimitAndEmpty(t *testing.T) {
	got, err := newService(scenarioStore(), nil).Local(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Abbreviation)

	got, err = newService(contenttest.New(), nil).Local(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = newService(scenarioStore(), nil).Local(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTrending_DataLayerFailurePropagates(t *testing.T) {
	st := scenarioStore()
	st.Fail["TrendingRows"] = perr.New(perr.ErrorCodeDB, "db down")
	_, err := newService(st, &fakeScorer{out: scorer.Rejected[scorer.TrendingPayload](500)}).Trending(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeDB))
}

func personalStore() *contenttest.Store {
	st := contenttest.New().AddUser(content.User{ID: 1, Email: "u@example.com"})
	cats := []string{"IT", "Legal", "Finance", "IT", "Legal", "", "Finance", "IT"}
	for i, c := range cats {
		st.AddItem(item(int64(i+1), "X", c, content.StatusApproved, days(float64(i))))
	}
	st.AddItem(item(50, "WIP", "IT", content.StatusPending, days(0)))
	// user likes IT over Legal and touched items 1 and 2
	st.AddVote(content.Vote{ItemID: 1, UserID: 1, Type: content.Up, CreatedAt: days(0.5)})
	st.AddVote(content.Vote{ItemID: 4, UserID: 1, Type: content.Up, CreatedAt: days(0.5)})
	st.AddVote(content.Vote{ItemID: 2, UserID: 2, Type: content.Up, CreatedAt: days(0.5)})
	st.AddComment(content.Comment{ItemID: 2, UserID: 1, Content: "hi", CreatedAt: days(0.5)})
	return st
}

func TestFallbackPersonal_ExcludesAndBounds(t *testing.T) {
	st := personalStore()
	got, err := newService(st, nil).FallbackPersonal(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i, it := range got {
		assert.NotContains(t, []int64{1, 2, 4, 50}, it.ID)
		assert.GreaterOrEqual(t, it.Score, 0.1)
		assert.LessOrEqual(t, it.Score, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Score, it.Score)
		}
	}
	assert.Equal(t, 1, st.Calls["RecentCandidates"])
}

func TestFallbackPersonal_ExactScoreWithPinnedJitter(t *testing.T) {
	st := contenttest.New().
		AddUser(content.User{ID: 1}).
		AddItem(item(1, "LIKED", "IT", content.StatusApproved, days(100))).
		AddItem(item(2, "LIKED2", "Legal", content.StatusApproved, days(100))).
		AddItem(item(3, "NEW", "Legal", content.StatusApproved, days(3.5))).
		AddItem(item(4, "LIKED3", "IT", content.StatusApproved, days(200)))
	st.AddVote(content.Vote{ItemID: 1, UserID: 1, Type: content.Up, CreatedAt: days(10)})
	st.AddVote(content.Vote{ItemID: 4, UserID: 1, Type: content.Up, CreatedAt: days(8)})
	st.AddVote(content.Vote{ItemID: 1, UserID: 7, Type: content.Up, CreatedAt: days(10)})
	st.AddVote(content.Vote{ItemID: 2, UserID: 1, Type: content.Up, CreatedAt: days(9)})
	st.AddVote(content.Vote{ItemID: 3, UserID: 7, Type: content.Up, CreatedAt: days(1)})
	st.AddVote(content.Vote{ItemID: 3, UserID: 8, Type: content.Up, CreatedAt: days(1)})
	st.AddComment(content.Comment{ItemID: 3, UserID: 7, Content: "a", CreatedAt: days(1)})
	st.AddComment(content.Comment{ItemID: 3, UserID: 8, Content: "b", CreatedAt: days(1)})

	got, err := newService(st, nil).FallbackPersonal(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// 0.3 + (27/30)*0.3 + (0.2+0.1)/10 + ((2-1)/2)*0.2 - 0 + 0.05
	assert.Equal(t, 0.75, got[0].Score)
	assert.Empty(t, got[0].Reason)
}

func TestFallbackPersonal_EmptyHistoryUser(t *testing.T) {
	st := personalStore().AddUser(content.User{ID: 3})
	got, err := newService(st, nil).FallbackPersonal(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
	for _, it := range got {
		assert.NotEqual(t, int64(50), it.ID)
	}
}

func TestFallbackPersonal_RandomJitterStaysInBounds(t *testing.T) {
	s := newService(personalStore(), nil)
	s.Jitter = ranking.PerCall
	for range 50 {
		got, err := s.FallbackPersonal(context.Background(), 1, 4)
		require.NoError(t, err)
		for _, it := range got {
			require.GreaterOrEqual(t, it.Score, 0.1)
			require.LessOrEqual(t, it.Score, 1.0)
		}
	}
}

func TestTrending_ReadThroughCache(t *testing.T) {
	clock := testkit.NewClock(now)
	mem := cache.NewMemory(clock.Now)
	sc := &fakeScorer{out: scorer.Rejected[scorer.TrendingPayload](503)}
	s := newService(scenarioStore(), sc)
	s.Cache = mem
	s.Cfg.CacheTTL = time.Hour

	first, err := s.Trending(context.Background(), 5)
	require.NoError(t, err)
	second, err := s.Trending(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 1, sc.calls)
	assert.Equal(t, first.Items[0].ID, second.Items[0].ID)
	assert.Equal(t, first.Source, second.Source)

	clock.Advance(time.Hour)
	_, err = s.Trending(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, sc.calls, "expired entry is recomputed")
}

func TestTrending_CacheDisabledByDefault(t *testing.T) {
	sc := &fakeScorer{out: scorer.Rejected[scorer.TrendingPayload](503)}
	s := newService(scenarioStore(), sc)
	s.Cache = cache.NewMemory(func() time.Time { return now })

	_, _ = s.Trending(context.Background(), 5)
	_, _ = s.Trending(context.Background(), 5)
	assert.Equal(t, 2, sc.calls)
}

func approvedTrio() *contenttest.Store {
	return contenttest.New().
		AddItem(item(1, "API", "IT", content.StatusApproved, days(1))).
		AddItem(item(2, "PDV", "Finance", content.StatusApproved, days(3))).
		AddItem(item(3, "HZZO", "Health", content.StatusApproved, days(5)))
}

func TestTrending_CacheHitDropsUnapproved(t *testing.T) {
	st := approvedTrio()
	sc := &fakeScorer{out: scorer.Success(200, scorer.TrendingPayload{Trending: []scorer.Scored{
		{ID: 1, Score: score(0.9)}, {ID: 2, Score: score(0.7)}, {ID: 3, Score: score(0.5)},
	}})}
	s := newService(st, sc)
	s.Cache = cache.NewMemory(func() time.Time { return now })
	s.Cfg.CacheTTL = time.Hour

	first, err := s.Trending(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, first.Items, 3)

	st.Items[0].Status = content.StatusRejected

	second, err := s.Trending(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, sc.calls, "served from cache")
	assert.Equal(t, ranking.SourceRemote, second.Source)
	require.Len(t, second.Items, 2)
	assert.Equal(t, int64(2), second.Items[0].ID)
	assert.Equal(t, 0.7, second.Items[0].Score)
	assert.Equal(t, int64(3), second.Items[1].ID)
}

func TestTrending_CacheHitRecomputesWhenNothingSurvives(t *testing.T) {
	st := approvedTrio()
	sc := &fakeScorer{out: scorer.Success(200, scorer.TrendingPayload{Trending: []scorer.Scored{{ID: 1}}})}
	s := newService(st, sc)
	s.Cache = cache.NewMemory(func() time.Time { return now })
	s.Cfg.CacheTTL = time.Hour

	_, err := s.Trending(context.Background(), 5)
	require.NoError(t, err)

	st.Items[0].Status = content.StatusPending

	got, err := s.Trending(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, sc.calls)
	assert.Equal(t, ranking.SourceLocal, got.Source)
	require.Len(t, got.Items, 2)
	for _, it := range got.Items {
		assert.NotEqual(t, int64(1), it.ID)
	}
}

func TestTrending_RemoteListCutToLimit(t *testing.T) {
	sc := &fakeScorer{out: scorer.Success(200, scorer.TrendingPayload{Trending: []scorer.Scored{
		{ID: 3}, {ID: 1}, {ID: 2},
	}})}

	got, err := newService(approvedTrio(), sc).Trending(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, ranking.SourceRemote, got.Source)
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(3), got.Items[0].ID)
	assert.Equal(t, int64(1), got.Items[1].ID)
}

func TestWarm_StoresEveryLimit(t *testing.T) {
	mem := cache.NewMemory(func() time.Time { return now })
	s := newService(scenarioStore(), &fakeScorer{out: scorer.Rejected[scorer.TrendingPayload](503)})
	s.Cache = mem

	out, err := s.Warm(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Equal(t, 3, mem.Len())

	var r domain.Ranked
	ok, err := mem.Get(context.Background(), CacheKey(10), &r)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ranking.SourceLocal, r.Source)
	assert.Equal(t, "trending_abbreviations_10", CacheKey(10))
}

func TestWarm_RequiresCache(t *testing.T) {
	_, err := newService(scenarioStore(), nil).Warm(context.Background(), time.Hour)
	require.Error(t, err)
}
