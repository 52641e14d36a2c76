package service

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "glossrank/internal/platform/errors"
	content "glossrank/internal/services/content/domain"
	"glossrank/internal/services/content/contenttest"
	"glossrank/internal/services/features/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ago(h int) time.Time { return t0.Add(-time.Duration(h) * time.Hour) }

func fixture() *contenttest.Store {
	st := contenttest.New().
		AddUser(content.User{ID: 1, Name: "Ana", Email: "ana@example.com", Department: "IT"}).
		AddUser(content.User{ID: 2, Name: "Ivo", Email: "ivo@example.com"})
	for i, c := range []string{"IT", "Finance", "IT", "", "Legal", "Finance"} {
		st.AddItem(content.Item{ID: int64(i + 1), Abbreviation: "A", Category: c, Status: content.StatusApproved, CreatedAt: ago(1000)})
	}
	st.AddVote(content.Vote{ItemID: 1, UserID: 1, Type: content.Up, CreatedAt: ago(1)})
	st.AddVote(content.Vote{ItemID: 2, UserID: 1, Type: content.Down, CreatedAt: ago(5)})
	st.AddVote(content.Vote{ItemID: 4, UserID: 1, Type: content.Up, CreatedAt: ago(7)})
	st.AddComment(content.Comment{ItemID: 3, UserID: 1, Content: "great", CreatedAt: ago(2)})
	st.AddComment(content.Comment{ItemID: 1, UserID: 1, Content: "again", CreatedAt: ago(3)})
	st.AddComment(content.Comment{ItemID: 6, UserID: 1, Content: "hmm", CreatedAt: ago(9)})
	return st
}

func TestBuild_MergesStreamsNewestFirst(t *testing.T) {
	snap, err := New(fixture()).Diagnostic(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, snap.Interactions, 6)
	var got []int64
	for _, in := range snap.Interactions {
		got = append(got, in.ItemID)
	}
	assert.Equal(t, []int64{1, 3, 1, 2, 4, 6}, got)
	assert.Equal(t, domain.KindVote, snap.Interactions[0].Kind)
	assert.Equal(t, "up", snap.Interactions[0].Metadata["vote_type"])
	assert.Equal(t, domain.KindComment, snap.Interactions[1].Kind)
	assert.Equal(t, 5, snap.Interactions[1].Metadata["content_length"])

	assert.Equal(t, "ana@example.com", snap.Email)
	assert.Equal(t, "IT", snap.Department)
	assert.Equal(t, []string{}, snap.SearchHistory)
	assert.Nil(t, snap.Votes, "diagnostic carries no raw lists")
}

func TestBuild_ViewedAndVotedSets(t *testing.T) {
	snap, err := New(fixture()).Diagnostic(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 3, 2, 4, 6}, snap.ViewedItems)
	assert.ElementsMatch(t, []int64{1, 2, 4}, snap.VotedItems)
}

func TestBuild_CommonCategories(t *testing.T) {
	snap, err := New(fixture()).Diagnostic(context.Background(), 1)
	require.NoError(t, err)

	// IT twice (items 1 and 3), Finance twice (2 and 6) met after IT, blank skipped
	assert.Equal(t, []string{"IT", "Finance"}, snap.CommonCategories)
}

func TestBuild_RemoteVariantTruncatesAndCarriesRaw(t *testing.T) {
	st := contenttest.New().AddUser(content.User{ID: 9, Email: "x@example.com"})
	for i := range 15 {
		st.AddItem(content.Item{ID: int64(i + 1), Status: content.StatusApproved})
		st.AddVote(content.Vote{ItemID: int64(i + 1), UserID: 9, Type: content.Up, CreatedAt: ago(i)})
	}
	st.AddComment(content.Comment{ItemID: 15, UserID: 9, Content: "old", CreatedAt: ago(100)})

	snap, err := New(st).Remote(context.Background(), 9)
	require.NoError(t, err)

	assert.Len(t, snap.Interactions, 10)
	assert.Equal(t, int64(1), snap.Interactions[0].ItemID)
	assert.Len(t, snap.ViewedItems, 15, "sets are computed over full history")
	assert.Len(t, snap.Votes, 15)
	require.Len(t, snap.Comments, 1)
	assert.Equal(t, "old", snap.Comments[0].Content)
}

func TestBuild_EmptyHistory(t *testing.T) {
	snap, err := New(fixture()).Remote(context.Background(), 2)
	require.NoError(t, err)

	assert.Empty(t, snap.Interactions)
	assert.Empty(t, snap.ViewedItems)
	assert.Empty(t, snap.CommonCategories)
	assert.NotNil(t, snap.Votes)
}

func TestBuild_UserNotFound(t *testing.T) {
	st := fixture()
	_, err := New(st).Remote(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, errors.Is(err, perr.ErrNotFound))
	assert.Zero(t, st.Calls["VotesForUser"], "no reads after a missing user")
}

func TestBuild_DataLayerFailure(t *testing.T) {
	st := fixture()
	st.Fail["CommentsForUser"] = perr.New(perr.ErrorCodeDB, "boom")
	_, err := New(st).Remote(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeDB))
}

func TestTopCategories(t *testing.T) {
	cats := map[int64]string{1: "a", 2: "b", 3: "c", 4: "d", 5: "e", 6: "f", 7: "b"}
	items := []int64{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, TopCategories(items, cats, 5))
	assert.Equal(t, []string{"b"}, TopCategories(items, cats, 1))
	assert.Equal(t, []string{}, TopCategories(items, cats, 0))
	assert.Empty(t, TopCategories(nil, cats, 5))
}
