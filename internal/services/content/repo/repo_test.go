package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	perr "glossrank/internal/platform/errors"
	"glossrank/internal/platform/store"
)

type recRows struct {
	data [][]any
	i    int
}

func (r *recRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *recRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	for i := range dest {
		switch d := dest[i].(type) {
		case *int64:
			*d = row[i].(int64)
		case *int:
			*d = row[i].(int)
		case *string:
			*d = row[i].(string)
		case *time.Time:
			*d = row[i].(time.Time)
		}
	}
	return nil
}

func (r *recRows) Err() error { return nil }
func (r *recRows) Close()     {}

// recQ records the last statement and replays canned rows
type recQ struct {
	sql   string
	args  []any
	calls int
	rows  [][]any
	err   error
}

func (q *recQ) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	q.calls++
	q.sql, q.args = sql, args
	if q.err != nil {
		return nil, q.err
	}
	return &recRows{data: q.rows}, nil
}

func (q *recQ) QueryRow(context.Context, string, ...any) store.Row { return nil }

func TestApprovedItems_EmptyIDsSkipsQuery(t *testing.T) {
	q := &recQ{}
	items, err := NewPG().Bind(q).ApprovedItems(context.Background(), nil)
	if err != nil || items != nil {
		t.Fatalf("got %v %v", items, err)
	}
	if q.calls != 0 {
		t.Fatalf("expected no query, got %d", q.calls)
	}
}

func TestApprovedItems_FiltersByStatus(t *testing.T) {
	now := time.Now()
	q := &recQ{rows: [][]any{{int64(7), "API", "Application Programming Interface", "", "", "IT", "approved", int64(1), now}}}
	items, err := NewPG().Bind(q).ApprovedItems(context.Background(), []int64{7, 8})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 || items[0].ID != 7 || items[0].Category != "IT" {
		t.Fatalf("bad items %+v", items)
	}
	if !strings.Contains(q.sql, "a.status = $") || !strings.Contains(q.sql, "a.id IN ($1,$2)") {
		t.Fatalf("unexpected sql %q", q.sql)
	}
	if q.args[len(q.args)-1] != "approved" {
		t.Fatalf("status arg missing: %v", q.args)
	}
}

func TestRecentCandidates_ExcludesAndLimits(t *testing.T) {
	q := &recQ{}
	_, err := NewPG().Bind(q).RecentCandidates(context.Background(), []int64{1, 2}, 6)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(q.sql, "a.id NOT IN ($2,$3)") {
		t.Fatalf("missing exclusion %q", q.sql)
	}
	if !strings.Contains(q.sql, "ORDER BY a.created_at DESC, a.id DESC LIMIT 6") {
		t.Fatalf("missing ordering %q", q.sql)
	}

	q2 := &recQ{}
	_, _ = NewPG().Bind(q2).RecentCandidates(context.Background(), nil, 6)
	if strings.Contains(q2.sql, "NOT IN") {
		t.Fatalf("no exclusion expected %q", q2.sql)
	}

	q3 := &recQ{}
	_, _ = NewPG().Bind(q3).RecentCandidates(context.Background(), nil, 0)
	if q3.calls != 0 {
		t.Fatal("limit 0 should not query")
	}
}

func TestTrendingRows_BindsRecentWindowTwice(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := &recQ{}
	if _, err := NewPG().Bind(q).TrendingRows(context.Background(), since); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(q.args) != 3 || q.args[0] != since || q.args[1] != since || q.args[2] != "approved" {
		t.Fatalf("unexpected args %v", q.args)
	}
	if !strings.Contains(q.sql, "created_at > $1") || !strings.Contains(q.sql, "created_at > $2") {
		t.Fatalf("unexpected sql %q", q.sql)
	}
}

func TestUser_NotFound(t *testing.T) {
	_, err := NewPG().Bind(&recQ{}).User(context.Background(), 42)
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestVotesForUser_WrapsDriverError(t *testing.T) {
	_, err := NewPG().Bind(&recQ{err: errors.New("conn reset")}).VotesForUser(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("driver error must not look like not found: %v", err)
	}
}

func TestFindByAbbreviation_Missing(t *testing.T) {
	_, ok, err := NewPG().Bind(&recQ{}).FindByAbbreviation(context.Background(), "XYZ")
	if err != nil || ok {
		t.Fatalf("got ok=%v err=%v", ok, err)
	}
}

func TestItemCategories_Map(t *testing.T) {
	q := &recQ{rows: [][]any{{int64(1), "IT"}, {int64(3), "Legal"}}}
	cats, err := NewPG().Bind(q).ItemCategories(context.Background(), []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cats) != 2 || cats[1] != "IT" || cats[3] != "Legal" {
		t.Fatalf("unexpected %v", cats)
	}
}
