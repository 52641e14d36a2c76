package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	perr "glossrank/internal/platform/errors"

	"github.com/jackc/pgx/v5"
)

type fakeRows struct {
	data [][]any
	i    int
	err  error
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	for i := range dest {
		switch d := dest[i].(type) {
		case *int64:
			*d = row[i].(int64)
		case *string:
			*d = row[i].(string)
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     {}

type fakeRow struct{ err error }

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = 42
	return nil
}

type fakeQuerier struct {
	rows     *fakeRows
	queryErr error
	rowErr   error
	pingErr  error
	closed   bool
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}

func (f *fakeQuerier) QueryRow(context.Context, string, ...any) Row { return fakeRow{err: f.rowErr} }
func (f *fakeQuerier) Ping(context.Context) error                 { return f.pingErr }
func (f *fakeQuerier) Close() error                               { f.closed = true; return nil }

type item struct {
	ID   int64
	Text string
}

func scanItem(r Row) (item, error) {
	var it item
	err := r.Scan(&it.ID, &it.Text)
	return it, err
}

func TestMany(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{data: [][]any{{int64(1), "API"}, {int64(2), "DNS"}}}}
	got, err := Many(context.Background(), q, scanItem, "select")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].Text != "DNS" {
		t.Fatalf("got %#v", got)
	}

	q = &fakeQuerier{queryErr: errors.New("down")}
	if _, err := Many(context.Background(), q, scanItem, "select"); err == nil {
		t.Fatal("expected query error")
	}
}

func TestOne(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{}}
	if _, err := One(context.Background(), q, scanItem, "select"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	q = &fakeQuerier{rows: &fakeRows{data: [][]any{{int64(1), "a"}, {int64(2), "b"}}}}
	if _, err := One(context.Background(), q, scanItem, "select"); err == nil || !strings.Contains(err.Error(), "more") {
		t.Fatalf("want extra row error, got %v", err)
	}

	q = &fakeQuerier{rows: &fakeRows{data: [][]any{{int64(9), "one"}}}}
	got, err := One(context.Background(), q, scanItem, "select")
	if err != nil || got.ID != 9 {
		t.Fatalf("got %#v, %v", got, err)
	}
}

func TestScalar(t *testing.T) {
	v, err := Scalar[int64](context.Background(), &fakeQuerier{}, "select 42")
	if err != nil || v != 42 {
		t.Fatalf("Scalar = %d, %v", v, err)
	}
	if _, err := Scalar[int64](context.Background(), &fakeQuerier{rowErr: errors.New("x")}, "select"); err == nil {
		t.Fatal("expected scan error")
	}
}

func TestGuardAndClose(t *testing.T) {
	var nilStore *Store
	if err := nilStore.Guard(context.Background()); err == nil {
		t.Fatal("nil store must error")
	}

	q := &fakeQuerier{pingErr: errors.New("refused")}
	s := &Store{PG: q}
	err := s.Guard(context.Background())
	if err == nil || !strings.Contains(err.Error(), "pg: refused") {
		t.Fatalf("Guard = %v", err)
	}
	if err := s.Close(context.Background()); err != nil || !q.closed {
		t.Fatalf("Close = %v closed=%v", err, q.closed)
	}

	if err := (&Store{}).Guard(context.Background()); err != nil {
		t.Fatalf("empty store Guard = %v", err)
	}
}

func TestOpenWithNothingEnabled(t *testing.T) {
	s, err := Open(context.Background(), Config{})
	if err != nil || s.PG != nil || s.CH != nil || s.RDS != nil {
		t.Fatalf("Open = %#v, %v", s, err)
	}
}

func TestQueryOutcome(t *testing.T) {
	cases := map[string]error{
		"ok":      nil,
		"no_rows": fmt.Errorf("scan item: %w", pgx.ErrNoRows),
		"error":   errors.New("conn reset"),
	}
	for want, err := range cases {
		if got := queryOutcome(err); got != want {
			t.Fatalf("queryOutcome(%v) = %q, want %q", err, got, want)
		}
	}
}
