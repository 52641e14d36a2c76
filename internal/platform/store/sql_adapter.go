package store

import (
	"context"
	"errors"
	"time"

	"glossrank/internal/platform/metrics"
	"glossrank/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
)

// pgAdapter exposes pg.PG as the read only RowQuerier the content repos use
// every read is timed into metrics and handed to the tracer when one is set
type pgAdapter struct {
	p *pg.PG
}

func newPGAdapter(p *pg.PG) *pgAdapter { return &pgAdapter{p: p} }

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil {
		return errors.New("pg: nil adapter")
	}
	return a.p.Pool.Ping(ctx)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.p.Pool.Query(ctx, sql, args...)
	a.observe(ctx, "query", sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgRows{r: rs}, nil
}

// QueryRow defers observation to Scan, where pgx surfaces the query error
func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return pgRow{
		r: a.p.Pool.QueryRow(ctx, sql, args...),
		scanned: func(err error) {
			a.observe(ctx, "row", sql, args, start, err)
		},
	}
}

func queryOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, pgx.ErrNoRows):
		return "no_rows"
	default:
		return "error"
	}
}

func (a *pgAdapter) observe(ctx context.Context, kind, sql string, args []any, start time.Time, err error) {
	elapsed := time.Since(start)
	metrics.DBQueryDuration.WithLabelValues(kind, queryOutcome(err)).Observe(elapsed.Seconds())

	if a == nil || a.p == nil || a.p.Tracer == nil {
		return
	}
	us := elapsed.Microseconds()
	a.p.Tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: us,
		Err:       err,
		Slow:      a.p.SlowMs >= 0 && us >= int64(a.p.SlowMs)*1000,
	})
}

type pgRow struct {
	r       pgx.Row
	scanned func(error)
}

func (x pgRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.scanned != nil {
		x.scanned(err)
	}
	return err
}

type pgRows struct{ r pgx.Rows }

func (x pgRows) Next() bool            { return x.r.Next() }
func (x pgRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x pgRows) Err() error            { return x.r.Err() }
func (x pgRows) Close()                { x.r.Close() }
