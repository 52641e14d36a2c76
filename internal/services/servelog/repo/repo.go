// Package repo writes serve events to clickhouse
package repo

import (
	"context"
	"time"

	"glossrank/internal/platform/store"
	"glossrank/internal/services/servelog/domain"
)

// Table is the serve log table name
const Table = "ranking_served"

// Schema creates Table when missing
const Schema = `CREATE TABLE IF NOT EXISTS ranking_served (
	id         UUID,
	ts         DateTime64(3, 'UTC'),
	op         LowCardinality(String),
	user_id    Int64,
	source     LowCardinality(String),
	fallback   Bool,
	item_count UInt32
) ENGINE = MergeTree
ORDER BY (op, ts)
TTL toDateTime(ts) + INTERVAL 90 DAY`

const summarySQL = `SELECT op, source, fallback, count() AS n
FROM ranking_served
WHERE ts >= ?
GROUP BY op, source, fallback
ORDER BY op, n DESC`

// Storage is the serve log repository
type Storage interface {
	EnsureSchema(ctx context.Context) error
	WriteBatch(ctx context.Context, xs []domain.Event) error
	Summary(ctx context.Context, since time.Time) ([]domain.SourceCount, error)
}

type chRepo struct{ c store.Clickhouse }

// NewCH binds the repository to a clickhouse seam
func NewCH(c store.Clickhouse) Storage { return &chRepo{c: c} }

func (r *chRepo) EnsureSchema(ctx context.Context) error {
	return r.c.Exec(ctx, Schema)
}

func (r *chRepo) WriteBatch(ctx context.Context, xs []domain.Event) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, e := range xs {
		rows = append(rows, []any{e.ID, e.At.UTC(), e.Op, e.UserID, e.Source, e.Fallback, uint32(max(e.ItemCount, 0))})
	}
	return r.c.Insert(ctx, Table, rows)
}

func (r *chRepo) Summary(ctx context.Context, since time.Time) ([]domain.SourceCount, error) {
	rows, err := r.c.Query(ctx, summarySQL, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SourceCount
	for rows.Next() {
		var sc domain.SourceCount
		if err := rows.Scan(&sc.Op, &sc.Source, &sc.Fallback, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
