// Package repo provides the read only postgres repository for glossary content
package repo

import (
	"context"
	"errors"
	"time"

	"glossrank/internal/modkit/repokit"
	perr "glossrank/internal/platform/errors"
	"glossrank/internal/platform/store"
	"glossrank/internal/services/content/domain"

	sq "github.com/Masterminds/squirrel"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// psql renders $n placeholders for pgx
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// NewPG constructs a repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage is the content read port backed by postgres
type Storage interface {
	domain.Reader
}

var itemColumns = []string{
	"a.id",
	"a.abbreviation",
	"a.meaning",
	"COALESCE(a.description, '')",
	"COALESCE(a.department, '')",
	"COALESCE(a.category, '')",
	"a.status",
	"COALESCE(a.user_id, 0)",
	"a.created_at",
}

func scanItem(r store.Row, extra ...any) (domain.Item, error) {
	var it domain.Item
	var status string
	dest := append([]any{
		&it.ID, &it.Abbreviation, &it.Meaning, &it.Description, &it.Department,
		&it.Category, &status, &it.UserID, &it.CreatedAt,
	}, extra...)
	if err := r.Scan(dest...); err != nil {
		return domain.Item{}, err
	}
	it.Status = domain.Status(status)
	return it, nil
}

func approved() sq.Eq { return sq.Eq{"a.status": string(domain.StatusApproved)} }

// ApprovedItems returns the approved subset of ids in no guaranteed order
func (s *pg) ApprovedItems(ctx context.Context, ids []int64) ([]domain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	sql, args, err := psql.Select(itemColumns...).
		From("abbreviations a").
		Where(sq.Eq{"a.id": ids}).
		Where(approved()).
		ToSql()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "build approved items query")
	}
	out, err := store.Many(ctx, s.q, func(r store.Row) (domain.Item, error) { return scanItem(r) }, sql, args...)
	if err != nil {
		return nil, perr.FromPostgresf(err, "load approved items")
	}
	return out, nil
}

// ItemStats returns all time aggregates for one item regardless of status
func (s *pg) ItemStats(ctx context.Context, id int64) (domain.ItemStats, error) {
	sql, args, err := psql.Select(
		"a.id",
		"COALESCE((SELECT SUM(CASE WHEN v.type = 'up' THEN 1 WHEN v.type = 'down' THEN -1 ELSE 0 END) FROM votes v WHERE v.abbreviation_id = a.id), 0)",
		"(SELECT COUNT(*) FROM comments c WHERE c.abbreviation_id = a.id)",
		"a.created_at",
	).From("abbreviations a").Where(sq.Eq{"a.id": id}).ToSql()
	if err != nil {
		return domain.ItemStats{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "build item stats query")
	}
	st, err := store.One(ctx, s.q, func(r store.Row) (domain.ItemStats, error) {
		var st domain.ItemStats
		err := r.Scan(&st.ItemID, &st.VotesSum, &st.CommentsCount, &st.CreatedAt)
		return st, err
	}, sql, args...)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.ItemStats{}, perr.NotFoundf("item %d not found", id)
	}
	if err != nil {
		return domain.ItemStats{}, perr.FromPostgresf(err, "load item stats")
	}
	return st, nil
}

// TrendingRows returns every approved item with all time counts and counts newer than recentSince
// rows come newest first so equal scores keep a stable order
func (s *pg) TrendingRows(ctx context.Context, recentSince time.Time) ([]domain.TrendingRow, error) {
	cols := append([]string(nil), itemColumns...)
	cols = append(cols,
		"COALESCE(v.up, 0)",
		"COALESCE(v.down, 0)",
		"COALESCE(c.n, 0)",
		"COALESCE(v.recent, 0)",
		"COALESCE(c.recent, 0)",
	)
	sql, args, err := psql.Select(cols...).
		From("abbreviations a").
		LeftJoin(`(
			SELECT abbreviation_id,
				COUNT(*) FILTER (WHERE type = 'up') AS up,
				COUNT(*) FILTER (WHERE type = 'down') AS down,
				COUNT(*) FILTER (WHERE created_at > ?) AS recent
			FROM votes GROUP BY abbreviation_id
		) v ON v.abbreviation_id = a.id`, recentSince).
		LeftJoin(`(
			SELECT abbreviation_id,
				COUNT(*) AS n,
				COUNT(*) FILTER (WHERE created_at > ?) AS recent
			FROM comments GROUP BY abbreviation_id
		) c ON c.abbreviation_id = a.id`, recentSince).
		Where(approved()).
		OrderBy("a.created_at DESC", "a.id DESC").
		ToSql()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "build trending query")
	}
	out, err := store.Many(ctx, s.q, func(r store.Row) (domain.TrendingRow, error) {
		var tr domain.TrendingRow
		it, err := scanItem(r, &tr.UpVotes, &tr.DownVotes, &tr.Comments, &tr.RecentVotes, &tr.RecentComments)
		tr.Item = it
		return tr, err
	}, sql, args...)
	if err != nil {
		return nil, perr.FromPostgresf(err, "load trending rows")
	}
	return out, nil
}

// RecentCandidates returns up to limit newest approved items whose ids are not in exclude
func (s *pg) RecentCandidates(ctx context.Context, exclude []int64, limit int) ([]domain.Candidate, error) {
	if limit <= 0 {
		return nil, nil
	}
	cols := append([]string(nil), itemColumns...)
	cols = append(cols,
		"COALESCE((SELECT SUM(CASE WHEN v.type = 'up' THEN 1 WHEN v.type = 'down' THEN -1 ELSE 0 END) FROM votes v WHERE v.abbreviation_id = a.id), 0)",
		"(SELECT COUNT(*) FROM comments c WHERE c.abbreviation_id = a.id)",
	)
	b := psql.Select(cols...).From("abbreviations a").Where(approved())
	if len(exclude) > 0 {
		b = b.Where(sq.NotEq{"a.id": exclude})
	}
	sql, args, err := b.OrderBy("a.created_at DESC", "a.id DESC").Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "build candidates query")
	}
	out, err := store.Many(ctx, s.q, func(r store.Row) (domain.Candidate, error) {
		var c domain.Candidate
		it, err := scanItem(r, &c.VotesSum, &c.CommentsCount)
		c.Item = it
		return c, err
	}, sql, args...)
	if err != nil {
		return nil, perr.FromPostgresf(err, "load fallback candidates")
	}
	return out, nil
}

// FindByAbbreviation looks up an item of any status by exact display text
func (s *pg) FindByAbbreviation(ctx context.Context, term string) (domain.Item, bool, error) {
	sql, args, err := psql.Select(itemColumns...).
		From("abbreviations a").
		Where(sq.Eq{"a.abbreviation": term}).
		OrderBy("a.id").
		Limit(1).
		ToSql()
	if err != nil {
		return domain.Item{}, false, perr.Wrapf(err, perr.ErrorCodeUnknown, "build abbreviation lookup")
	}
	items, err := store.Many(ctx, s.q, func(r store.Row) (domain.Item, error) { return scanItem(r) }, sql, args...)
	if err != nil {
		return domain.Item{}, false, perr.FromPostgresf(err, "find abbreviation")
	}
	if len(items) == 0 {
		return domain.Item{}, false, nil
	}
	return items[0], true, nil
}

// ApprovedByAbbreviations returns approved items whose display text is one of terms
func (s *pg) ApprovedByAbbreviations(ctx context.Context, terms []string) ([]domain.Item, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	sql, args, err := psql.Select(itemColumns...).
		From("abbreviations a").
		Where(sq.Eq{"a.abbreviation": terms}).
		Where(approved()).
		OrderBy("a.id").
		ToSql()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "build abbreviations query")
	}
	out, err := store.Many(ctx, s.q, func(r store.Row) (domain.Item, error) { return scanItem(r) }, sql, args...)
	if err != nil {
		return nil, perr.FromPostgresf(err, "load abbreviations")
	}
	return out, nil
}
