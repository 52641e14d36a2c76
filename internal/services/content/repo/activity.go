package repo

import (
	"context"
	"errors"

	perr "glossrank/internal/platform/errors"
	"glossrank/internal/platform/store"
	"glossrank/internal/services/content/domain"

	sq "github.com/Masterminds/squirrel"
)

// User returns the user or a not found error
func (s *pg) User(ctx context.Context, id int64) (domain.User, error) {
	sql, args, err := psql.Select("id", "name", "email", "COALESCE(department, '')").
		From("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.User{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "build user query")
	}
	u, err := store.One(ctx, s.q, func(r store.Row) (domain.User, error) {
		var u domain.User
		err := r.Scan(&u.ID, &u.Name, &u.Email, &u.Department)
		return u, err
	}, sql, args...)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.User{}, perr.NotFoundf("user %d not found", id)
	}
	if err != nil {
		return domain.User{}, perr.FromPostgresf(err, "load user")
	}
	return u, nil
}

// VotesForUser returns the user's votes newest first
func (s *pg) VotesForUser(ctx context.Context, userID int64) ([]domain.Vote, error) {
	sql, args, err := psql.Select("abbreviation_id", "user_id", "type", "created_at").
		From("votes").Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "build votes query")
	}
	out, err := store.Many(ctx, s.q, func(r store.Row) (domain.Vote, error) {
		var v domain.Vote
		var typ string
		err := r.Scan(&v.ItemID, &v.UserID, &typ, &v.CreatedAt)
		v.Type = domain.Polarity(typ)
		return v, err
	}, sql, args...)
	if err != nil {
		return nil, perr.FromPostgresf(err, "load votes for user %d", userID)
	}
	return out, nil
}

// CommentsForUser returns the user's comments newest first
func (s *pg) CommentsForUser(ctx context.Context, userID int64) ([]domain.Comment, error) {
	sql, args, err := psql.Select("abbreviation_id", "user_id", "content", "created_at").
		From("comments").Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "build comments query")
	}
	out, err := store.Many(ctx, s.q, func(r store.Row) (domain.Comment, error) {
		var c domain.Comment
		err := r.Scan(&c.ItemID, &c.UserID, &c.Content, &c.CreatedAt)
		return c, err
	}, sql, args...)
	if err != nil {
		return nil, perr.FromPostgresf(err, "load comments for user %d", userID)
	}
	return out, nil
}

// InteractedItemIDs returns the distinct ids the user voted or commented on
func (s *pg) InteractedItemIDs(ctx context.Context, userID int64) ([]int64, error) {
	out, err := store.Many(ctx, s.q, func(r store.Row) (int64, error) {
		var id int64
		err := r.Scan(&id)
		return id, err
	}, interactedSQL, userID)
	if err != nil {
		return nil, perr.FromPostgresf(err, "load interacted items for user %d", userID)
	}
	return out, nil
}

const interactedSQL = `
SELECT abbreviation_id FROM votes WHERE user_id = $1
UNION
SELECT abbreviation_id FROM comments WHERE user_id = $1`

// ItemCategories maps ids of any status to their category, blank categories are omitted
func (s *pg) ItemCategories(ctx context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	sql, args, err := psql.Select("id", "category").From("abbreviations").
		Where(sq.Eq{"id": ids}).
		Where("COALESCE(category, '') <> ''").
		ToSql()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "build categories query")
	}
	type pair struct {
		id  int64
		cat string
	}
	rows, err := store.Many(ctx, s.q, func(r store.Row) (pair, error) {
		var p pair
		err := r.Scan(&p.id, &p.cat)
		return p, err
	}, sql, args...)
	if err != nil {
		return nil, perr.FromPostgresf(err, "load item categories")
	}
	for _, p := range rows {
		out[p.id] = p.cat
	}
	return out, nil
}

// PreferredCategories ranks the categories of items the user up voted, most votes first
func (s *pg) PreferredCategories(ctx context.Context, userID int64) ([]string, error) {
	sql, args, err := psql.Select("a.category").
		From("votes v").
		Join("abbreviations a ON a.id = v.abbreviation_id").
		Where(sq.Eq{"v.user_id": userID, "v.type": string(domain.Up)}).
		Where("COALESCE(a.category, '') <> ''").
		GroupBy("a.category").
		OrderBy("COUNT(*) DESC", "MAX(v.created_at) DESC").
		ToSql()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "build preferred categories query")
	}
	out, err := store.Many(ctx, s.q, func(r store.Row) (string, error) {
		var c string
		err := r.Scan(&c)
		return c, err
	}, sql, args...)
	if err != nil {
		return nil, perr.FromPostgresf(err, "load preferred categories for user %d", userID)
	}
	return out, nil
}
