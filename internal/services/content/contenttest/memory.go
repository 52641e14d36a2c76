// Package contenttest provides an in memory content store for tests
package contenttest

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	perr "glossrank/internal/platform/errors"
	"glossrank/internal/services/content/domain"
)

// Store is a domain.Reader over plain slices; it mirrors the postgres repo ordering
type Store struct {
	mu       sync.Mutex
	Users    map[int64]domain.User
	Items    []domain.Item
	Votes    []domain.Vote
	Comments []domain.Comment

	// Fail, when set, is returned by the named method ("*" for all)
	Fail map[string]error
	// Calls counts invocations per method
	Calls map[string]int
}

var _ domain.Reader = (*Store)(nil)

// New returns an empty store
func New() *Store {
	return &Store{Users: map[int64]domain.User{}, Fail: map[string]error{}, Calls: map[string]int{}}
}

// AddUser registers a user
func (s *Store) AddUser(u domain.User) *Store {
	s.Users[u.ID] = u
	return s
}

// AddItem registers an item
func (s *Store) AddItem(it domain.Item) *Store {
	s.Items = append(s.Items, it)
	return s
}

// AddVote registers a vote
func (s *Store) AddVote(v domain.Vote) *Store {
	s.Votes = append(s.Votes, v)
	return s
}

// AddComment registers a comment
func (s *Store) AddComment(c domain.Comment) *Store {
	s.Comments = append(s.Comments, c)
	return s
}

func (s *Store) enter(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls[op]++
	if err := s.Fail[op]; err != nil {
		return err
	}
	return s.Fail["*"]
}

func (s *Store) item(id int64) (domain.Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.Item{}, false
}

func (s *Store) stats(id int64) (votes, comments int) {
	for _, v := range s.Votes {
		if v.ItemID != id {
			continue
		}
		if v.Type == domain.Up {
			votes++
		} else {
			votes--
		}
	}
	for _, c := range s.Comments {
		if c.ItemID == id {
			comments++
		}
	}
	return votes, comments
}

// newestFirst orders by created_at desc then id desc
func newestFirst(a, b domain.Item) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// ApprovedItems implements domain.ItemReader
func (s *Store) ApprovedItems(_ context.Context, ids []int64) ([]domain.Item, error) {
	if err := s.enter("ApprovedItems"); err != nil {
		return nil, err
	}
	var out []domain.Item
	for _, it := range s.Items {
		if it.Status == domain.StatusApproved && slices.Contains(ids, it.ID) {
			out = append(out, it)
		}
	}
	return out, nil
}

// ItemStats implements domain.ItemReader
func (s *Store) ItemStats(_ context.Context, id int64) (domain.ItemStats, error) {
	if err := s.enter("ItemStats"); err != nil {
		return domain.ItemStats{}, err
	}
	it, ok := s.item(id)
	if !ok {
		return domain.ItemStats{}, perr.NotFoundf("item %d not found", id)
	}
	v, c := s.stats(id)
	return domain.ItemStats{ItemID: id, VotesSum: v, CommentsCount: c, CreatedAt: it.CreatedAt}, nil
}

// TrendingRows implements domain.ItemReader
func (s *Store) TrendingRows(_ context.Context, recentSince time.Time) ([]domain.TrendingRow, error) {
	if err := s.enter("TrendingRows"); err != nil {
		return nil, err
	}
	var items []domain.Item
	for _, it := range s.Items {
		if it.Status == domain.StatusApproved {
			items = append(items, it)
		}
	}
	slices.SortStableFunc(items, newestFirst)

	out := make([]domain.TrendingRow, 0, len(items))
	for _, it := range items {
		row := domain.TrendingRow{Item: it}
		for _, v := range s.Votes {
			if v.ItemID != it.ID {
				continue
			}
			if v.Type == domain.Up {
				row.UpVotes++
			} else {
				row.DownVotes++
			}
			if v.CreatedAt.After(recentSince) {
				row.RecentVotes++
			}
		}
		for _, c := range s.Comments {
			if c.ItemID != it.ID {
				continue
			}
			row.Comments++
			if c.CreatedAt.After(recentSince) {
				row.RecentComments++
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// RecentCandidates implements domain.ItemReader
func (s *Store) RecentCandidates(_ context.Context, exclude []int64, limit int) ([]domain.Candidate, error) {
	if err := s.enter("RecentCandidates"); err != nil {
		return nil, err
	}
	var items []domain.Item
	for _, it := range s.Items {
		if it.Status == domain.StatusApproved && !slices.Contains(exclude, it.ID) {
			items = append(items, it)
		}
	}
	slices.SortStableFunc(items, newestFirst)
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]domain.Candidate, 0, len(items))
	for _, it := range items {
		v, c := s.stats(it.ID)
		out = append(out, domain.Candidate{Item: it, VotesSum: v, CommentsCount: c})
	}
	return out, nil
}

// FindByAbbreviation implements domain.ItemReader
func (s *Store) FindByAbbreviation(_ context.Context, term string) (domain.Item, bool, error) {
	if err := s.enter("FindByAbbreviation"); err != nil {
		return domain.Item{}, false, err
	}
	for _, it := range s.Items {
		if it.Abbreviation == term {
			return it, true, nil
		}
	}
	return domain.Item{}, false, nil
}

// ApprovedByAbbreviations implements domain.ItemReader
func (s *Store) ApprovedByAbbreviations(_ context.Context, terms []string) ([]domain.Item, error) {
	if err := s.enter("ApprovedByAbbreviations"); err != nil {
		return nil, err
	}
	var out []domain.Item
	for _, it := range s.Items {
		if it.Status == domain.StatusApproved && slices.Contains(terms, it.Abbreviation) {
			out = append(out, it)
		}
	}
	return out, nil
}

// User implements domain.ActivityReader
func (s *Store) User(_ context.Context, id int64) (domain.User, error) {
	if err := s.enter("User"); err != nil {
		return domain.User{}, err
	}
	u, ok := s.Users[id]
	if !ok {
		return domain.User{}, perr.NotFoundf("user %d not found", id)
	}
	return u, nil
}

// VotesForUser implements domain.ActivityReader
func (s *Store) VotesForUser(_ context.Context, userID int64) ([]domain.Vote, error) {
	if err := s.enter("VotesForUser"); err != nil {
		return nil, err
	}
	var out []domain.Vote
	for _, v := range s.Votes {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Vote) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

// CommentsForUser implements domain.ActivityReader
func (s *Store) CommentsForUser(_ context.Context, userID int64) ([]domain.Comment, error) {
	if err := s.enter("CommentsForUser"); err != nil {
		return nil, err
	}
	var out []domain.Comment
	for _, c := range s.Comments {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Comment) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

// InteractedItemIDs implements domain.ActivityReader
func (s *Store) InteractedItemIDs(_ context.Context, userID int64) ([]int64, error) {
	if err := s.enter("InteractedItemIDs"); err != nil {
		return nil, err
	}
	var out []int64
	add := func(id int64) {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	for _, v := range s.Votes {
		if v.UserID == userID {
			add(v.ItemID)
		}
	}
	for _, c := range s.Comments {
		if c.UserID == userID {
			add(c.ItemID)
		}
	}
	return out, nil
}

// ItemCategories implements domain.ActivityReader
func (s *Store) ItemCategories(_ context.Context, ids []int64) (map[int64]string, error) {
	if err := s.enter("ItemCategories"); err != nil {
		return nil, err
	}
	out := map[int64]string{}
	for _, it := range s.Items {
		if it.Category != "" && slices.Contains(ids, it.ID) {
			out[it.ID] = it.Category
		}
	}
	return out, nil
}

// PreferredCategories implements domain.ActivityReader
func (s *Store) PreferredCategories(_ context.Context, userID int64) ([]string, error) {
	if err := s.enter("PreferredCategories"); err != nil {
		return nil, err
	}
	type tally struct {
		name   string
		count  int
		latest time.Time
	}
	idx := map[string]int{}
	var ts []tally
	for _, v := range s.Votes {
		if v.UserID != userID || v.Type != domain.Up {
			continue
		}
		it, ok := s.item(v.ItemID)
		if !ok || it.Category == "" {
			continue
		}
		i, seen := idx[it.Category]
		if !seen {
			i = len(ts)
			idx[it.Category] = i
			ts = append(ts, tally{name: it.Category})
		}
		ts[i].count++
		if v.CreatedAt.After(ts[i].latest) {
			ts[i].latest = v.CreatedAt
		}
	}
	slices.SortStableFunc(ts, func(a, b tally) int {
		if a.count != b.count {
			return cmp.Compare(b.count, a.count)
		}
		return b.latest.Compare(a.latest)
	})
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.name)
	}
	return out, nil
}
