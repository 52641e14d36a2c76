package domain

import (
	"context"
	"time"
)

// ItemReader reads approved content
// every method filters to StatusApproved even when ids name other rows
type ItemReader interface {
	ApprovedItems(ctx context.Context, ids []int64) ([]Item, error)
	ItemStats(ctx context.Context, id int64) (ItemStats, error)
	TrendingRows(ctx context.Context, recentSince time.Time) ([]TrendingRow, error)
	RecentCandidates(ctx context.Context, exclude []int64, limit int) ([]Candidate, error)
	FindByAbbreviation(ctx context.Context, term string) (Item, bool, error)
	ApprovedByAbbreviations(ctx context.Context, terms []string) ([]Item, error)
}

// ActivityReader reads identity and interaction history
type ActivityReader interface {
	User(ctx context.Context, id int64) (User, error)
	VotesForUser(ctx context.Context, userID int64) ([]Vote, error)
	CommentsForUser(ctx context.Context, userID int64) ([]Comment, error)
	InteractedItemIDs(ctx context.Context, userID int64) ([]int64, error)
	ItemCategories(ctx context.Context, ids []int64) (map[int64]string, error)
	PreferredCategories(ctx context.Context, userID int64) ([]string, error)
}

// Reader is the full read port
type Reader interface {
	ItemReader
	ActivityReader
}
