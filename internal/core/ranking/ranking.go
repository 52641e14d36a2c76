// Package ranking holds the pure scoring math shared by trending and personalized ranking
//
// Trending heuristic
//
//	raw = 0.3*vote_score + 0.2*comment_count + age_bonus + 0.4*recent_votes + 0.1*recent_comments
//	display = round3(clamp(raw/10, 0.01, 1))
//
// Fallback personal heuristic, index is the position in the recency ordered candidate list
//
//	score = 0.3 + recency + popularity + category - 0.01*index + jitter
//	final = round2(clamp(score, 0.1, 1))
package ranking

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// Reasons attached to trending items by source
const (
	ReasonRemoteTrending = "Trending skraćenice na osnovu ML algoritma"
	ReasonLocalTrending  = "Trending skraćenice na osnovu glasova i komentara (fallback)"
)

// Source names which path produced a ranked list
type Source string

// ranked list sources
const (
	SourceRemote   Source = "ml_service"
	SourceLocal    Source = "local"
	SourceFallback Source = "fallback"
)

// RecentWindow bounds the recent vote and comment counters
const RecentWindow = 7 * 24 * time.Hour

const (
	displayFloor = 0.01
	displayCeil  = 1.0
	personFloor  = 0.1
	personCeil   = 1.0
)

// Item is one ranked entry; local and remote paths produce the same shape
type Item struct {
	ID           int64   `json:"id"`
	Abbreviation string  `json:"abbreviation"`
	Meaning      string  `json:"meaning"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Score        float64 `json:"score"`
	Reason       string  `json:"recommendation_reason,omitempty"`

	// set only by the local trending heuristic
	Raw      *float64 `json:"similarity_score,omitempty"`
	VotesSum *int     `json:"votes_sum,omitempty"`
}

// TrendingInput carries the aggregates one item needs for the trending heuristic
type TrendingInput struct {
	VoteScore      int
	CommentCount   int
	RecentVotes    int
	RecentComments int
	CreatedAt      time.Time
}

// AgeBonus is 5 for items younger than 7 days, 2 for younger than 30 days, else 0
func AgeBonus(created, now time.Time) float64 {
	age := now.Sub(created)
	switch {
	case age < 7*24*time.Hour:
		return 5
	case age < 30*24*time.Hour:
		return 2
	default:
		return 0
	}
}

// TrendingRaw is the unbounded trending score that drives ordering
func TrendingRaw(in TrendingInput, now time.Time) float64 {
	return 0.3*float64(in.VoteScore) +
		0.2*float64(in.CommentCount) +
		AgeBonus(in.CreatedAt, now) +
		0.4*float64(in.RecentVotes) +
		0.1*float64(in.RecentComments)
}

// DisplayScore maps raw into [0.01, 1] rounded to 3 decimals
// raw above 10 saturates at 1 so very active items compress together
func DisplayScore(raw float64) float64 {
	return Round(Clamp(raw/10, displayFloor, displayCeil), 3)
}

// PersonalInput carries what one candidate needs for the fallback personal heuristic
type PersonalInput struct {
	CreatedAt    time.Time
	VotesSum     int
	CommentCount int
	Category     string
}

// RecencyComponent decays linearly from 0.3 at day 0 to 0 at day 30
func RecencyComponent(days float64) float64 {
	return math.Max(0, (30-days)/30) * 0.3
}

// PopularityComponent is capped at 0.3
func PopularityComponent(votesSum, comments int) float64 {
	return math.Min(0.3, (0.1*float64(votesSum)+0.05*float64(comments))/10)
}

// CategoryComponent rewards categories by their rank in prefs, 0 when absent
func CategoryComponent(category string, prefs []string) float64 {
	n := len(prefs)
	if n == 0 {
		return 0
	}
	rank := slices.Index(prefs, category)
	if rank < 0 {
		return 0
	}
	return math.Max(0, float64(n-rank)/float64(n)) * 0.2
}

// WholeDaysSince counts completed days between created and now, never negative
func WholeDaysSince(created, now time.Time) float64 {
	d := math.Floor(now.Sub(created).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// PersonalScore scores the candidate at index with the given jitter draw
func PersonalScore(in PersonalInput, index int, prefs []string, now time.Time, jitter float64) float64 {
	s := 0.3 +
		RecencyComponent(WholeDaysSince(in.CreatedAt, now)) +
		PopularityComponent(in.VotesSum, in.CommentCount) +
		CategoryComponent(in.Category, prefs) -
		0.01*float64(index) +
		jitter
	return Round(Clamp(s, personFloor, personCeil), 2)
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round rounds half away from zero to places decimals
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// SortByScore orders items by Score descending keeping the incoming order for ties
func SortByScore(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int { return cmp.Compare(b.Score, a.Score) })
}

// Top returns at most n leading items
func Top(items []Item, n int) []Item {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
