// Package domain holds the content and identity types the ranking core reads
package domain

import "time"

// Status is an item's moderation state
type Status string

// Item lifecycle states; only StatusApproved is ever ranked
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Polarity is the direction of a vote
type Polarity string

// Vote polarities
const (
	Up   Polarity = "up"
	Down Polarity = "down"
)

// Item is one glossary entry
type Item struct {
	ID           int64     `json:"id"`
	Abbreviation string    `json:"abbreviation"`
	Meaning      string    `json:"meaning"`
	Description  string    `json:"description"`
	Department   string    `json:"department,omitempty"`
	Category     string    `json:"category"`
	Status       Status    `json:"status"`
	UserID       int64     `json:"user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// User is the identity record a feature snapshot starts from
type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Vote is one user's vote on one item
type Vote struct {
	ItemID    int64
	UserID    int64
	Type      Polarity
	CreatedAt time.Time
}

// Comment is one user's comment on one item
type Comment struct {
	ItemID    int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

// ItemStats are the all time aggregates for one item
type ItemStats struct {
	ItemID        int64
	VotesSum      int
	CommentsCount int
	CreatedAt     time.Time
}

// TrendingRow is an approved item joined with all time and recent aggregates
type TrendingRow struct {
	Item
	UpVotes        int
	DownVotes      int
	Comments       int
	RecentVotes    int
	RecentComments int
}

// VoteScore is up minus down
func (r TrendingRow) VoteScore() int { return r.UpVotes - r.DownVotes }

// Candidate is a recent approved item with popularity aggregates used by fallback personal ranking
type Candidate struct {
	Item
	VotesSum      int
	CommentsCount int
}
