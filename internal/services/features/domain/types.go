// Package domain holds the per request user feature snapshot
package domain

import (
	"context"
	"time"
)

// InteractionKind tags an entry in the interaction log
type InteractionKind string

// interaction kinds
const (
	KindVote    InteractionKind = "vote"
	KindComment InteractionKind = "comment"
)

// Interaction is one vote or comment in the recency ordered log
type Interaction struct {
	Kind      InteractionKind `json:"type"`
	ItemID    int64           `json:"abbreviation_id"`
	CreatedAt time.Time       `json:"created_at"`
	Metadata  map[string]any  `json:"metadata"`
}

// VoteRef is the raw vote shape the remote scorer expects
type VoteRef struct {
	ItemID int64  `json:"abbreviation_id"`
	Type   string `json:"type"`
}

// CommentRef is the raw comment shape the remote scorer expects
type CommentRef struct {
	ItemID  int64  `json:"abbreviation_id"`
	Content string `json:"content"`
}

// Snapshot summarizes one user's history; it is rebuilt on every request
type Snapshot struct {
	UserID           int64         `json:"user_id"`
	Email            string        `json:"email"`
	Department       string        `json:"department"`
	SearchHistory    []string      `json:"search_history"`
	ViewedItems      []int64       `json:"viewed_abbreviations"`
	VotedItems       []int64       `json:"voted_abbreviations"`
	CommonCategories []string      `json:"common_categories"`
	Interactions     []Interaction `json:"interactions"`

	// raw lists are only filled for the remote variant
	Votes    []VoteRef    `json:"votes,omitempty"`
	Comments []CommentRef `json:"comments,omitempty"`
}

// Variant selects how much history a snapshot carries
type Variant struct {
	Name          string
	MaxLog        int
	TopCategories int
	IncludeRaw    bool
}

// RemoteVariant feeds the remote scorer
func RemoteVariant() Variant {
	return Variant{Name: "remote", MaxLog: 10, TopCategories: 5, IncludeRaw: true}
}

// DiagnosticVariant is the richer view served for inspection
func DiagnosticVariant() Variant {
	return Variant{Name: "diagnostic", MaxLog: 100, TopCategories: 5}
}

// Builder is the port other services consume
type Builder interface {
	Build(ctx context.Context, userID int64, v Variant) (Snapshot, error)
}
