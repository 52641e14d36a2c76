// Package domain holds the recommendation result and the ports the orchestrator needs
package domain

import (
	"context"

	"glossrank/internal/adapters/scorer"
	"glossrank/internal/core/ranking"
)

// Status is the outcome of one personalized call
type Status string

// result statuses
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// user facing messages
const (
	MsgRemote   = "Personal recommendations retrieved successfully"
	MsgFallback = "Personal recommendations retrieved successfully (fallback)"
	MsgNotFound = "User not found"
	MsgFailed   = "Failed to get personalized recommendations"
)

// Result is what personalized returns; callers never receive an error value
type Result struct {
	Status   Status         `json:"status"`
	Data     []ranking.Item `json:"data"`
	Message  string         `json:"message"`
	Source   ranking.Source `json:"source,omitempty"`
	Fallback bool           `json:"fallback,omitempty"`
	Error    string         `json:"error,omitempty"`

	// NotFound separates the missing user case from a data layer failure
	NotFound bool `json:"-"`
}

// OK reports a success result
func (r Result) OK() bool { return r.Status == StatusSuccess }

// PersonalScorer is the slice of the scoring client the orchestrator uses
type PersonalScorer interface {
	FetchPersonalized(ctx context.Context, userID int64, userData any, limit int) scorer.Outcome[scorer.PersonalPayload]
}

// FallbackRanker computes the local personalized list
type FallbackRanker interface {
	FallbackPersonal(ctx context.Context, userID int64, limit int) ([]ranking.Item, error)
}

// Recommender is the port the http layer consumes
type Recommender interface {
	Personalized(ctx context.Context, userID int64, limit int) Result
}
