// Package domain declares the trending calculator ports
package domain

import (
	"context"

	"glossrank/internal/adapters/scorer"
	"glossrank/internal/core/ranking"
)

// TrendingScorer is the slice of the scoring client the calculator uses
type TrendingScorer interface {
	FetchTrending(ctx context.Context, limit int) scorer.Outcome[scorer.TrendingPayload]
}

// Ranked is a list plus the path that produced it
type Ranked struct {
	Items  []ranking.Item `json:"items"`
	Source ranking.Source `json:"source"`
}

// Calculator is the port the orchestrator and http layer consume
type Calculator interface {
	Trending(ctx context.Context, limit int) (Ranked, error)
	Local(ctx context.Context, limit int) ([]ranking.Item, error)
	FallbackPersonal(ctx context.Context, userID int64, limit int) ([]ranking.Item, error)
}
