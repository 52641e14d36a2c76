// Package domain holds the serve log event types
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event records which source answered one ranked response
type Event struct {
	ID        uuid.UUID
	At        time.Time
	Op        string
	UserID    int64
	Source    string
	Fallback  bool
	ItemCount int
}

// SourceCount is one row of a serve summary
type SourceCount struct {
	Op       string `json:"op"`
	Source   string `json:"source"`
	Fallback bool   `json:"fallback"`
	Count    uint64 `json:"count"`
}

// Recorder accepts serve events; implementations never fail the caller
type Recorder interface {
	Record(ctx context.Context, e Event)
}
