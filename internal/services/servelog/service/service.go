// Package service records ranking serve events
package service

import (
	"context"
	"time"

	"glossrank/internal/platform/logger"
	ptime "glossrank/internal/platform/time"
	"glossrank/internal/services/servelog/domain"
	"glossrank/internal/services/servelog/repo"

	"github.com/google/uuid"
)

const writeTimeout = 2 * time.Second

// Service writes each event straight through to the repository
type Service struct {
	Repo  repo.Storage
	Now   ptime.Clock
	NewID func() uuid.UUID
}

// New constructs a Service
func New(r repo.Storage) *Service {
	return &Service{Repo: r, Now: ptime.System, NewID: uuid.New}
}

// Record stamps missing id and time then writes e; errors are logged and dropped
// the write outlives caller cancellation, bounded by a short timeout
func (s *Service) Record(ctx context.Context, e domain.Event) {
	if e.ID == uuid.Nil {
		e.ID = s.NewID()
	}
	if e.At.IsZero() {
		e.At = s.Now()
	}
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := s.Repo.WriteBatch(wctx, []domain.Event{e}); err != nil {
		logger.C(ctx).Warn().Err(err).Str("op", e.Op).Str("source", e.Source).Msg("serve log write failed")
	}
}

// Summary counts events per op and source since t
func (s *Service) Summary(ctx context.Context, since time.Time) ([]domain.SourceCount, error) {
	return s.Repo.Summary(ctx, since)
}

// Nop drops every event
type Nop struct{}

// Record implements domain.Recorder
func (Nop) Record(context.Context, domain.Event) {}
