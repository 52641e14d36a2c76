package cache

import (
	"context"
	"sync"
	"time"

	perr "glossrank/internal/platform/errors"

	"github.com/goccy/go-json"
)

// SweepInterval is how often Set purges every expired entry
const SweepInterval = time.Minute

// Memory is a process local Cache; values are stored encoded so reads never alias writer state
// expired entries are evicted on read and by a sweep during Set at most once per SweepInterval
type Memory struct {
	mu        sync.Mutex
	entries   map[string]memEntry
	now       func() time.Time
	nextSweep time.Time
}

type memEntry struct {
	raw     []byte
	expires time.Time
}

// NewMemory returns an empty Memory cache, now defaults to time.Now
func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{entries: map[string]memEntry{}, now: now}
}

// Get decodes the live entry for key into dst
func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if ok && !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.raw, dst); err != nil {
		return false, perr.Wrapf(err, perr.ErrorCodeJSON, "decode cached %s", key)
	}
	return true, nil
}

// Set stores v until ttl elapses, ttl <= 0 keeps the entry until deleted
func (m *Memory) Set(_ context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "encode cached %s", key)
	}
	now := m.now()
	e := memEntry{raw: raw}
	if ttl > 0 {
		e.expires = now.Add(ttl)
	}
	m.mu.Lock()
	if !now.Before(m.nextSweep) {
		m.sweepLocked(now)
		m.nextSweep = now.Add(SweepInterval)
	}
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) sweepLocked(now time.Time) {
	for k, e := range m.entries {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
}

// Delete drops key
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries including expired ones not yet evicted
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
