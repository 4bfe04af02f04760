package store

import (
	"context"
	"sync"

	"github.com/katalvlaran/skiroute/skiing"
)

// Memory keeps runs in process memory. The zero value is not usable; call
// NewMemory.
type Memory struct {
	mu       sync.RWMutex
	runs     map[string]*skiing.Report
	byDigest map[string]string
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{
		runs:     make(map[string]*skiing.Report),
		byDigest: make(map[string]string),
	}
}

// CreateSchema is a no-op.
func (m *Memory) CreateSchema(context.Context) error { return nil }

func (m *Memory) SaveRun(_ context.Context, rep *skiing.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.runs[rep.ID]; ok && old.Digest != rep.Digest {
		m.unindex(old)
	}
	m.runs[rep.ID] = Clone(rep)
	if cur, ok := m.runs[m.byDigest[rep.Digest]]; !ok || !cur.CreatedAt.After(rep.CreatedAt) {
		m.byDigest[rep.Digest] = rep.ID
	}

	return nil
}

func (m *Memory) GetRun(_ context.Context, id string) (*skiing.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rep, ok := m.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return Clone(rep), nil
}

func (m *Memory) FindByDigest(_ context.Context, digest string) (*skiing.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rep, ok := m.runs[m.byDigest[digest]]
	if !ok {
		return nil, ErrRunNotFound
	}
	return Clone(rep), nil
}

func (m *Memory) ListRuns(_ context.Context, limit int) ([]skiing.Report, error) {
	m.mu.RLock()
	runs := make([]skiing.Report, 0, len(m.runs))
	for _, rep := range m.runs {
		runs = append(runs, *Clone(rep))
	}
	m.mu.RUnlock()

	SortNewestFirst(runs)
	if limit = NormalizeLimit(limit); len(runs) > limit {
		runs = runs[:limit]
	}

	return runs, nil
}

func (m *Memory) DeleteRun(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rep, ok := m.runs[id]
	if !ok {
		return ErrRunNotFound
	}
	delete(m.runs, id)
	m.unindex(rep)

	return nil
}

// unindex drops rep from the digest index and falls back to the newest
// remaining run with the same digest. Caller holds mu.
func (m *Memory) unindex(rep *skiing.Report) {
	if m.byDigest[rep.Digest] != rep.ID {
		return
	}
	delete(m.byDigest, rep.Digest)
	var best *skiing.Report
	for _, r := range m.runs {
		if r.Digest != rep.Digest || r.ID == rep.ID {
			continue
		}
		if best == nil || r.CreatedAt.After(best.CreatedAt) {
			best = r
		}
	}
	if best != nil {
		m.byDigest[best.Digest] = best.ID
	}
}
