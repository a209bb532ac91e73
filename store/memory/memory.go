// Package memory provides an in-memory RuleSetStore.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/housing-engine/store"
)

var _ store.RuleSetStore = (*Memory)(nil)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	ruleSets map[string]store.RuleSetRecord
	active   string
	now      func() time.Time
}

func New() *Memory {
	return &Memory{
		ruleSets: make(map[string]store.RuleSetRecord),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SaveRuleSet stores a rule set, replacing and re-versioning an existing ID.
func (m *Memory) SaveRuleSet(_ context.Context, rs store.RuleSetRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	rs.Version = 1
	rs.CreatedAt = now
	if prev, ok := m.ruleSets[rs.ID]; ok {
		rs.Version = prev.Version + 1
		rs.CreatedAt = prev.CreatedAt
	}
	rs.UpdatedAt = now
	m.ruleSets[rs.ID] = rs
	return nil
}

// GetRuleSet returns a copy of the record, or nil if absent.
func (m *Memory) GetRuleSet(_ context.Context, id string) (*store.RuleSetRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rs, ok := m.ruleSets[id]
	if !ok {
		return nil, nil
	}
	return &rs, nil
}

// ListRuleSets returns every record, newest year first.
func (m *Memory) ListRuleSets(_ context.Context) ([]store.RuleSetRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]store.RuleSetRecord, 0, len(m.ruleSets))
	for _, rs := range m.ruleSets {
		out = append(out, rs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) DeleteRuleSet(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ruleSets, id)
	return nil
}

func (m *Memory) SetActiveRuleSet(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = id
	return nil
}

func (m *Memory) ActiveRuleSet(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active, nil
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// Close is a no-op so Memory can stand in for a closable store.
func (m *Memory) Close() error { return nil }
