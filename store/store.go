/*
store.go - Persistence interface for rule-set configurations

PURPOSE:
  Defines the interface between the API layer and storage. Only rule-set
  configurations and the active-set choice are persisted; household
  answers and assessments never reach a store.

KEY INTERFACES:
  RuleSetStore: Versioned rule-set JSON plus the active rule-set ID

VERSIONING CONTRACT:
  - SaveRuleSet() on a new ID stores version 1
  - SaveRuleSet() on an existing ID replaces the JSON, keeps CreatedAt,
    and increments Version
  - GetRuleSet() returns (nil, nil) for an unknown ID
  - ListRuleSets() orders by Year descending, then ID
  - DeleteRuleSet() on an unknown ID is not an error

IMPLEMENTATIONS:
  - store/sqlite: SQLite (default)
  - store/memory: In-memory, for tests and throwaway servers

SEE ALSO:
  - api/handlers.go: Rule-set administration endpoints
*/
package store

import (
	"context"
	"time"
)

// RuleSetRecord is a stored rule set with its JSON config.
type RuleSetRecord struct {
	ID         string
	Name       string
	Year       int
	ConfigJSON string
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RuleSetStore persists rule-set configurations.
type RuleSetStore interface {
	SaveRuleSet(ctx context.Context, rs RuleSetRecord) error
	GetRuleSet(ctx context.Context, id string) (*RuleSetRecord, error)
	ListRuleSets(ctx context.Context) ([]RuleSetRecord, error)
	DeleteRuleSet(ctx context.Context, id string) error

	// SetActiveRuleSet records which rule set assessments use by default.
	SetActiveRuleSet(ctx context.Context, id string) error
	// ActiveRuleSet returns the recorded active ID, or "" if none.
	ActiveRuleSet(ctx context.Context) (string, error)

	Ping(ctx context.Context) error
}
