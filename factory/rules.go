/*
Package factory provides JSON to Go rule-set conversion.

PURPOSE:
  Converts JSON rule-set definitions into housing.RuleSet values. This
  enables a new year's published thresholds to be loaded without code
  changes: an administrator posts the JSON, the factory checks it, and the
  API starts evaluating against it.

WHY JSON?
  - Thresholds change every year; code releases should not have to
  - Easy to diff one year's table against the next
  - Database storage of rule-set configs

JSON SCHEMA:
  {
    "id": "au-2025",
    "name": "Australian public housing limits 2025",
    "year": 2025,
    "jurisdictions": [
      {
        "code": "NSW",
        "income": {"type": "stepped", "single": 780, "couple": 1075, "per_extra_person": 295},
        "assets": {"type": "tiered", "single": 38000, "couple": 63800, "family": 89000},
        "requires_independent_income": false,
        "wait": {"priority": "1-2 years", "general": "5-10 years"},
        "apply_url": "https://www.facs.nsw.gov.au/housing/apply"
      }
    ]
  }

KEY FEATURES:
  - Rejects unknown jurisdiction codes and schedule types
  - Rejects negative limits
  - Thresholds are decimals: "22998.35" stays 22998.35, never a float
  - Requires all eight jurisdictions (a rule set is total or it is nothing)

USAGE:
  f := factory.NewRuleFactory()
  rs, err := f.ParseRuleSet(jsonString)

  // Round-trip the compiled-in rules for storage
  jsonStr, err := f.Marshal(housing.DefaultRuleSet())

SEE ALSO:
  - housing/rules.go: RuleSet type and the 2025 rules
  - store/sqlite/sqlite.go: Rule-set persistence
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/housing-engine/generic"
	"github.com/warp/housing-engine/housing"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RuleSetJSON is the JSON representation of a rule set.
type RuleSetJSON struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Year          int                `json:"year"`
	Jurisdictions []JurisdictionJSON `json:"jurisdictions"`
}

// JurisdictionJSON is one jurisdiction's published configuration.
type JurisdictionJSON struct {
	Code                      string    `json:"code"`
	Income                    LimitJSON `json:"income"`
	Assets                    LimitJSON `json:"assets"`
	RequiresIndependentIncome bool      `json:"requires_independent_income,omitempty"`
	Wait                      WaitJSON  `json:"wait"`
	ApplyURL                  string    `json:"apply_url"`
}

// LimitJSON represents a limit schedule.
// Thresholds read from JSON numbers or strings and are written back as
// decimal strings, so cents survive a round trip exactly.
type LimitJSON struct {
	Type           string           `json:"type"` // stepped, tiered, flat
	Single         *decimal.Decimal `json:"single,omitempty"`
	Couple         *decimal.Decimal `json:"couple,omitempty"`
	PerExtraPerson *decimal.Decimal `json:"per_extra_person,omitempty"` // stepped
	Family         *decimal.Decimal `json:"family,omitempty"`           // tiered
	Value          *decimal.Decimal `json:"value,omitempty"`            // flat
}

// WaitJSON holds the wait-time bucket labels.
type WaitJSON struct {
	Priority string `json:"priority"`
	General  string `json:"general"`
}

// =============================================================================
// RULE FACTORY
// =============================================================================

// RuleFactory converts JSON rule sets to Go structs.
type RuleFactory struct{}

// NewRuleFactory creates a new rule factory.
func NewRuleFactory() *RuleFactory {
	return &RuleFactory{}
}

// ParseRuleSet parses a JSON string into a RuleSet.
func (f *RuleFactory) ParseRuleSet(jsonStr string) (*housing.RuleSet, error) {
	var rj RuleSetJSON
	if err := json.Unmarshal([]byte(jsonStr), &rj); err != nil {
		return nil, fmt.Errorf("failed to parse rule set JSON: %w", err)
	}
	return f.FromJSON(rj)
}

// FromJSON converts RuleSetJSON to a housing.RuleSet.
func (f *RuleFactory) FromJSON(rj RuleSetJSON) (*housing.RuleSet, error) {
	if strings.TrimSpace(rj.ID) == "" {
		return nil, fmt.Errorf("%w: id is required", generic.ErrIncompleteRuleSet)
	}

	rules := make([]housing.JurisdictionRule, 0, len(rj.Jurisdictions))
	for _, jj := range rj.Jurisdictions {
		j, err := housing.ParseJurisdiction(jj.Code)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", generic.ErrIncompleteRuleSet, err)
		}
		income, err := parseLimit(jj.Income, generic.UnitDollarsPerWeek)
		if err != nil {
			return nil, fmt.Errorf("%w: %s income: %v", generic.ErrIncompleteRuleSet, j, err)
		}
		assets, err := parseLimit(jj.Assets, generic.UnitDollars)
		if err != nil {
			return nil, fmt.Errorf("%w: %s assets: %v", generic.ErrIncompleteRuleSet, j, err)
		}
		rules = append(rules, housing.JurisdictionRule{
			Jurisdiction:              j,
			Income:                    income,
			Assets:                    assets,
			RequiresIndependentIncome: jj.RequiresIndependentIncome,
			PriorityWait:              jj.Wait.Priority,
			GeneralWait:               jj.Wait.General,
			ApplyURL:                  jj.ApplyURL,
		})
	}

	return housing.NewRuleSet(rj.ID, rj.Name, rj.Year, rules)
}

// ToJSON converts a RuleSet to RuleSetJSON.
func (f *RuleFactory) ToJSON(rs *housing.RuleSet) RuleSetJSON {
	rj := RuleSetJSON{ID: rs.ID, Name: rs.Name, Year: rs.Year}
	for _, r := range rs.Rules() {
		rj.Jurisdictions = append(rj.Jurisdictions, JurisdictionJSON{
			Code:                      string(r.Jurisdiction),
			Income:                    limitToJSON(r.Income),
			Assets:                    limitToJSON(r.Assets),
			RequiresIndependentIncome: r.RequiresIndependentIncome,
			Wait:                      WaitJSON{Priority: r.PriorityWait, General: r.GeneralWait},
			ApplyURL:                  r.ApplyURL,
		})
	}
	return rj
}

// Marshal renders a RuleSet as an indented JSON string.
func (f *RuleFactory) Marshal(rs *housing.RuleSet) (string, error) {
	b, err := json.MarshalIndent(f.ToJSON(rs), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseLimit(lj LimitJSON, unit generic.Unit) (generic.LimitSchedule, error) {
	switch generic.LimitKind(lj.Type) {
	case generic.LimitStepped:
		single, err := amount("single", lj.Single, unit)
		if err != nil {
			return nil, err
		}
		couple, err := amount("couple", lj.Couple, unit)
		if err != nil {
			return nil, err
		}
		extra, err := amount("per_extra_person", lj.PerExtraPerson, unit)
		if err != nil {
			return nil, err
		}
		return generic.SteppedLimit{Single: single, Couple: couple, PerExtraPerson: extra}, nil

	case generic.LimitTiered:
		single, err := amount("single", lj.Single, unit)
		if err != nil {
			return nil, err
		}
		couple, err := amount("couple", lj.Couple, unit)
		if err != nil {
			return nil, err
		}
		family, err := amount("family", lj.Family, unit)
		if err != nil {
			return nil, err
		}
		return generic.TieredLimit{Single: single, Couple: couple, Family: family}, nil

	case generic.LimitFlat:
		v, err := amount("value", lj.Value, unit)
		if err != nil {
			return nil, err
		}
		return generic.FlatLimit{Value: v}, nil

	default:
		return nil, fmt.Errorf("unknown limit type: %q", lj.Type)
	}
}

func amount(field string, v *decimal.Decimal, unit generic.Unit) (generic.Amount, error) {
	if v == nil {
		return generic.Amount{}, fmt.Errorf("%s is required", field)
	}
	a := generic.NewAmountFromDecimal(*v, unit)
	if a.IsNegative() {
		return generic.Amount{}, fmt.Errorf("%s must not be negative", field)
	}
	return a, nil
}

func limitToJSON(s generic.LimitSchedule) LimitJSON {
	lj := LimitJSON{Type: string(s.Kind())}
	switch l := s.(type) {
	case generic.SteppedLimit:
		lj.Single = decPtr(l.Single.Value)
		lj.Couple = decPtr(l.Couple.Value)
		lj.PerExtraPerson = decPtr(l.PerExtraPerson.Value)
	case generic.TieredLimit:
		lj.Single = decPtr(l.Single.Value)
		lj.Couple = decPtr(l.Couple.Value)
		lj.Family = decPtr(l.Family.Value)
	case generic.FlatLimit:
		lj.Value = decPtr(l.Value.Value)
	}
	return lj
}

func decPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
