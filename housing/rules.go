/*
rules.go - Per-jurisdiction eligibility rules and the 2025 rule set

PURPOSE:
  Holds the static configuration each state and territory publishes:
  income limits, asset limits, the QLD independent-income requirement,
  wait-time buckets, and where to apply. None of this is logic; the
  evaluator reads it, nothing writes it.

2025 THRESHOLDS (weekly income; assets):
  NSW  780 / 1075 / +295    38000 / 63800 / 89000
  VIC 1157 / 1769 / +617    22998 flat
  QLD  609 /  742 / +133   122875 / 147875 / 172875   independent income required
  SA   869 / 1062 / +193    38400 / 63800 / 89000
  WA   606 /  808 / +202    38400 / 63800 / 89000
  TAS  780 / 1075 / +295    38400 / 63800 / 89000
  NT   800 / 1100 / +300    38400 / 63800 / 89000
  ACT  887 / 1109 / +148    40000 flat

RULE SETS:
  A RuleSet bundles one rule per jurisdiction under an ID (e.g. "au-2025").
  DefaultRuleSet is compiled in; other sets can be loaded from JSON via
  the factory package and stored in SQLite. A RuleSet is never mutated
  after construction, so it is safe to share across goroutines.

SEE ALSO:
  - evaluator.go: Applies a rule to an EligibilityInput
  - factory/rules.go: JSON <-> RuleSet
*/
package housing

import (
	"fmt"

	"github.com/warp/housing-engine/generic"
)

// JurisdictionRule is the published configuration for one jurisdiction.
type JurisdictionRule struct {
	Jurisdiction              Jurisdiction
	Income                    generic.LimitSchedule // weekly gross, by household size
	Assets                    generic.LimitSchedule
	RequiresIndependentIncome bool
	PriorityWait              string
	GeneralWait               string
	ApplyURL                  string
}

// IncomeLimit returns the weekly income ceiling for the household size.
func (r JurisdictionRule) IncomeLimit(householdSize int) generic.Amount {
	return r.Income.LimitFor(householdSize)
}

// AssetLimit returns the asset ceiling for the household size.
func (r JurisdictionRule) AssetLimit(householdSize int) generic.Amount {
	return r.Assets.LimitFor(householdSize)
}

// WaitFor picks the wait-time bucket for the priority flag.
func (r JurisdictionRule) WaitFor(priority bool) string {
	if priority {
		return r.PriorityWait
	}
	return r.GeneralWait
}

// =============================================================================
// RULE SET
// =============================================================================

// RuleSet is a complete table of jurisdiction rules.
type RuleSet struct {
	ID    string
	Name  string
	Year  int
	rules map[Jurisdiction]JurisdictionRule
}

// NewRuleSet builds a rule set and checks that every jurisdiction has a
// rule with both schedules present.
func NewRuleSet(id, name string, year int, rules []JurisdictionRule) (*RuleSet, error) {
	rs := &RuleSet{ID: id, Name: name, Year: year, rules: make(map[Jurisdiction]JurisdictionRule, len(rules))}
	for _, r := range rules {
		if !r.Jurisdiction.Valid() {
			return nil, fmt.Errorf("%w: unknown jurisdiction %q", generic.ErrIncompleteRuleSet, r.Jurisdiction)
		}
		if r.Income == nil || r.Assets == nil {
			return nil, fmt.Errorf("%w: %s is missing a limit schedule", generic.ErrIncompleteRuleSet, r.Jurisdiction)
		}
		if _, dup := rs.rules[r.Jurisdiction]; dup {
			return nil, fmt.Errorf("%w: %s defined twice", generic.ErrIncompleteRuleSet, r.Jurisdiction)
		}
		rs.rules[r.Jurisdiction] = r
	}
	for _, j := range Jurisdictions {
		if _, ok := rs.rules[j]; !ok {
			return nil, fmt.Errorf("%w: no rule for %s", generic.ErrIncompleteRuleSet, j)
		}
	}
	return rs, nil
}

// Rule returns the rule for a jurisdiction.
func (rs *RuleSet) Rule(j Jurisdiction) (JurisdictionRule, error) {
	r, ok := rs.rules[j]
	if !ok {
		return JurisdictionRule{}, &generic.InvalidInputError{
			Field:  "jurisdiction",
			Value:  string(j),
			Reason: "unknown state or territory code",
			Err:    generic.ErrUnknownJurisdiction,
		}
	}
	return r, nil
}

// Rules returns every rule in display order.
func (rs *RuleSet) Rules() []JurisdictionRule {
	out := make([]JurisdictionRule, 0, len(Jurisdictions))
	for _, j := range Jurisdictions {
		out = append(out, rs.rules[j])
	}
	return out
}

// =============================================================================
// 2025 RULE SET
// =============================================================================

const DefaultRuleSetID = "au-2025"

func weekly(v int) generic.Amount  { return generic.NewAmountFromInt(v, generic.UnitDollarsPerWeek) }
func dollars(v int) generic.Amount { return generic.NewAmountFromInt(v, generic.UnitDollars) }

func stepped(single, couple, extra int) generic.SteppedLimit {
	return generic.SteppedLimit{Single: weekly(single), Couple: weekly(couple), PerExtraPerson: weekly(extra)}
}

func tiered(single, couple, family int) generic.TieredLimit {
	return generic.TieredLimit{Single: dollars(single), Couple: dollars(couple), Family: dollars(family)}
}

func flat(v int) generic.FlatLimit { return generic.FlatLimit{Value: dollars(v)} }

// Rules2025 returns the 2025 published rules.
func Rules2025() []JurisdictionRule {
	return []JurisdictionRule{
		{
			Jurisdiction: NSW,
			Income:       stepped(780, 1075, 295),
			Assets:       tiered(38000, 63800, 89000),
			PriorityWait: "1-2 years",
			GeneralWait:  "5-10 years",
			ApplyURL:     "https://www.facs.nsw.gov.au/housing/apply",
		},
		{
			Jurisdiction: VIC,
			Income:       stepped(1157, 1769, 617),
			Assets:       flat(22998),
			PriorityWait: "18-20 months",
			GeneralWait:  "3-5 years",
			ApplyURL:     "https://www.housing.vic.gov.au/apply-social-housing",
		},
		{
			Jurisdiction:              QLD,
			Income:                    stepped(609, 742, 133),
			Assets:                    tiered(122875, 147875, 172875),
			RequiresIndependentIncome: true,
			PriorityWait:              "21-28 months",
			GeneralWait:               "3-5 years",
			ApplyURL:                  "https://www.qld.gov.au/housing/public-community-housing/apply",
		},
		{
			Jurisdiction: SA,
			Income:       stepped(869, 1062, 193),
			Assets:       tiered(38400, 63800, 89000),
			PriorityWait: "1-3 years",
			GeneralWait:  "3-5 years",
			ApplyURL:     "https://housing.sa.gov.au/services/public-housing/apply-for-housing",
		},
		{
			Jurisdiction: WA,
			Income:       stepped(606, 808, 202),
			Assets:       tiered(38400, 63800, 89000),
			PriorityWait: "2-3 years",
			GeneralWait:  "3-5 years",
			ApplyURL:     "https://www.wa.gov.au/service/housing-and-property/public-housing/apply-public-housing",
		},
		{
			Jurisdiction: TAS,
			Income:       stepped(780, 1075, 295),
			Assets:       tiered(38400, 63800, 89000),
			PriorityWait: "1-2 years",
			GeneralWait:  "2-3 years",
			ApplyURL:     "https://www.homestasmania.com.au/Apply-for-Housing",
		},
		{
			Jurisdiction: NT,
			Income:       stepped(800, 1100, 300),
			Assets:       tiered(38400, 63800, 89000),
			PriorityWait: "5-8 years",
			GeneralWait:  "8-10 years",
			ApplyURL:     "https://nt.gov.au/property/social-housing/apply-for-housing/apply-for-public-housing",
		},
		{
			Jurisdiction: ACT,
			Income:       stepped(887, 1109, 148),
			Assets:       flat(40000),
			PriorityWait: "1-2 years",
			GeneralWait:  "3-5 years",
			ApplyURL:     "https://www.act.gov.au/housing-planning-and-property/public-housing/apply-for-housing",
		},
	}
}

var defaultRuleSet = mustRuleSet(DefaultRuleSetID, "Australian public housing limits 2025", 2025, Rules2025())

func mustRuleSet(id, name string, year int, rules []JurisdictionRule) *RuleSet {
	rs, err := NewRuleSet(id, name, year, rules)
	if err != nil {
		panic(err)
	}
	return rs
}

// DefaultRuleSet returns the compiled-in 2025 rule set.
func DefaultRuleSet() *RuleSet { return defaultRuleSet }
