/*
limit.go - Limit schedules keyed by household size

PURPOSE:
  A means test never has a single ceiling: the limit grows with the number
  of people in the household. A LimitSchedule maps a household size to the
  ceiling that applies to it.

SCHEDULE KINDS:
  SteppedLimit:
    - Fixed values for one and two people
    - Every person beyond two adds a fixed increment
    - Example (NSW income): 780 / 1075 / +295 per extra person
      size 3 -> 1370, size 5 -> 1960

  TieredLimit:
    - Fixed values for one, two, and three-or-more people
    - Example (NSW assets): 38000 / 63800 / 89000

  FlatLimit:
    - Same value for every household size
    - Example (VIC assets): 22998

CALLER CONTRACT:
  Household size must be >= 1. Validation happens before the schedule is
  consulted; schedules treat anything below 1 as a single-person household.

SEE ALSO:
  - types.go: Amount
  - housing/rules.go: Per-jurisdiction schedules
  - factory/rules.go: JSON representation of schedules
*/
package generic

import "github.com/shopspring/decimal"

// LimitKind names a schedule shape for serialization.
type LimitKind string

const (
	LimitStepped LimitKind = "stepped"
	LimitTiered  LimitKind = "tiered"
	LimitFlat    LimitKind = "flat"
)

// LimitSchedule returns the ceiling for a household of the given size.
type LimitSchedule interface {
	LimitFor(householdSize int) Amount
	Kind() LimitKind
}

// =============================================================================
// STEPPED - single / couple / increment per extra person
// =============================================================================

type SteppedLimit struct {
	Single         Amount
	Couple         Amount
	PerExtraPerson Amount
}

func (s SteppedLimit) LimitFor(householdSize int) Amount {
	switch {
	case householdSize <= 1:
		return s.Single
	case householdSize == 2:
		return s.Couple
	default:
		extra := decimal.NewFromInt(int64(householdSize - 2))
		return s.Couple.Add(s.PerExtraPerson.Mul(extra))
	}
}

func (s SteppedLimit) Kind() LimitKind { return LimitStepped }

// =============================================================================
// TIERED - single / couple / family (3+)
// =============================================================================

type TieredLimit struct {
	Single Amount
	Couple Amount
	Family Amount
}

func (t TieredLimit) LimitFor(householdSize int) Amount {
	switch {
	case householdSize <= 1:
		return t.Single
	case householdSize == 2:
		return t.Couple
	default:
		return t.Family
	}
}

func (t TieredLimit) Kind() LimitKind { return LimitTiered }

// =============================================================================
// FLAT
// =============================================================================

type FlatLimit struct {
	Value Amount
}

func (f FlatLimit) LimitFor(int) Amount { return f.Value }
func (f FlatLimit) Kind() LimitKind   { return LimitFlat }

// Compile-time checks
var (
	_ LimitSchedule = SteppedLimit{}
	_ LimitSchedule = TieredLimit{}
	_ LimitSchedule = FlatLimit{}
)
