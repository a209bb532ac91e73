/*
Package generic provides the core threshold engine used by eligibility rules.

PURPOSE:
  This package contains domain-agnostic types for means-tested rules.
  Whether the rule is a weekly income ceiling, an asset test, or a
  per-person allowance, the same primitives describe the limit, compare
  a household's figure against it, and record what the comparison found.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A quantity with a unit (e.g., $780/week, $38,000)
  - Unit: What the quantity measures (weekly dollars or dollars)

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal so "income == limit" is exact
  2. Immutability: Every operation returns a new Amount
  3. Strictness: Comparisons are strict; equal to the limit passes

USAGE:
  limit := generic.NewAmountFromInt(780, generic.UnitDollarsPerWeek)
  income := generic.NewAmountFromDecimal(decimal.RequireFromString("780.00"), generic.UnitDollarsPerWeek)
  income.Exceeds(limit) // false: exactly at the limit still qualifies

SEE ALSO:
  - limit.go: Limit schedules keyed by household size
  - finding.go: Notes produced while evaluating rules
  - errors.go: Input validation errors
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitDollarsPerWeek Unit = "aud_per_week"
	UnitDollars        Unit = "aud"
)

func NewAmountFromInt(value int, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value)), Unit: unit}
}

func NewAmountFromDecimal(value decimal.Decimal, unit Unit) Amount {
	return Amount{Value: value, Unit: unit}
}

func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s), Unit: a.Unit} }
func (a Amount) IsNegative() bool             { return a.Value.IsNegative() }

// Exceeds reports whether a is strictly above the limit. A figure equal to
// the limit does not exceed it.
func (a Amount) Exceeds(limit Amount) bool { return a.Value.GreaterThan(limit.Value) }

// String renders the bare value ("1075", "22998.5").
func (a Amount) String() string { return a.Value.String() }

// Float64 is for DTOs only; never compare on it.
func (a Amount) Float64() float64 {
	f, _ := a.Value.Float64()
	return f
}
