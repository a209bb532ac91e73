package housing

import (
	"github.com/shopspring/decimal"
	"github.com/warp/housing-engine/generic"
)

// EligibilityInput is one household's answers to the quiz.
// All fields are required; the zero value is not a valid input.
type EligibilityInput struct {
	Jurisdiction           Jurisdiction
	IsCitizenOrPR          bool
	IsJurisdictionResident bool
	OwnsProperty           bool
	HouseholdSize          int
	HasIndependentIncome   bool
	WeeklyGrossIncome      decimal.Decimal // before tax
	AssessableAssets       decimal.Decimal // excludes superannuation
	HasPriorityNeed        bool
}

// Income returns the weekly gross income as an Amount.
func (in EligibilityInput) Income() generic.Amount {
	return generic.NewAmountFromDecimal(in.WeeklyGrossIncome, generic.UnitDollarsPerWeek)
}

// Assets returns the assessable assets as an Amount.
func (in EligibilityInput) Assets() generic.Amount {
	return generic.NewAmountFromDecimal(in.AssessableAssets, generic.UnitDollars)
}

// Validate checks every field against its declared domain. The first
// violation is returned; nothing is coerced or defaulted.
func (in EligibilityInput) Validate() error {
	if !in.Jurisdiction.Valid() {
		return &generic.InvalidInputError{
			Field:  "jurisdiction",
			Value:  string(in.Jurisdiction),
			Reason: "unknown state or territory code",
			Err:    generic.ErrUnknownJurisdiction,
		}
	}
	if in.HouseholdSize < 1 {
		return &generic.InvalidInputError{
			Field:  "household_size",
			Value:  in.HouseholdSize,
			Reason: "must be at least 1",
		}
	}
	if income := in.Income(); income.IsNegative() {
		return &generic.InvalidInputError{
			Field:  "weekly_gross_income",
			Value:  income.String(),
			Reason: "must not be negative",
		}
	}
	if assets := in.Assets(); assets.IsNegative() {
		return &generic.InvalidInputError{
			Field:  "assessable_assets",
			Value:  assets.String(),
			Reason: "must not be negative",
		}
	}
	return nil
}
