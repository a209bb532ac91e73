/*
evaluator.go - Public housing eligibility decision

PURPOSE:
  Maps one household's answers to a verdict, ordered notes, and a
  wait-time bucket. Pure: reads only its input and a read-only RuleSet,
  returns a fresh result, no I/O, no clock.

RULE ORDER:
  1. Gatekeeping chain (citizenship -> residency -> property). Only the
     first failing gate is reported.
  2. Jurisdiction limits at the household size. Rules that require an
     independent income (QLD) check it here, regardless of step 1.
  3. Income test: strictly above the limit fails.
  4. Asset test: strictly above the limit fails.
  5. Priority need: informational note only.
  6. Wait estimate: priority or general bucket.

  Steps 1-5 all run; the verdict is the conjunction, and every
  triggered note is kept.

SEE ALSO:
  - rules.go: Threshold tables
  - generic/finding.go: Findings and gate chains
*/
package housing

import (
	"fmt"

	"github.com/warp/housing-engine/generic"
)

// Evaluate assesses the input against the 2025 rule set.
func Evaluate(in EligibilityInput) (AssessmentResult, error) {
	return defaultRuleSet.Evaluate(in)
}

// gatekeeping is ordered: citizenship, then residency, then ownership.
var gatekeeping = []generic.Gate[EligibilityInput]{
	{
		Code:  NoteNotCitizen,
		Fails: func(in EligibilityInput) bool { return !in.IsCitizenOrPR },
		Message: func(EligibilityInput) string {
			return "You must be an Australian citizen or permanent resident to be eligible."
		},
	},
	{
		Code:  NoteNotResident,
		Fails: func(in EligibilityInput) bool { return !in.IsJurisdictionResident },
		Message: func(in EligibilityInput) string {
			return fmt.Sprintf("You need to be a %s resident to apply here.", in.Jurisdiction)
		},
	},
	{
		Code:  NoteOwnsProperty,
		Fails: func(in EligibilityInput) bool { return in.OwnsProperty },
		Message: func(EligibilityInput) string {
			return "Property owners are generally ineligible."
		},
	},
}

// Evaluate assesses the input against this rule set.
func (rs *RuleSet) Evaluate(in EligibilityInput) (AssessmentResult, error) {
	if err := in.Validate(); err != nil {
		return AssessmentResult{}, err
	}
	rule, err := rs.Rule(in.Jurisdiction)
	if err != nil {
		return AssessmentResult{}, err
	}

	var notes generic.Findings

	if g, failed := generic.FirstFailing(gatekeeping, in); failed {
		notes.Disqualify(g.Code, g.Message(in))
	}

	incomeLimit := rule.IncomeLimit(in.HouseholdSize)
	assetLimit := rule.AssetLimit(in.HouseholdSize)

	if rule.RequiresIndependentIncome && !in.HasIndependentIncome {
		notes.Disqualify(NoteNoIndependentIncome,
			fmt.Sprintf("%s requires at least one applicant with independent income.", in.Jurisdiction))
	}

	if in.Income().Exceeds(incomeLimit) {
		notes.Disqualify(NoteIncomeOverLimit,
			fmt.Sprintf("Income exceeds %s limit of ~$%s/week for %d %s.",
				in.Jurisdiction, incomeLimit, in.HouseholdSize, people(in.HouseholdSize)))
	}

	if in.Assets().Exceeds(assetLimit) {
		notes.Disqualify(NoteAssetsOverLimit,
			fmt.Sprintf("Assets exceed %s limit of ~$%s.", in.Jurisdiction, assetLimit))
	}

	if in.HasPriorityNeed {
		notes.Inform(NotePriorityAccess, "You may qualify for priority access, reducing wait times.")
	}

	return AssessmentResult{
		Eligible:      notes.Passing(),
		Notes:         notes.List(),
		WaitEstimate:  rule.WaitFor(in.HasPriorityNeed),
		ApplyURL:      rule.ApplyURL,
		Jurisdiction:  in.Jurisdiction,
		HouseholdSize: in.HouseholdSize,
		IncomeLimit:   incomeLimit,
		AssetLimit:    assetLimit,
	}, nil
}

func people(n int) string {
	if n == 1 {
		return "person"
	}
	return "people"
}
