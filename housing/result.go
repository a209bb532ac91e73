package housing

import "github.com/warp/housing-engine/generic"

// Note codes, in the order the evaluator can emit them.
const (
	NoteNotCitizen          generic.FindingCode = "not_citizen_or_pr"
	NoteNotResident         generic.FindingCode = "not_resident"
	NoteOwnsProperty        generic.FindingCode = "owns_property"
	NoteNoIndependentIncome generic.FindingCode = "no_independent_income"
	NoteIncomeOverLimit     generic.FindingCode = "income_over_limit"
	NoteAssetsOverLimit     generic.FindingCode = "assets_over_limit"
	NotePriorityAccess      generic.FindingCode = "priority_access"
)

// AssessmentResult is the outcome of one evaluation. It is a value:
// nothing retains or mutates it after Evaluate returns.
type AssessmentResult struct {
	Eligible     bool
	Notes        []generic.Finding
	WaitEstimate string
	ApplyURL     string

	Jurisdiction  Jurisdiction
	HouseholdSize int
	IncomeLimit   generic.Amount
	AssetLimit    generic.Amount
}

// Messages returns the note texts in evaluation order.
func (r AssessmentResult) Messages() []string {
	out := make([]string, len(r.Notes))
	for i, n := range r.Notes {
		out[i] = n.Message
	}
	return out
}

// Codes returns the note codes in evaluation order.
func (r AssessmentResult) Codes() []generic.FindingCode {
	out := make([]generic.FindingCode, len(r.Notes))
	for i, n := range r.Notes {
		out[i] = n.Code
	}
	return out
}

// Reasons returns only the disqualifying notes.
func (r AssessmentResult) Reasons() []generic.Finding {
	var out []generic.Finding
	for _, n := range r.Notes {
		if n.Disqualifies() {
			out = append(out, n)
		}
	}
	return out
}
