package housing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/housing-engine/generic"
	"github.com/warp/housing-engine/housing"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// eligibleHousehold passes every rule in every jurisdiction: citizen,
// resident, no property, independent income, zero income and assets.
func eligibleHousehold(j housing.Jurisdiction) housing.EligibilityInput {
	return housing.EligibilityInput{
		Jurisdiction:           j,
		IsCitizenOrPR:          true,
		IsJurisdictionResident: true,
		OwnsProperty:           false,
		HouseholdSize:          1,
		HasIndependentIncome:   true,
		WeeklyGrossIncome:      decimal.Zero,
		AssessableAssets:       decimal.Zero,
		HasPriorityNeed:        false,
	}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// =============================================================================
// SCENARIOS
// =============================================================================

func TestEvaluate_NSWSinglePersonUnderLimits_Eligible(t *testing.T) {
	// GIVEN: A single NSW citizen earning $700/week with $10,000 in assets
	in := eligibleHousehold(housing.NSW)
	in.WeeklyGrossIncome = dec(700)
	in.AssessableAssets = dec(10000)

	// WHEN: Evaluating
	res, err := housing.Evaluate(in)

	// THEN: Eligible with the general NSW wait
	require.NoError(t, err)
	assert.True(t, res.Eligible)
	assert.Empty(t, res.Notes)
	assert.Equal(t, "5-10 years", res.WaitEstimate)
	assert.Equal(t, "https://www.facs.nsw.gov.au/housing/apply", res.ApplyURL)
}

func TestEvaluate_QLDWithoutIndependentIncome_OnlyIncomeNote(t *testing.T) {
	// GIVEN: A QLD couple with no independent income, otherwise well under limits
	in := eligibleHousehold(housing.QLD)
	in.HouseholdSize = 2
	in.HasIndependentIncome = false
	in.WeeklyGrossIncome = dec(500)
	in.AssessableAssets = dec(1000)

	res, err := housing.Evaluate(in)

	// THEN: Ineligible, and the independent-income note is the only note
	require.NoError(t, err)
	assert.False(t, res.Eligible)
	assert.Equal(t, []generic.FindingCode{housing.NoteNoIndependentIncome}, res.Codes())
	assert.Equal(t, []string{"QLD requires at least one applicant with independent income."}, res.Messages())
}

func TestEvaluate_NonCitizen_OnlyCitizenshipNote(t *testing.T) {
	// GIVEN: A VIC non-citizen who also fails residency and owns property
	in := eligibleHousehold(housing.VIC)
	in.IsCitizenOrPR = false
	in.IsJurisdictionResident = false
	in.OwnsProperty = true

	res, err := housing.Evaluate(in)

	// THEN: Only the citizenship note is reported from the gatekeeping chain
	require.NoError(t, err)
	assert.False(t, res.Eligible)
	assert.Equal(t, []string{"You must be an Australian citizen or permanent resident to be eligible."}, res.Messages())
}

func TestEvaluate_UnknownJurisdiction_InvalidInput(t *testing.T) {
	in := eligibleHousehold("XX")

	_, err := housing.Evaluate(in)

	require.Error(t, err)
	assert.ErrorIs(t, err, generic.ErrInvalidInput)
	assert.ErrorIs(t, err, generic.ErrUnknownJurisdiction)
	var iie *generic.InvalidInputError
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "jurisdiction", iie.Field)
}

// =============================================================================
// GATEKEEPING CHAIN
// =============================================================================

func TestEvaluate_Gatekeeping_FirstFailureOnly(t *testing.T) {
	tests := []struct {
		name     string
		citizen  bool
		resident bool
		owns     bool
		want     []generic.FindingCode
	}{
		{"all pass", true, true, false, []generic.FindingCode{}},
		{"citizen fails alone", false, true, false, []generic.FindingCode{housing.NoteNotCitizen}},
		{"citizen masks residency", false, false, false, []generic.FindingCode{housing.NoteNotCitizen}},
		{"citizen masks ownership", false, true, true, []generic.FindingCode{housing.NoteNotCitizen}},
		{"residency fails alone", true, false, false, []generic.FindingCode{housing.NoteNotResident}},
		{"residency masks ownership", true, false, true, []generic.FindingCode{housing.NoteNotResident}},
		{"ownership fails alone", true, true, true, []generic.FindingCode{housing.NoteOwnsProperty}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := eligibleHousehold(housing.SA)
			in.IsCitizenOrPR = tt.citizen
			in.IsJurisdictionResident = tt.resident
			in.OwnsProperty = tt.owns

			res, err := housing.Evaluate(in)
			require.NoError(t, err)

			assert.Equal(t, tt.want, res.Codes())
			assert.Equal(t, len(tt.want) == 0, res.Eligible)
		})
	}
}

func TestEvaluate_ResidencyNote_NamesJurisdiction(t *testing.T) {
	in := eligibleHousehold(housing.TAS)
	in.IsJurisdictionResident = false

	res, err := housing.Evaluate(in)

	require.NoError(t, err)
	assert.Equal(t, []string{"You need to be a TAS resident to apply here."}, res.Messages())
}

func TestEvaluate_GatekeepingDoesNotStopLimitChecks(t *testing.T) {
	// GIVEN: A non-citizen in QLD with no independent income and income over the limit
	in := eligibleHousehold(housing.QLD)
	in.IsCitizenOrPR = false
	in.HasIndependentIncome = false
	in.WeeklyGrossIncome = dec(5000)
	in.AssessableAssets = dec(500000)
	in.HasPriorityNeed = true

	res, err := housing.Evaluate(in)

	// THEN: Every applicable note accumulates in rule order
	require.NoError(t, err)
	assert.False(t, res.Eligible)
	assert.Equal(t, []generic.FindingCode{
		housing.NoteNotCitizen,
		housing.NoteNoIndependentIncome,
		housing.NoteIncomeOverLimit,
		housing.NoteAssetsOverLimit,
		housing.NotePriorityAccess,
	}, res.Codes())
}

// =============================================================================
// INDEPENDENT INCOME
// =============================================================================

func TestEvaluate_QLDWithoutIndependentIncome_AlwaysIneligible(t *testing.T) {
	for _, size := range []int{1, 2, 3, 6} {
		in := eligibleHousehold(housing.QLD)
		in.HouseholdSize = size
		in.HasIndependentIncome = false

		res, err := housing.Evaluate(in)
		require.NoError(t, err)
		assert.False(t, res.Eligible, "household size %d", size)
	}
}

func TestEvaluate_IndependentIncomeIgnoredOutsideQLD(t *testing.T) {
	for _, j := range housing.Jurisdictions {
		if j == housing.QLD {
			continue
		}
		in := eligibleHousehold(j)
		in.HasIndependentIncome = false

		res, err := housing.Evaluate(in)
		require.NoError(t, err)
		assert.True(t, res.Eligible, "%s should not require independent income", j)
	}
}

// =============================================================================
// INCOME AND ASSET BOUNDARIES
// =============================================================================

func TestEvaluate_IncomeAtLimit_Eligible(t *testing.T) {
	// GIVEN: Income exactly at the NSW limit for three people ($1370)
	in := eligibleHousehold(housing.NSW)
	in.HouseholdSize = 3
	in.WeeklyGrossIncome = dec(1370)

	res, err := housing.Evaluate(in)

	// THEN: Only strictly-greater disqualifies
	require.NoError(t, err)
	assert.True(t, res.Eligible)
}

func TestEvaluate_IncomeOneCentOverLimit_Ineligible(t *testing.T) {
	in := eligibleHousehold(housing.NSW)
	in.HouseholdSize = 3
	in.WeeklyGrossIncome = decimal.RequireFromString("1370.01")

	res, err := housing.Evaluate(in)

	require.NoError(t, err)
	assert.False(t, res.Eligible)
	assert.Equal(t, []string{"Income exceeds NSW limit of ~$1370/week for 3 people."}, res.Messages())
}

func TestEvaluate_IncomeNote_SinglePerson(t *testing.T) {
	in := eligibleHousehold(housing.WA)
	in.WeeklyGrossIncome = dec(607)

	res, err := housing.Evaluate(in)

	require.NoError(t, err)
	assert.Equal(t, []string{"Income exceeds WA limit of ~$606/week for 1 person."}, res.Messages())
}

func TestEvaluate_AssetsAtLimit_Eligible(t *testing.T) {
	in := eligibleHousehold(housing.VIC)
	in.HouseholdSize = 4
	in.AssessableAssets = dec(22998)

	res, err := housing.Evaluate(in)

	require.NoError(t, err)
	assert.True(t, res.Eligible)
}

func TestEvaluate_AssetsOverLimit_Ineligible(t *testing.T) {
	in := eligibleHousehold(housing.ACT)
	in.AssessableAssets = dec(40001)

	res, err := housing.Evaluate(in)

	require.NoError(t, err)
	assert.False(t, res.Eligible)
	assert.Equal(t, []string{"Assets exceed ACT limit of ~$40000."}, res.Messages())
}

func TestEvaluate_ReportsComputedLimits(t *testing.T) {
	in := eligibleHousehold(housing.SA)
	in.HouseholdSize = 5

	res, err := housing.Evaluate(in)

	require.NoError(t, err)
	assert.Equal(t, "1641", res.IncomeLimit.String())
	assert.Equal(t, "89000", res.AssetLimit.String())
	assert.Equal(t, housing.SA, res.Jurisdiction)
	assert.Equal(t, 5, res.HouseholdSize)
}

// =============================================================================
// PRIORITY AND WAIT ESTIMATES
// =============================================================================

func TestEvaluate_PriorityNeed_UsesPriorityWait(t *testing.T) {
	want := map[housing.Jurisdiction]string{
		housing.NSW: "1-2 years",
		housing.VIC: "18-20 months",
		housing.QLD: "21-28 months",
		housing.SA:  "1-3 years",
		housing.WA:  "2-3 years",
		housing.TAS: "1-2 years",
		housing.NT:  "5-8 years",
		housing.ACT: "1-2 years",
	}
	for j, label := range want {
		in := eligibleHousehold(j)
		in.HasPriorityNeed = true

		res, err := housing.Evaluate(in)
		require.NoError(t, err)
		assert.Equal(t, label, res.WaitEstimate, j)
	}
}

func TestEvaluate_GeneralWait(t *testing.T) {
	want := map[housing.Jurisdiction]string{
		housing.NSW: "5-10 years",
		housing.VIC: "3-5 years",
		housing.QLD: "3-5 years",
		housing.SA:  "3-5 years",
		housing.WA:  "3-5 years",
		housing.TAS: "2-3 years",
		housing.NT:  "8-10 years",
		housing.ACT: "3-5 years",
	}
	for j, label := range want {
		res, err := housing.Evaluate(eligibleHousehold(j))
		require.NoError(t, err)
		assert.Equal(t, label, res.WaitEstimate, j)
	}
}

func TestEvaluate_PriorityNote_InformationalEvenWhenIneligible(t *testing.T) {
	// GIVEN: A property owner with a priority need
	in := eligibleHousehold(housing.NT)
	in.OwnsProperty = true
	in.HasPriorityNeed = true

	res, err := housing.Evaluate(in)

	// THEN: Still ineligible, the priority note is present and last
	require.NoError(t, err)
	assert.False(t, res.Eligible)
	require.Len(t, res.Notes, 2)
	last := res.Notes[1]
	assert.Equal(t, housing.NotePriorityAccess, last.Code)
	assert.Equal(t, generic.SeverityInformational, last.Severity)
	assert.Equal(t, "5-8 years", res.WaitEstimate)
}

func TestEvaluate_PriorityNote_DoesNotDisqualify(t *testing.T) {
	in := eligibleHousehold(housing.ACT)
	in.HasPriorityNeed = true

	res, err := housing.Evaluate(in)

	require.NoError(t, err)
	assert.True(t, res.Eligible)
	assert.Equal(t, []string{"You may qualify for priority access, reducing wait times."}, res.Messages())
	assert.Empty(t, res.Reasons())
}

// =============================================================================
// INVARIANTS
// =============================================================================

func TestEvaluate_EligibleIffNoDisqualifyingNote(t *testing.T) {
	for _, j := range housing.Jurisdictions {
		for mask := 0; mask < 1<<6; mask++ {
			in := eligibleHousehold(j)
			in.IsCitizenOrPR = mask&1 == 0
			in.IsJurisdictionResident = mask&2 == 0
			in.OwnsProperty = mask&4 != 0
			in.HasIndependentIncome = mask&8 == 0
			in.HasPriorityNeed = mask&16 != 0
			if mask&32 != 0 {
				in.WeeklyGrossIncome = dec(100000)
			}

			res, err := housing.Evaluate(in)
			require.NoError(t, err)
			assert.Equal(t, len(res.Reasons()) == 0, res.Eligible, "%s mask=%06b", j, mask)
		}
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	in := eligibleHousehold(housing.QLD)
	in.HouseholdSize = 4
	in.HasIndependentIncome = false
	in.WeeklyGrossIncome = dec(2000)
	in.HasPriorityNeed = true

	first, err := housing.Evaluate(in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := housing.Evaluate(in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// =============================================================================
// INPUT VALIDATION
// =============================================================================

func TestEvaluate_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*housing.EligibilityInput)
		field string
	}{
		{"empty jurisdiction", func(in *housing.EligibilityInput) { in.Jurisdiction = "" }, "jurisdiction"},
		{"lowercase jurisdiction", func(in *housing.EligibilityInput) { in.Jurisdiction = "nsw" }, "jurisdiction"},
		{"zero household", func(in *housing.EligibilityInput) { in.HouseholdSize = 0 }, "household_size"},
		{"negative household", func(in *housing.EligibilityInput) { in.HouseholdSize = -2 }, "household_size"},
		{"negative income", func(in *housing.EligibilityInput) { in.WeeklyGrossIncome = dec(-1) }, "weekly_gross_income"},
		{"negative assets", func(in *housing.EligibilityInput) { in.AssessableAssets = decimal.RequireFromString("-0.01") }, "assessable_assets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := eligibleHousehold(housing.NSW)
			tt.mod(&in)

			_, err := housing.Evaluate(in)

			require.Error(t, err)
			assert.True(t, errors.Is(err, generic.ErrInvalidInput))
			assert.True(t, generic.IsClientError(err))
			var iie *generic.InvalidInputError
			require.ErrorAs(t, err, &iie)
			assert.Equal(t, tt.field, iie.Field)
		})
	}
}

func TestEligibilityInput_Validate_NegativeFiguresEchoValue(t *testing.T) {
	in := eligibleHousehold(housing.VIC)
	in.WeeklyGrossIncome = decimal.RequireFromString("-12.50")

	var iie *generic.InvalidInputError
	require.ErrorAs(t, in.Validate(), &iie)
	assert.Equal(t, "weekly_gross_income", iie.Field)
	assert.Equal(t, "-12.5", iie.Value)

	in = eligibleHousehold(housing.VIC)
	in.AssessableAssets = decimal.RequireFromString("-0.01")

	require.ErrorAs(t, in.Validate(), &iie)
	assert.Equal(t, "assessable_assets", iie.Field)
	assert.Equal(t, "-0.01", iie.Value)

	in = eligibleHousehold(housing.VIC)
	in.WeeklyGrossIncome = decimal.Zero
	in.AssessableAssets = decimal.Zero
	assert.NoError(t, in.Validate())
}
