package factory_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/housing-engine/factory"
	"github.com/warp/housing-engine/generic"
	"github.com/warp/housing-engine/housing"
)

func TestRuleFactory_RoundTripDefaultRuleSet(t *testing.T) {
	// GIVEN: The compiled-in 2025 rule set rendered as JSON
	f := factory.NewRuleFactory()
	jsonStr, err := f.Marshal(housing.DefaultRuleSet())
	require.NoError(t, err)

	// WHEN: Parsing it back
	rs, err := f.ParseRuleSet(jsonStr)
	require.NoError(t, err)

	// THEN: Every limit and label survives
	assert.Equal(t, housing.DefaultRuleSetID, rs.ID)
	assert.Equal(t, 2025, rs.Year)
	for _, want := range housing.DefaultRuleSet().Rules() {
		got, err := rs.Rule(want.Jurisdiction)
		require.NoError(t, err)
		for _, size := range []int{1, 2, 3, 5} {
			assert.Equal(t, want.IncomeLimit(size).String(), got.IncomeLimit(size).String(), "%s income %d", want.Jurisdiction, size)
			assert.Equal(t, want.AssetLimit(size).String(), got.AssetLimit(size).String(), "%s assets %d", want.Jurisdiction, size)
		}
		assert.Equal(t, want.Income.Kind(), got.Income.Kind())
		assert.Equal(t, want.Assets.Kind(), got.Assets.Kind())
		assert.Equal(t, want.RequiresIndependentIncome, got.RequiresIndependentIncome)
		assert.Equal(t, want.PriorityWait, got.PriorityWait)
		assert.Equal(t, want.GeneralWait, got.GeneralWait)
		assert.Equal(t, want.ApplyURL, got.ApplyURL)
	}
}

func TestRuleFactory_ParsedRuleSetEvaluates(t *testing.T) {
	f := factory.NewRuleFactory()
	jsonStr, err := f.Marshal(housing.DefaultRuleSet())
	require.NoError(t, err)
	rs, err := f.ParseRuleSet(jsonStr)
	require.NoError(t, err)

	res, err := rs.Evaluate(housing.EligibilityInput{
		Jurisdiction:           housing.NSW,
		IsCitizenOrPR:          true,
		IsJurisdictionResident: true,
		HouseholdSize:          1,
		HasIndependentIncome:   true,
		WeeklyGrossIncome:      decimal.NewFromInt(700),
		AssessableAssets:       decimal.NewFromInt(10000),
	})
	require.NoError(t, err)
	assert.True(t, res.Eligible)
	assert.Equal(t, "5-10 years", res.WaitEstimate)
}

func TestRuleFactory_MissingJurisdiction(t *testing.T) {
	f := factory.NewRuleFactory()
	rj := f.ToJSON(housing.DefaultRuleSet())
	rj.Jurisdictions = rj.Jurisdictions[1:] // drop NSW

	_, err := f.FromJSON(rj)

	require.Error(t, err)
	assert.ErrorIs(t, err, generic.ErrIncompleteRuleSet)
	assert.True(t, generic.IsClientError(err))
}

func TestRuleFactory_Rejects(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	tests := []struct {
		name    string
		mod     func(*factory.RuleSetJSON)
		wantMsg string
	}{
		{"missing id", func(rj *factory.RuleSetJSON) { rj.ID = " " }, "id is required"},
		{"unknown code", func(rj *factory.RuleSetJSON) { rj.Jurisdictions[0].Code = "XX" }, "XX"},
		{"unknown limit type", func(rj *factory.RuleSetJSON) { rj.Jurisdictions[0].Income.Type = "exponential" }, "unknown limit type"},
		{"missing couple", func(rj *factory.RuleSetJSON) { rj.Jurisdictions[0].Income.Couple = nil }, "couple is required"},
		{"negative asset", func(rj *factory.RuleSetJSON) { rj.Jurisdictions[1].Assets.Value = &neg }, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := factory.NewRuleFactory()
			rj := f.ToJSON(housing.DefaultRuleSet())
			tt.mod(&rj)

			_, err := f.FromJSON(rj)

			require.Error(t, err)
			assert.ErrorIs(t, err, generic.ErrIncompleteRuleSet)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRuleFactory_InvalidJSON(t *testing.T) {
	_, err := factory.NewRuleFactory().ParseRuleSet("{not json")

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to parse rule set JSON"))
}

func TestRuleFactory_ToJSON_FlatAssets(t *testing.T) {
	rj := factory.NewRuleFactory().ToJSON(housing.DefaultRuleSet())

	vic := rj.Jurisdictions[1]
	require.Equal(t, "VIC", vic.Code)
	assert.Equal(t, "flat", vic.Assets.Type)
	require.NotNil(t, vic.Assets.Value)
	assert.Equal(t, "22998", vic.Assets.Value.String())
	assert.Nil(t, vic.Assets.Single)
}

func TestRuleFactory_FractionalThresholdsRoundTripExactly(t *testing.T) {
	// GIVEN: A rule set whose VIC asset limit carries cents, posted as a JSON number
	f := factory.NewRuleFactory()
	rj := f.ToJSON(housing.DefaultRuleSet())
	rj.Jurisdictions[1].Assets.Value = nil
	raw, err := json.Marshal(rj)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	vic := doc["jurisdictions"].([]any)[1].(map[string]any)
	vic["assets"].(map[string]any)["value"] = json.Number("22998.35")
	raw, err = json.Marshal(doc)
	require.NoError(t, err)

	// WHEN: Parsing, storing and parsing again
	rs, err := f.ParseRuleSet(string(raw))
	require.NoError(t, err)
	stored, err := f.Marshal(rs)
	require.NoError(t, err)
	again, err := f.ParseRuleSet(stored)
	require.NoError(t, err)

	// THEN: The limit keeps its cents at every step
	rule, err := again.Rule(housing.VIC)
	require.NoError(t, err)
	assert.Equal(t, "22998.35", rule.AssetLimit(1).String())
	assert.Contains(t, stored, `"22998.35"`)

	in := housing.EligibilityInput{
		Jurisdiction:           housing.VIC,
		IsCitizenOrPR:          true,
		IsJurisdictionResident: true,
		HouseholdSize:          1,
		HasIndependentIncome:   true,
		WeeklyGrossIncome:      decimal.NewFromInt(500),
		AssessableAssets:       decimal.RequireFromString("22998.35"),
	}
	res, err := again.Evaluate(in)
	require.NoError(t, err)
	assert.True(t, res.Eligible)

	in.AssessableAssets = decimal.RequireFromString("22998.36")
	res, err = again.Evaluate(in)
	require.NoError(t, err)
	assert.False(t, res.Eligible)
}
