/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the housing domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Assessment:
    AssessmentRequest, AssessmentDTO, NoteDTO

  Jurisdictions:
    JurisdictionDTO, LimitsDTO

  Rule sets:
    RuleSetDTO (wraps factory.RuleSetJSON)

  Scenarios:
    ScenarioDTO, ScenarioRunDTO

VALIDATION:
  Shape is checked by the JSON schema in schema.go before decoding.
  Domain ranges are checked by housing.EligibilityInput.Validate.

SEE ALSO:
  - handlers.go: Uses these types
  - schema.go: Assessment request schema
  - factory/rules.go: RuleSetJSON type
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/housing-engine/factory"
	"github.com/warp/housing-engine/housing"
	"github.com/warp/housing-engine/store"
)

// =============================================================================
// ASSESSMENT
// =============================================================================

// AssessmentRequest is one household's quiz answers.
type AssessmentRequest struct {
	Jurisdiction           string          `json:"jurisdiction"`
	IsCitizenOrPR          bool            `json:"is_citizen_or_pr"`
	IsJurisdictionResident bool            `json:"is_jurisdiction_resident"`
	OwnsProperty           bool            `json:"owns_property"`
	HouseholdSize          int             `json:"household_size"`
	HasIndependentIncome   bool            `json:"has_independent_income"`
	WeeklyGrossIncome      decimal.Decimal `json:"weekly_gross_income"`
	AssessableAssets       decimal.Decimal `json:"assessable_assets"`
	HasPriorityNeed        bool            `json:"has_priority_need"`
}

// ToInput converts the request into an evaluator input. Only the
// jurisdiction code is normalized; every other field passes through as-is.
func (r AssessmentRequest) ToInput() (housing.EligibilityInput, error) {
	j, err := housing.ParseJurisdiction(r.Jurisdiction)
	if err != nil {
		return housing.EligibilityInput{}, err
	}
	return housing.EligibilityInput{
		Jurisdiction:           j,
		IsCitizenOrPR:          r.IsCitizenOrPR,
		IsJurisdictionResident: r.IsJurisdictionResident,
		OwnsProperty:           r.OwnsProperty,
		HouseholdSize:          r.HouseholdSize,
		HasIndependentIncome:   r.HasIndependentIncome,
		WeeklyGrossIncome:      r.WeeklyGrossIncome,
		AssessableAssets:       r.AssessableAssets,
		HasPriorityNeed:        r.HasPriorityNeed,
	}, nil
}

// NoteDTO is one finding from an assessment.
type NoteDTO struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// AssessmentDTO is the evaluated verdict. Assessments are not stored; the
// ID only lets a client correlate a response with its logs.
type AssessmentDTO struct {
	AssessmentID     string    `json:"assessment_id"`
	RuleSetID        string    `json:"rule_set_id"`
	Jurisdiction     string    `json:"jurisdiction"`
	JurisdictionName string    `json:"jurisdiction_name"`
	Eligible         bool      `json:"eligible"`
	Notes            []NoteDTO `json:"notes"`
	WaitEstimate     string    `json:"wait_estimate"`
	ApplyURL         string    `json:"apply_url"`
	HouseholdSize    int       `json:"household_size"`
	IncomeLimit      float64   `json:"weekly_income_limit"`
	AssetLimit       float64   `json:"asset_limit"`
	EvaluatedAt      string    `json:"evaluated_at"`
}

// =============================================================================
// JURISDICTIONS
// =============================================================================

// JurisdictionDTO describes one state or territory under the active rules.
type JurisdictionDTO struct {
	Code                      string `json:"code"`
	Name                      string `json:"name"`
	IncomeLimitType           string `json:"income_limit_type"`
	AssetLimitType            string `json:"asset_limit_type"`
	RequiresIndependentIncome bool   `json:"requires_independent_income"`
	PriorityWait              string `json:"priority_wait"`
	GeneralWait               string `json:"general_wait"`
	ApplyURL                  string `json:"apply_url"`
}

// LimitsDTO holds the computed limits for one household size.
type LimitsDTO struct {
	RuleSetID     string  `json:"rule_set_id"`
	Jurisdiction  string  `json:"jurisdiction"`
	HouseholdSize int     `json:"household_size"`
	IncomeLimit   float64 `json:"weekly_income_limit"`
	AssetLimit    float64 `json:"asset_limit"`
}

// =============================================================================
// RULE SETS
// =============================================================================

// RuleSetDTO represents a stored rule set in API responses.
type RuleSetDTO struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Year      int                 `json:"year"`
	Active    bool                `json:"active"`
	Version   int                 `json:"version"`
	Config    factory.RuleSetJSON `json:"config"`
	CreatedAt string              `json:"created_at,omitempty"`
	UpdatedAt string              `json:"updated_at,omitempty"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO is a sample household with its expected verdict.
type ScenarioDTO struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Household        AssessmentRequest `json:"household"`
	ExpectedEligible bool              `json:"expected_eligible"`
	ExpectedNotes    []string          `json:"expected_notes"`
}

// ScenarioRunDTO reports a scenario evaluated against the active rules.
type ScenarioRunDTO struct {
	Scenario   ScenarioDTO   `json:"scenario"`
	Assessment AssessmentDTO `json:"assessment"`
	Matches    bool          `json:"matches"`
}

// =============================================================================
// ERRORS
// =============================================================================

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidInput    = "invalid_input"
	CodeSchemaViolation = "schema_violation"
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeInternal        = "internal"
)

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toAssessmentDTO(id, ruleSetID string, res housing.AssessmentResult, at time.Time) AssessmentDTO {
	notes := make([]NoteDTO, len(res.Notes))
	for i, n := range res.Notes {
		notes[i] = NoteDTO{Code: string(n.Code), Severity: string(n.Severity), Message: n.Message}
	}
	return AssessmentDTO{
		AssessmentID:     id,
		RuleSetID:        ruleSetID,
		Jurisdiction:     string(res.Jurisdiction),
		JurisdictionName: res.Jurisdiction.RegionName(),
		Eligible:         res.Eligible,
		Notes:            notes,
		WaitEstimate:     res.WaitEstimate,
		ApplyURL:         res.ApplyURL,
		HouseholdSize:    res.HouseholdSize,
		IncomeLimit:      res.IncomeLimit.Float64(),
		AssetLimit:       res.AssetLimit.Float64(),
		EvaluatedAt:      at.UTC().Format(time.RFC3339),
	}
}

func toJurisdictionDTO(r housing.JurisdictionRule) JurisdictionDTO {
	return JurisdictionDTO{
		Code:                      string(r.Jurisdiction),
		Name:                      r.Jurisdiction.RegionName(),
		IncomeLimitType:           string(r.Income.Kind()),
		AssetLimitType:            string(r.Assets.Kind()),
		RequiresIndependentIncome: r.RequiresIndependentIncome,
		PriorityWait:              r.PriorityWait,
		GeneralWait:               r.GeneralWait,
		ApplyURL:                  r.ApplyURL,
	}
}

func toRuleSetDTO(rec store.RuleSetRecord, config factory.RuleSetJSON, active bool) RuleSetDTO {
	dto := RuleSetDTO{
		ID:      rec.ID,
		Name:    rec.Name,
		Year:    rec.Year,
		Active:  active,
		Version: rec.Version,
		Config:  config,
	}
	if !rec.CreatedAt.IsZero() {
		dto.CreatedAt = rec.CreatedAt.Format(time.RFC3339)
	}
	if !rec.UpdatedAt.IsZero() {
		dto.UpdatedAt = rec.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}
