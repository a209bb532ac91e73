package api

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// assessmentSchemaJSON fixes the shape of POST /api/assessments. Every
// answer is required: a missing field is never read as false or zero.
// Ranges (household size, non-negative money) are left to the evaluator
// so their errors name the field the same way the CLI does.
const assessmentSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "required": [
    "jurisdiction",
    "is_citizen_or_pr",
    "is_jurisdiction_resident",
    "owns_property",
    "household_size",
    "has_independent_income",
    "weekly_gross_income",
    "assessable_assets",
    "has_priority_need"
  ],
  "properties": {
    "jurisdiction":             {"type": "string", "minLength": 1},
    "is_citizen_or_pr":         {"type": "boolean"},
    "is_jurisdiction_resident": {"type": "boolean"},
    "owns_property":            {"type": "boolean"},
    "household_size":           {"type": "integer"},
    "has_independent_income":   {"type": "boolean"},
    "weekly_gross_income":      {"type": "number"},
    "assessable_assets":        {"type": "number"},
    "has_priority_need":        {"type": "boolean"}
  }
}`

var assessmentSchema = mustSchema(assessmentSchemaJSON)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("invalid built-in schema: %v", err))
	}
	return schema
}

// validateAssessment checks a raw request body against the assessment
// schema. It returns the violations, or an error when the body is not JSON.
func validateAssessment(body []byte) ([]string, error) {
	result, err := assessmentSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return errs, nil
}
