package generic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/housing-engine/generic"
)

func TestFindings_PassingUntilDisqualified(t *testing.T) {
	var fs generic.Findings
	assert.True(t, fs.Passing())

	fs.Inform("note", "informational only")
	assert.True(t, fs.Passing())

	fs.Disqualify("fail", "nope")
	assert.False(t, fs.Passing())

	list := fs.List()
	require.Len(t, list, 2)
	assert.Equal(t, generic.FindingCode("note"), list[0].Code)
	assert.False(t, list[0].Disqualifies())
	assert.True(t, list[1].Disqualifies())
}

func TestFindings_ListIsACopy(t *testing.T) {
	var fs generic.Findings
	fs.Inform("a", "a")

	list := fs.List()
	list[0].Message = "changed"

	assert.Equal(t, "a", fs.List()[0].Message)
}

func TestFirstFailing_StopsAtFirst(t *testing.T) {
	var consulted []string
	gate := func(code string, fails bool) generic.Gate[int] {
		return generic.Gate[int]{
			Code: generic.FindingCode(code),
			Fails: func(int) bool {
				consulted = append(consulted, code)
				return fails
			},
			Message: func(int) string { return code },
		}
	}

	g, failed := generic.FirstFailing([]generic.Gate[int]{
		gate("a", false), gate("b", true), gate("c", true),
	}, 0)

	assert.True(t, failed)
	assert.Equal(t, generic.FindingCode("b"), g.Code)
	assert.Equal(t, []string{"a", "b"}, consulted)
}

func TestFirstFailing_NoneFail(t *testing.T) {
	_, failed := generic.FirstFailing([]generic.Gate[int]{
		{Code: "a", Fails: func(int) bool { return false }},
	}, 0)
	assert.False(t, failed)
}

func TestInvalidInputError_Unwrap(t *testing.T) {
	err := &generic.InvalidInputError{Field: "jurisdiction", Value: "XX", Reason: "unknown", Err: generic.ErrUnknownJurisdiction}

	assert.True(t, errors.Is(err, generic.ErrInvalidInput))
	assert.True(t, errors.Is(err, generic.ErrUnknownJurisdiction))
	assert.True(t, generic.IsClientError(err))
	assert.False(t, generic.IsNotFound(err))
	assert.Equal(t, "invalid input: jurisdiction=XX: unknown", err.Error())
}
