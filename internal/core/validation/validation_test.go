package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invacc/internal/core/apperror"
)

type line struct {
	Account string `json:"account" validate:"required"`
	Side    string `json:"side" validate:"required,oneof=debit credit"`
}

type sample struct {
	ID    string `json:"id" validate:"required"`
	Lines []line `json:"lines" validate:"required,min=1,dive"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{ID: "r1", Lines: []line{{Account: "110501", Side: "debit"}}}))
}

func TestStruct_ReportsJSONFieldPaths(t *testing.T) {
	err := Struct(sample{Lines: []line{{Side: "both"}}})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	fields, ok := appErr.Details["fields"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", fields["id"])
	assert.Equal(t, "is required", fields["lines[0].account"])
	assert.Contains(t, fields["lines[0].side"], "one of")
}
