package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required"`
	Stage string `validate:"oneof=primary prep"`
}

func TestHandleValidationError_FieldErrors(t *testing.T) {
	err := validator.New().Struct(sample{Stage: "kindergarten"})
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	list, ok := detail.Details.([]FieldError)
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, "name", list[0].Field)
	assert.Equal(t, "name is required", list[0].Message)
	assert.Equal(t, "stage must be one of: primary prep", list[1].Message)
}

func TestHandleValidationError_MalformedJSON(t *testing.T) {
	var v map[string]interface{}
	err := json.Unmarshal([]byte("{bad"), &v)
	detail := HandleValidationError(err)
	assert.Equal(t, ErrorCodeBadRequest, detail.Code)
}

func TestHandleValidationError_Other(t *testing.T) {
	detail := HandleValidationError(errors.New("EOF"))
	assert.Equal(t, ErrorCodeBadRequest, detail.Code)
	assert.Equal(t, "EOF", detail.Details)
}
