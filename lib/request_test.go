package lib

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleBody struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=10"`
}

func TestExtractAndValidateBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"ana@example.com","name":"Ana"}`))

	body, err := ExtractAndValidateBody[sampleBody](r)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", body.Email)
	assert.Equal(t, "Ana", body.Name)
}

func TestExtractAndValidateBodyUnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"ana@example.com","extra":true}`))

	_, err := ExtractAndValidateBody[sampleBody](r)
	assert.Error(t, err)
}

func TestExtractAndValidateBodyValidation(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a very long name indeed"}`))

	_, err := ExtractAndValidateBody[sampleBody](r)
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Len(t, ve.Errors, 2)

	fields := []string{ve.Errors[0].Field, ve.Errors[1].Field}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "name")
}

func TestExtractAndValidateBodyMalformed(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))

	_, err := ExtractAndValidateBody[sampleBody](r)
	assert.Error(t, err)
}
