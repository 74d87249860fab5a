package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AllAllowed(t *testing.T) {
	q := mustParse(t, "name=contains:x&age=between:1,2&order=name:asc")

	result := Validate(q, []string{"name", "age", "id"})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Unknown)
	assert.NoError(t, result.Err())
}

func TestValidate_UnknownFields(t *testing.T) {
	q := mustParse(t, "name=x&password=y&order=secret:desc,name:asc,password:asc")

	result := Validate(q, []string{"name"})
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"password", "secret"}, result.Unknown)
	assert.Len(t, result.Warnings, 3)

	err := result.Err()
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeUnknownField))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"password", "secret"}, ve.Fields)
}

func TestValidate_EmptyQuery(t *testing.T) {
	result := Validate(New(), nil)
	assert.True(t, result.Valid)
}

func TestValidate_InjectionAttemptRejected(t *testing.T) {
	q := mustParse(t, "order=id%3B+DROP+TABLE+users:asc")

	result := Validate(q, []string{"id"})
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"id; DROP TABLE users"}, result.Unknown)
}

func TestCode_NonParseError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), Code(assert.AnError))
	assert.False(t, IsCode(nil, ErrCodeInvalidParameter))
}
