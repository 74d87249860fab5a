package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortOrder_RoundTrip(t *testing.T) {
	for _, order := range []SortOrder{Ascending, Descending} {
		parsed, err := ParseSortOrder(order.String())
		require.NoError(t, err)
		assert.Equal(t, order, parsed)
	}
}

func TestSortOrder_Default(t *testing.T) {
	var order SortOrder
	assert.Equal(t, Ascending, order)
	assert.Equal(t, "asc", order.String())
}

func TestSortOrder_SQL(t *testing.T) {
	assert.Equal(t, "ASC", Ascending.SQL())
	assert.Equal(t, "DESC", Descending.SQL())
}

func TestParseSortOrder_Invalid(t *testing.T) {
	for _, token := range []string{"", "ASC", "descending", "up"} {
		_, err := ParseSortOrder(token)
		require.Error(t, err, "token %q", token)
		assert.True(t, IsCode(err, ErrCodeInvalidSortOrder))
	}
}

func TestSortOrder_Text(t *testing.T) {
	text, err := Descending.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "desc", string(text))

	var order SortOrder
	require.NoError(t, order.UnmarshalText([]byte("desc")))
	assert.Equal(t, Descending, order)
	assert.Error(t, order.UnmarshalText([]byte("sideways")))
}
