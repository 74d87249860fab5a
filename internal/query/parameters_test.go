package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParameter(t *testing.T) {
	tests := []struct {
		input string
		want  Parameter
	}{
		{"contains:damian", Parameter{Similarity: Contains, Values: []string{"damian"}}},
		{"equals:black,steel,wood", Parameter{Similarity: Equals, Values: []string{"black", "steel", "wood"}}},
		{"between:20,30", Parameter{Similarity: Between, Values: []string{"20", "30"}}},
		{" starts-with: a , b ", Parameter{Similarity: StartsWith, Values: []string{"a", "b"}}},
		{"equals:a,,b,", Parameter{Similarity: Equals, Values: []string{"a", "b"}}},
		{"equals:john%20doe,a%2Cb", Parameter{Similarity: Equals, Values: []string{"john doe", "a,b"}}},
		{"greater-or-equal:1.5", Parameter{Similarity: GreaterOrEqual, Values: []string{"1.5"}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseParameter(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseParameter_EmptyValues(t *testing.T) {
	got, err := ParseParameter("equals:")
	require.NoError(t, err)
	assert.Equal(t, Equals, got.Similarity)
	assert.Empty(t, got.Values)

	got, err = ParseParameter("contains: , ,")
	require.NoError(t, err)
	assert.Empty(t, got.Values)
}

func TestParseParameter_Invalid(t *testing.T) {
	tests := []struct {
		input string
		code  ErrorCode
	}{
		{"", ErrCodeInvalidParameter},
		{"   ", ErrCodeInvalidParameter},
		{"equals", ErrCodeInvalidParameter},
		{"equals:a:b", ErrCodeInvalidParameter},
		{":a,b", ErrCodeInvalidParameter},
		{"like:a", ErrCodeInvalidSimilarity},
		{"Equals:a", ErrCodeInvalidSimilarity},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseParameter(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, Code(err))
		})
	}
}

func TestParameter_String(t *testing.T) {
	p := Parameter{Similarity: EndsWith, Values: []string{"a b", "c,d"}}
	assert.Equal(t, "ends-with:a+b,c%2Cd", p.String())
}

func TestParameters_Builders(t *testing.T) {
	var params Parameters
	params.
		Equals("status", "active", "pending").
		Contains("name", "dam").
		StartsWith("code", "A").
		EndsWith("email", ".com").
		Between("age", "20", "30").
		Lesser("price", "10").
		LesserOrEqual("stock", "5").
		Greater("rating", "3").
		GreaterOrEqual("created", "2024")

	want := []struct {
		field string
		sim   Similarity
	}{
		{"status", Equals},
		{"name", Contains},
		{"code", StartsWith},
		{"email", EndsWith},
		{"age", Between},
		{"price", Lesser},
		{"stock", LesserOrEqual},
		{"rating", Greater},
		{"created", GreaterOrEqual},
	}

	require.Equal(t, len(want), params.Len())
	for i, field := range params.Names() {
		assert.Equal(t, want[i].field, field)
		p, ok := params.Get(field)
		require.True(t, ok)
		assert.Equal(t, want[i].sim, p.Similarity)
	}
}

func TestParameters_BuilderReplaces(t *testing.T) {
	var params Parameters
	params.Equals("a", "1").Equals("b", "2").Contains("a", "x", "y")

	assert.Equal(t, []string{"a", "b"}, params.Names())
	p, _ := params.Get("a")
	assert.Equal(t, Parameter{Similarity: Contains, Values: []string{"x", "y"}}, p)
}

func TestParameters_BuilderCopiesValues(t *testing.T) {
	values := []string{"a", "b"}
	var params Parameters
	params.Equals("f", values...)
	values[0] = "changed"

	p, _ := params.Get("f")
	assert.Equal(t, []string{"a", "b"}, p.Values)
}

func TestParameters_ReservedKeysIgnored(t *testing.T) {
	var params Parameters
	params.Equals(KeyOrder, "x").Equals(KeyLimit, "1").Equals(KeyOffset, "2").Equals("ok", "3")

	assert.Equal(t, []string{"ok"}, params.Names())
}

func TestParameters_AppendEquals(t *testing.T) {
	var params Parameters
	params.appendEquals("tag", "a")
	params.appendEquals("tag", "b")
	params.Contains("name", "dam")
	params.appendEquals("name", "ignored")

	tag, _ := params.Get("tag")
	assert.Equal(t, Parameter{Similarity: Equals, Values: []string{"a", "b"}}, tag)
	name, _ := params.Get("name")
	assert.Equal(t, Parameter{Similarity: Contains, Values: []string{"dam"}}, name)
}

func TestParameters_KeepAndRemove(t *testing.T) {
	var params Parameters
	params.Equals("a", "1").Equals("b", "2").Equals("c", "3")

	kept := params.Keep("c", "a", "zzz")
	assert.Equal(t, []string{"a", "c"}, kept.Names())

	removed := params.Remove("a")
	assert.Equal(t, []string{"b", "c"}, removed.Names())

	// Copies are independent
	removed.Equals("b", "changed")
	b, _ := params.Get("b")
	assert.Equal(t, []string{"2"}, b.Values)
	assert.Equal(t, 3, params.Len())
}

func TestParameters_RemoveKeepsLookups(t *testing.T) {
	var params Parameters
	params.Equals("a", "1").Contains("b", "2").Greater("c", "3")

	removed := params.Remove("a", "missing")
	c, ok := removed.Get("c")
	require.True(t, ok)
	assert.Equal(t, Parameter{Similarity: Greater, Values: []string{"3"}}, c)

	// A removed field comes back at the end
	removed.Equals("a", "4")
	assert.Equal(t, []string{"b", "c", "a"}, removed.Names())
	assert.Equal(t, []string{"a", "b", "c"}, params.Names())
}

func TestParameters_CloneDeepCopiesValues(t *testing.T) {
	var params Parameters
	params.appendEquals("tag", "a")

	clone := params.Clone()
	clone.appendEquals("tag", "b")

	orig, _ := params.Get("tag")
	assert.Equal(t, []string{"a"}, orig.Values)
	cloned, _ := clone.Get("tag")
	assert.Equal(t, []string{"a", "b"}, cloned.Values)
}
