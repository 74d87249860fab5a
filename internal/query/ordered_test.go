package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMap_OverwriteKeepsPosition(t *testing.T) {
	var m orderedMap[int]
	m.set("a", 1)
	m.set("b", 2)
	m.set("c", 3)
	m.set("a", 10)

	assert.Equal(t, []string{"a", "b", "c"}, m.keys())
	v, ok := m.get("a")
	assert.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestOrderedMap_DeleteReindexes(t *testing.T) {
	var m orderedMap[int]
	m.set("a", 1)
	m.set("b", 2)
	m.set("c", 3)

	m.delete("a")
	m.delete("missing")

	assert.Equal(t, []string{"b", "c"}, m.keys())
	v, ok := m.get("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	// Re-inserting a deleted key appends it
	m.set("a", 4)
	assert.Equal(t, []string{"b", "c", "a"}, m.keys())
	v, _ = m.get("a")
	assert.Equal(t, 4, v)
}

func TestOrderedMap_ZeroValue(t *testing.T) {
	var m orderedMap[string]
	assert.Equal(t, 0, m.len())
	_, ok := m.get("x")
	assert.False(t, ok)
	assert.Empty(t, m.keys())
}

func TestOrderedMap_AllStopsEarly(t *testing.T) {
	var m orderedMap[int]
	m.set("a", 1)
	m.set("b", 2)

	var seen []string
	for k := range m.all() {
		seen = append(seen, k)
		break
	}
	assert.Equal(t, []string{"a"}, seen)
}
