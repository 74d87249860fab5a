package query

import "iter"

// orderedMap is an insertion-ordered map with string keys.
// Overwriting a key keeps its original position. The zero value is empty
// and ready to use.
type orderedMap[V any] struct {
	entries []orderedEntry[V]
	index   map[string]int
}

type orderedEntry[V any] struct {
	key   string
	value V
}

func (m *orderedMap[V]) len() int {
	return len(m.entries)
}

func (m *orderedMap[V]) get(key string) (V, bool) {
	if i, ok := m.index[key]; ok {
		return m.entries[i].value, true
	}
	var zero V
	return zero, false
}

// set inserts key at the end, or overwrites it in place.
func (m *orderedMap[V]) set(key string, value V) {
	if i, ok := m.index[key]; ok {
		m.entries[i].value = value
		return
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, orderedEntry[V]{key: key, value: value})
}

func (m *orderedMap[V]) delete(key string) {
	i, ok := m.index[key]
	if !ok {
		return
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, key)
	for j := i; j < len(m.entries); j++ {
		m.index[m.entries[j].key] = j
	}
}

func (m *orderedMap[V]) keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return keys
}

func (m *orderedMap[V]) all() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, e := range m.entries {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// filter returns a copy holding the entries for which keep returns true,
// in the receiver's order. cp copies each kept value.
func (m *orderedMap[V]) filter(keep func(string) bool, cp func(V) V) orderedMap[V] {
	var out orderedMap[V]
	for _, e := range m.entries {
		if keep(e.key) {
			out.set(e.key, cp(e.value))
		}
	}
	return out
}

func (m *orderedMap[V]) clone(cp func(V) V) orderedMap[V] {
	return m.filter(func(string) bool { return true }, cp)
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
