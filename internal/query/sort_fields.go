package query

import (
	"iter"
	"strings"

	"github.com/roach88/listq/internal/codec"
)

// SortFields maps field names to sort directions in ORDER BY precedence.
// The zero value is an empty mapping. Copies made by assignment share
// storage; use Clone before mutating a copy.
type SortFields struct {
	m orderedMap[SortOrder]
}

// ParseSortField parses one "name:direction" segment.
// The name is percent-decoded.
func ParseSortField(segment string) (string, SortOrder, error) {
	parts := strings.Split(segment, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", 0, newParseError(ErrCodeInvalidSortField, segment, "expected name:direction")
	}
	order, err := ParseSortOrder(parts[1])
	if err != nil {
		return "", 0, err
	}
	return codec.Decode(parts[0]), order, nil
}

// ParseSortFields parses a comma-separated list of "name:direction" segments.
// Blank segments are skipped and an empty input yields an empty mapping.
// The first malformed segment fails the whole parse.
func ParseSortFields(s string) (SortFields, error) {
	var fields SortFields
	for _, segment := range strings.Split(s, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		name, order, err := ParseSortField(segment)
		if err != nil {
			return SortFields{}, err
		}
		fields.Set(name, order)
	}
	return fields, nil
}

// Set upserts name. An existing name keeps its position.
func (s *SortFields) Set(name string, order SortOrder) *SortFields {
	s.m.set(name, order)
	return s
}

// Ascending upserts name with ascending order.
func (s *SortFields) Ascending(name string) *SortFields {
	return s.Set(name, Ascending)
}

// Descending upserts name with descending order.
func (s *SortFields) Descending(name string) *SortFields {
	return s.Set(name, Descending)
}

// Get returns the order for name.
func (s SortFields) Get(name string) (SortOrder, bool) {
	return s.m.get(name)
}

// Len returns the number of sort fields.
func (s SortFields) Len() int {
	return s.m.len()
}

// Names returns the field names in precedence order.
func (s SortFields) Names() []string {
	return s.m.keys()
}

// All iterates fields in precedence order.
func (s SortFields) All() iter.Seq2[string, SortOrder] {
	return s.m.all()
}

// Keep returns a new mapping holding only the listed names that exist,
// in this mapping's order.
func (s SortFields) Keep(names ...string) SortFields {
	set := nameSet(names)
	return SortFields{m: s.m.filter(func(k string) bool {
		_, ok := set[k]
		return ok
	}, identity[SortOrder])}
}

// Remove returns a copy without the listed names.
func (s SortFields) Remove(names ...string) SortFields {
	out := s.Clone()
	for _, n := range names {
		out.m.delete(n)
	}
	return out
}

// Clone returns an independent copy.
func (s SortFields) Clone() SortFields {
	return SortFields{m: s.m.clone(identity[SortOrder])}
}

// String formats the mapping as "name:direction" segments joined by commas.
// Blank names are skipped.
func (s SortFields) String() string {
	segments := make([]string, 0, s.Len())
	for name, order := range s.All() {
		if strings.TrimSpace(name) == "" {
			continue
		}
		segments = append(segments, codec.Encode(name)+":"+order.String())
	}
	return strings.Join(segments, ",")
}

func identity[V any](v V) V { return v }
