package query

import (
	"iter"
	"slices"
	"strings"

	"github.com/roach88/listq/internal/codec"
)

// Reserved query string keys. They never name a filter field.
const (
	KeyOrder  = "order"
	KeyLimit  = "limit"
	KeyOffset = "offset"
)

// IsReserved reports whether key is one of the reserved control keys.
func IsReserved(key string) bool {
	return key == KeyOrder || key == KeyLimit || key == KeyOffset
}

// Parameter is one field filter: a similarity and its decoded values.
// Multiple values are OR-ed; Between pairs them two at a time.
type Parameter struct {
	Similarity Similarity `json:"similarity"`
	Values     []string   `json:"values"`
}

// Clone returns a copy with its own value slice.
func (p Parameter) Clone() Parameter {
	return Parameter{Similarity: p.Similarity, Values: slices.Clone(p.Values)}
}

// String formats the parameter as "similarity:v1,v2" with encoded values.
func (p Parameter) String() string {
	return p.Similarity.String() + ":" + codec.JoinEncoded(p.Values)
}

// ParseParameter parses a "similarity:v1,v2,..." value.
// Values are trimmed and percent-decoded; entries that decode to "" are
// dropped. An empty value part yields an empty list, which the caller
// decides how to treat.
func ParseParameter(s string) (Parameter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Parameter{}, newParseError(ErrCodeInvalidParameter, s, "empty parameter")
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Parameter{}, newParseError(ErrCodeInvalidParameter, s, "expected similarity:values")
	}
	token := strings.TrimSpace(parts[0])
	if token == "" {
		return Parameter{}, newParseError(ErrCodeInvalidParameter, s, "missing similarity")
	}

	var values []string
	for _, raw := range strings.Split(parts[1], ",") {
		v := codec.Decode(strings.TrimSpace(raw))
		if v == "" {
			continue
		}
		values = append(values, v)
	}

	sim, err := ParseSimilarity(token)
	if err != nil {
		return Parameter{}, err
	}
	return Parameter{Similarity: sim, Values: values}, nil
}

// Parameters maps field names to filters in insertion order.
// The zero value is empty. Copies made by assignment share storage; use
// Clone before mutating a copy.
type Parameters struct {
	m orderedMap[Parameter]
}

// Set upserts field, replacing any previous filter while keeping its
// position. Reserved keys are ignored.
func (p *Parameters) Set(field string, param Parameter) *Parameters {
	if IsReserved(field) {
		return p
	}
	p.m.set(field, param)
	return p
}

func (p *Parameters) with(field string, sim Similarity, values []string) *Parameters {
	return p.Set(field, Parameter{Similarity: sim, Values: slices.Clone(values)})
}

// Equals filters field to any of values.
func (p *Parameters) Equals(field string, values ...string) *Parameters {
	return p.with(field, Equals, values)
}

// Contains filters field to values containing any of values.
func (p *Parameters) Contains(field string, values ...string) *Parameters {
	return p.with(field, Contains, values)
}

// StartsWith filters field to values with any of the given prefixes.
func (p *Parameters) StartsWith(field string, values ...string) *Parameters {
	return p.with(field, StartsWith, values)
}

// EndsWith filters field to values with any of the given suffixes.
func (p *Parameters) EndsWith(field string, values ...string) *Parameters {
	return p.with(field, EndsWith, values)
}

// Between filters field to any of the ranges formed by consecutive pairs.
// An odd trailing value is ignored at compile time.
func (p *Parameters) Between(field string, values ...string) *Parameters {
	return p.with(field, Between, values)
}

// Lesser filters field to values below any of values.
func (p *Parameters) Lesser(field string, values ...string) *Parameters {
	return p.with(field, Lesser, values)
}

// LesserOrEqual filters field to values at or below any of values.
func (p *Parameters) LesserOrEqual(field string, values ...string) *Parameters {
	return p.with(field, LesserOrEqual, values)
}

// Greater filters field to values above any of values.
func (p *Parameters) Greater(field string, values ...string) *Parameters {
	return p.with(field, Greater, values)
}

// GreaterOrEqual filters field to values at or above any of values.
func (p *Parameters) GreaterOrEqual(field string, values ...string) *Parameters {
	return p.with(field, GreaterOrEqual, values)
}

// appendEquals merges a bare value into field: appended to an Equals
// entry, created when field is unseen, dropped otherwise.
func (p *Parameters) appendEquals(field, value string) {
	existing, ok := p.m.get(field)
	if !ok {
		p.Set(field, Parameter{Similarity: Equals, Values: []string{value}})
		return
	}
	if existing.Similarity != Equals {
		return
	}
	existing.Values = append(slices.Clip(existing.Values), value)
	p.m.set(field, existing)
}

// Get returns the filter for field.
func (p Parameters) Get(field string) (Parameter, bool) {
	return p.m.get(field)
}

// Len returns the number of filtered fields.
func (p Parameters) Len() int {
	return p.m.len()
}

// Names returns the field names in insertion order.
func (p Parameters) Names() []string {
	return p.m.keys()
}

// All iterates filters in insertion order.
func (p Parameters) All() iter.Seq2[string, Parameter] {
	return p.m.all()
}

// Keep returns a new mapping holding only the listed fields that exist,
// in this mapping's order.
func (p Parameters) Keep(fields ...string) Parameters {
	set := nameSet(fields)
	return Parameters{m: p.m.filter(func(k string) bool {
		_, ok := set[k]
		return ok
	}, Parameter.Clone)}
}

// Remove returns a copy without the listed fields.
func (p Parameters) Remove(fields ...string) Parameters {
	out := p.Clone()
	for _, f := range fields {
		out.m.delete(f)
	}
	return out
}

// Clone returns an independent copy.
func (p Parameters) Clone() Parameters {
	return Parameters{m: p.m.clone(Parameter.Clone)}
}
