package query

import "encoding/json"

type parameterJSON struct {
	Field      string     `json:"field"`
	Similarity Similarity `json:"similarity"`
	Values     []string   `json:"values"`
}

type sortFieldJSON struct {
	Field string    `json:"field"`
	Order SortOrder `json:"order"`
}

// MarshalJSON encodes the filters as an array to keep insertion order.
func (p Parameters) MarshalJSON() ([]byte, error) {
	out := make([]parameterJSON, 0, p.Len())
	for field, param := range p.All() {
		values := param.Values
		if values == nil {
			values = []string{}
		}
		out = append(out, parameterJSON{Field: field, Similarity: param.Similarity, Values: values})
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the array form produced by MarshalJSON.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	var in []parameterJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = Parameters{}
	for _, e := range in {
		p.Set(e.Field, Parameter{Similarity: e.Similarity, Values: e.Values})
	}
	return nil
}

// MarshalJSON encodes the sort fields as an array to keep precedence order.
func (s SortFields) MarshalJSON() ([]byte, error) {
	out := make([]sortFieldJSON, 0, s.Len())
	for field, order := range s.All() {
		out = append(out, sortFieldJSON{Field: field, Order: order})
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the array form produced by MarshalJSON.
func (s *SortFields) UnmarshalJSON(data []byte) error {
	var in []sortFieldJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = SortFields{}
	for _, e := range in {
		s.Set(e.Field, e.Order)
	}
	return nil
}
