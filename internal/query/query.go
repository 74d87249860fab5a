package query

import (
	"strconv"
	"strings"

	"github.com/roach88/listq/internal/codec"
)

// Pagination defaults applied when limit or offset is absent or invalid.
const (
	DefaultLimit  uint64 = 50
	DefaultOffset uint64 = 0
)

// Query is a parsed list query.
type Query struct {
	Parameters Parameters `json:"parameters"`
	SortFields SortFields `json:"sort_fields"`
	Limit      uint64     `json:"limit"`
	Offset     uint64     `json:"offset"`
}

// New returns a query with no filters, no sort fields and default pagination.
func New() Query {
	return Query{Limit: DefaultLimit, Offset: DefaultOffset}
}

// Clone returns an independent copy.
func (q Query) Clone() Query {
	return Query{
		Parameters: q.Parameters.Clone(),
		SortFields: q.SortFields.Clone(),
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
}

// Parse decodes an HTTP query string. A single leading '?' and surrounding
// whitespace are ignored; an empty string yields New().
//
// Tokens are folded left to right using the merge rules described in the
// package documentation.
func Parse(search string) (Query, error) {
	search = strings.TrimSpace(search)
	search = strings.TrimPrefix(search, "?")

	q := New()
	if strings.TrimSpace(search) == "" {
		return q, nil
	}

	for _, token := range strings.Split(search, "&") {
		if strings.TrimSpace(token) == "" {
			continue
		}
		if strings.Count(token, "=") != 1 {
			return Query{}, newParseError(ErrCodeInvalidSearchParameters, token, "expected key=value")
		}
		rawKey, rawValue, _ := strings.Cut(token, "=")
		key := strings.TrimSpace(rawKey)
		value := strings.TrimSpace(rawValue)
		if key == "" {
			return Query{}, newParseError(ErrCodeInvalidSearchParameters, token, "empty key")
		}

		if err := q.apply(key, value); err != nil {
			return Query{}, err
		}
	}

	return q, nil
}

// apply folds one key=value pair into q.
func (q *Query) apply(key, value string) error {
	if value == "" {
		return nil
	}

	switch key {
	case KeyOrder:
		if !strings.Contains(value, ":") {
			return newParseError(ErrCodeInvalidSortField, value, "expected name:direction")
		}
		if fields, err := ParseSortFields(value); err == nil {
			q.SortFields = fields
		}
	case KeyLimit:
		q.Limit = parseUintOr(value, DefaultLimit)
	case KeyOffset:
		q.Offset = parseUintOr(value, DefaultOffset)
	default:
		if strings.Contains(value, ":") {
			param, err := ParseParameter(value)
			if err != nil {
				return err
			}
			if len(param.Values) > 0 {
				q.Parameters.Set(key, param)
			}
			return nil
		}
		q.Parameters.appendEquals(key, codec.Decode(value))
	}
	return nil
}

func parseUintOr(s string, fallback uint64) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// Encode serializes q as an HTTP query string without a leading '?'.
// Fields with no values are skipped; limit and offset are always present.
func (q Query) Encode() string {
	tokens := make([]string, 0, q.Parameters.Len()+3)
	for field, param := range q.Parameters.All() {
		if len(param.Values) == 0 {
			continue
		}
		tokens = append(tokens, field+"="+param.String())
	}
	if order := q.SortFields.String(); order != "" {
		tokens = append(tokens, KeyOrder+"="+order)
	}
	tokens = append(tokens,
		KeyLimit+"="+strconv.FormatUint(q.Limit, 10),
		KeyOffset+"="+strconv.FormatUint(q.Offset, 10),
	)
	return strings.Join(tokens, "&")
}

// String returns Encode().
func (q Query) String() string {
	return q.Encode()
}
