package query

import "fmt"

// SortOrder is a sort direction. The zero value is Ascending.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// ParseSortOrder parses "asc" or "desc".
func ParseSortOrder(token string) (SortOrder, error) {
	switch token {
	case "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	default:
		return 0, newParseError(ErrCodeInvalidSortOrder, token, "unknown sort order")
	}
}

// String returns the canonical token. It is the inverse of ParseSortOrder.
func (o SortOrder) String() string {
	switch o {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("SortOrder(%d)", int(o))
	}
}

// SQL returns the ORDER BY keyword for the direction.
func (o SortOrder) SQL() string {
	if o == Descending {
		return "DESC"
	}
	return "ASC"
}

// MarshalText implements encoding.TextMarshaler.
func (o SortOrder) MarshalText() ([]byte, error) {
	if _, err := ParseSortOrder(o.String()); err != nil {
		return nil, err
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *SortOrder) UnmarshalText(text []byte) error {
	parsed, err := ParseSortOrder(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
