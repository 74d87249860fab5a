package query

import "fmt"

// Similarity is the comparison operator applied to a field's values.
type Similarity int

const (
	Equals Similarity = iota
	Contains
	StartsWith
	EndsWith
	Between
	Lesser
	LesserOrEqual
	Greater
	GreaterOrEqual
)

// Similarities lists every variant in declaration order.
func Similarities() []Similarity {
	return []Similarity{
		Equals, Contains, StartsWith, EndsWith, Between,
		Lesser, LesserOrEqual, Greater, GreaterOrEqual,
	}
}

// ParseSimilarity parses a canonical similarity token.
// Matching is exact and case-sensitive.
func ParseSimilarity(token string) (Similarity, error) {
	switch token {
	case "equals":
		return Equals, nil
	case "contains":
		return Contains, nil
	case "starts-with":
		return StartsWith, nil
	case "ends-with":
		return EndsWith, nil
	case "between":
		return Between, nil
	case "lesser":
		return Lesser, nil
	case "lesser-or-equal":
		return LesserOrEqual, nil
	case "greater":
		return Greater, nil
	case "greater-or-equal":
		return GreaterOrEqual, nil
	default:
		return 0, newParseError(ErrCodeInvalidSimilarity, token, "unknown similarity")
	}
}

// String returns the canonical token. It is the inverse of ParseSimilarity.
func (s Similarity) String() string {
	switch s {
	case Equals:
		return "equals"
	case Contains:
		return "contains"
	case StartsWith:
		return "starts-with"
	case EndsWith:
		return "ends-with"
	case Between:
		return "between"
	case Lesser:
		return "lesser"
	case LesserOrEqual:
		return "lesser-or-equal"
	case Greater:
		return "greater"
	case GreaterOrEqual:
		return "greater-or-equal"
	default:
		return fmt.Sprintf("Similarity(%d)", int(s))
	}
}

// IsPattern reports whether the similarity compiles to LIKE.
func (s Similarity) IsPattern() bool {
	return s == Contains || s == StartsWith || s == EndsWith
}

// MarshalText implements encoding.TextMarshaler.
func (s Similarity) MarshalText() ([]byte, error) {
	if _, err := ParseSimilarity(s.String()); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Similarity) UnmarshalText(text []byte) error {
	parsed, err := ParseSimilarity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
