package query

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes query parse errors.
type ErrorCode string

const (
	// ErrCodeInvalidSortOrder indicates an unknown sort direction token.
	ErrCodeInvalidSortOrder ErrorCode = "INVALID_SORT_ORDER"

	// ErrCodeInvalidSortField indicates a malformed "name:direction" segment
	// or an order= value without a colon.
	ErrCodeInvalidSortField ErrorCode = "INVALID_SORT_FIELD"

	// ErrCodeInvalidSimilarity indicates an unknown similarity token.
	ErrCodeInvalidSimilarity ErrorCode = "INVALID_SIMILARITY"

	// ErrCodeInvalidParameter indicates a malformed "similarity:values" value.
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"

	// ErrCodeInvalidSearchParameters indicates a query string token that is
	// not a single key=value pair.
	ErrCodeInvalidSearchParameters ErrorCode = "INVALID_SEARCH_PARAMETERS"

	// ErrCodeUnknownField indicates a field or sort name outside the allow-list.
	ErrCodeUnknownField ErrorCode = "UNKNOWN_FIELD"
)

// ParseError is returned by every parser in this package.
type ParseError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Input is the offending token or segment.
	Input string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%s: %s (input=%q)", e.Code, e.Message, e.Input)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newParseError(code ErrorCode, input, format string, args ...any) *ParseError {
	return &ParseError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Input:   input,
	}
}

// ValidationError reports identifiers rejected by Validate.
type ValidationError struct {
	Fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: fields not allowed: %v", ErrCodeUnknownField, e.Fields)
}

// Code returns the error code carried by err, or "" when err carries none.
// Uses errors.As to handle wrapped errors.
func Code(err error) ErrorCode {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ErrCodeUnknownField
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && Code(err) == code
}
