package query

import "fmt"

// ValidationResult lists identifiers outside an allow-list.
type ValidationResult struct {
	// Valid is true when every filter and sort field is allowed.
	Valid bool

	// Unknown lists rejected names: filter fields first, then sort fields,
	// each in query order and without duplicates.
	Unknown []string

	// Warnings holds one human-readable line per rejected name.
	Warnings []string
}

// Err returns a *ValidationError when the result is not valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Fields: r.Unknown}
}

// Validate checks every filter and sort field of q against allowed.
//
// Field names are used verbatim as SQL identifiers, so callers must run
// Validate (or compile with an allow-list) before executing untrusted input.
//
// Validate is a pure function with no side effects.
func Validate(q Query, allowed []string) ValidationResult {
	v := &validator{
		allowed: nameSet(allowed),
		seen:    make(map[string]struct{}),
	}
	for field := range q.Parameters.All() {
		v.check("filter", field)
	}
	for field := range q.SortFields.All() {
		v.check("sort", field)
	}

	return ValidationResult{
		Valid:    len(v.unknown) == 0,
		Unknown:  v.unknown,
		Warnings: v.warnings,
	}
}

// validator accumulates rejected names.
type validator struct {
	allowed  map[string]struct{}
	seen     map[string]struct{}
	unknown  []string
	warnings []string
}

func (v *validator) check(kind, name string) {
	if _, ok := v.allowed[name]; ok {
		return
	}
	v.warnings = append(v.warnings, fmt.Sprintf("%s field %q is not allowed", kind, name))
	if _, dup := v.seen[name]; dup {
		return
	}
	v.seen[name] = struct{}{}
	v.unknown = append(v.unknown, name)
}
