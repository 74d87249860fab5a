package harness

// Outcome is what a scenario's query actually produced.
type Outcome struct {
	// HTTP is the re-encoded query string; empty when parsing failed.
	HTTP string `json:"http,omitempty"`

	// SQL is the compiled fragment; empty when compilation failed.
	SQL string `json:"sql,omitempty"`

	// Binds are the bind values in sqlval.Format notation.
	Binds []string `json:"binds,omitempty"`

	// Error is the error code of the first failing stage, or the error
	// text when it carries no code.
	Error string `json:"error,omitempty"`

	// Rows holds the key value of each listed row.
	// Nil when the scenario has no table.
	Rows []string `json:"rows,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses match.
	Pass bool `json:"pass"`

	Outcome Outcome `json:"outcome"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
