package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultKey is the row identity column used when a scenario sets none.
const DefaultKey = "id"

// Scenario defines one conformance case: a query string and the
// observations it must produce.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Query is the raw HTTP query string. Empty is valid.
	Query string `yaml:"query"`

	// Fields is the compiler allow-list. Empty disables the check.
	Fields []string `yaml:"fields,omitempty"`

	// Setup holds SQL statements run against a fresh in-memory database.
	Setup []string `yaml:"setup,omitempty"`

	// Table is listed with the parsed query after setup.
	Table string `yaml:"table,omitempty"`

	// Columns selects result columns. Empty selects every column.
	Columns []string `yaml:"columns,omitempty"`

	// Key identifies rows in expectations and snapshots.
	Key string `yaml:"key,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Expect lists the observations a scenario checks.
// Unset fields are not checked.
type Expect struct {
	HTTP  string   `yaml:"http,omitempty"`
	SQL   string   `yaml:"sql,omitempty"`
	Binds []string `yaml:"binds,omitempty"`
	Error string   `yaml:"error,omitempty"`

	// Rows are the expected key values in result order.
	Rows []any `yaml:"rows,omitempty"`
}

func (e Expect) empty() bool {
	return e.HTTP == "" && e.SQL == "" && e.Binds == nil && e.Error == "" && e.Rows == nil
}

// key returns the row identity column.
func (s *Scenario) key() string {
	if s.Key == "" {
		return DefaultKey
	}
	return s.Key
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML from memory.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and consistent.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Expect.empty() {
		return fmt.Errorf("expect must check at least one of http, sql, binds, error, rows")
	}

	if s.Expect.Error != "" && (s.Expect.SQL != "" || s.Expect.Binds != nil || s.Expect.Rows != nil) {
		return fmt.Errorf("expect.error excludes sql, binds and rows")
	}

	if len(s.Setup) > 0 && s.Table == "" {
		return fmt.Errorf("table is required with setup")
	}

	if s.Table != "" && len(s.Setup) == 0 {
		return fmt.Errorf("setup is required with table %q", s.Table)
	}

	if s.Expect.Rows != nil && s.Table == "" {
		return fmt.Errorf("expect.rows requires table")
	}

	for i, stmt := range s.Setup {
		if stmt == "" {
			return fmt.Errorf("setup[%d]: statement is empty", i)
		}
	}

	return nil
}
