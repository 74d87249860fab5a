// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/listq/internal/query"
)

// MustParse parses search or fails the test.
func MustParse(t testing.TB, search string) query.Query {
	t.Helper()
	q, err := query.Parse(search)
	require.NoError(t, err, "parse %q", search)
	return q
}

// Person is one row of the people fixture table.
type Person struct {
	ID          int64
	Name        string
	Surname     string
	Age         int64
	Score       float64
	Email       *string
	DateCreated string
}

// PeopleSchema creates the people fixture table.
const PeopleSchema = `
CREATE TABLE people (
	id           INTEGER PRIMARY KEY,
	name         TEXT NOT NULL,
	surname      TEXT NOT NULL,
	age          INTEGER NOT NULL,
	score        REAL NOT NULL,
	email        TEXT,
	date_created TEXT NOT NULL
)`

func ptr(s string) *string { return &s }

// People is the fixture data, in id order.
var People = []Person{
	{1, "damian", "black", 34, 7.5, ptr("damian@example.com"), "2024-01-05"},
	{2, "adam", "steel", 28, 9.25, nil, "2024-02-11"},
	{3, "miriam", "wood", 45, 6, ptr("miriam@example.org"), "2024-03-02"},
	{4, "john", "black", 19, 8, ptr("john@example.com"), "2024-03-20"},
	{5, "amelia", "stone", 52, 5.5, nil, "2024-04-14"},
	{6, "damiano", "steel", 31, 9.75, ptr("damiano@example.net"), "2024-05-01"},
}

// SeedPeople creates and fills the people table.
func SeedPeople(t testing.TB, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(PeopleSchema)
	require.NoError(t, err, "create people")

	for _, p := range People {
		_, err := db.Exec(
			`INSERT INTO people (id, name, surname, age, score, email, date_created) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Surname, p.Age, p.Score, p.Email, p.DateCreated,
		)
		require.NoError(t, err, "insert person %d", p.ID)
	}
}

// IDs extracts the "id" column from rows returned by a list query.
func IDs[R ~map[string]any](t testing.TB, rows []R) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		id, ok := row["id"].(int64)
		require.True(t, ok, "row id has type %T", row["id"])
		ids = append(ids, id)
	}
	return ids
}
