package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// PostgresDSNEnv names the variable holding the live PostgreSQL DSN.
const PostgresDSNEnv = "LISTQ_POSTGRES_DSN"

// PostgresPeople connects to the database named by PostgresDSNEnv and
// creates a uniquely named, seeded people table that is dropped when the
// test ends. The test is skipped when the variable is unset.
func PostgresPeople(t testing.TB) (conn *pgx.Conn, dsn, table string) {
	t.Helper()
	dsn = os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skip(PostgresDSNEnv + " not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(context.Background()) })

	table = fmt.Sprintf("listq_people_%d", time.Now().UnixNano())
	_, err = conn.Exec(ctx, fmt.Sprintf(`CREATE TABLE %s (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		surname TEXT NOT NULL,
		age BIGINT NOT NULL,
		score DOUBLE PRECISION NOT NULL,
		email TEXT,
		date_created TEXT NOT NULL
	)`, table))
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Exec(context.Background(), "DROP TABLE IF EXISTS "+table)
	})

	for _, p := range People {
		_, err := conn.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s VALUES ($1, $2, $3, $4, $5, $6, $7)`, table),
			p.ID, p.Name, p.Surname, p.Age, p.Score, p.Email, p.DateCreated)
		require.NoError(t, err)
	}

	return conn, dsn, table
}
