//go:build database

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const seedLoserate = `INSERT INTO loserate (country, level, players_started, players_completed) VALUES
('US', 1, 1000, 650), ('BR', 1, 500, 400), ('US', 2, 650, 600), ('US', 194000, 10, 1)`

// TestGamepulseWithMySQL runs the SQL source against a MySQL container.
func TestGamepulseWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "gamepulse",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/gamepulse", host, port.Port())
	runSQLSourceScenario(t, "mysql", "mysql", connStr)
}

// TestGamepulseWithPostgres runs the SQL source against a PostgreSQL container.
func TestGamepulseWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	runSQLSourceScenario(t, "postgresql", "pgx", connStr)
}

// runSQLSourceScenario migrates the dataset tables through the CLI, seeds the
// loserate table and presents it from the SQL source.
func runSQLSourceScenario(t *testing.T, backend, driver, connStr string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GAMEPULSE_SOURCE", "sql")
	t.Setenv("GAMEPULSE_SOURCE_BACKEND", backend)
	t.Setenv("GAMEPULSE_SOURCE_DB_CONNECT", connStr)

	_, err := runGamepulse(t, dir, "datasets", "migrate")
	require.NoError(t, err)

	db, err := sql.Open(driver, connStr)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	_, err = db.Exec(seedLoserate)
	require.NoError(t, err)

	out, err := runGamepulse(t, dir, "loserate", "--output", "json")
	require.NoError(t, err)
	var p struct {
		Rows []map[string]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &p), out)
	require.Len(t, p.Rows, 2)
	assert.InDelta(t, 30.0, p.Rows[0]["churn_rate"], 1e-9)

	out, err = runGamepulse(t, dir, "datasets", "status", "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "loserate,loserate,")

	// Sections without rows are valid empty results
	out, err = runGamepulse(t, dir, "dashboard", "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "No rows match the current selection.")

	_, err = runGamepulse(t, dir, "datasets", "migrate", "--target-version", "0")
	require.NoError(t, err)
}
