//go:build basic

// Package integration contains integration tests for gamepulse.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type presentation struct {
	Report string           `json:"report"`
	Rows   []map[string]any `json:"rows"`
	Gauges []struct {
		Label string  `json:"label"`
		Value float64 `json:"value"`
	} `json:"gauges"`
}

func presentJSON(t *testing.T, dir string, args ...string) presentation {
	t.Helper()
	out, err := runGamepulse(t, dir, append(args, "--output", "json")...)
	require.NoError(t, err)
	var p presentation
	require.NoError(t, json.Unmarshal([]byte(out), &p), out)
	return p
}

// TestLoserateVerification checks churn rates against the sample extract.
func TestLoserateVerification(t *testing.T) {
	dir := writeSampleDatasets(t)

	p := presentJSON(t, dir, "loserate", "--data-dir", dir)
	assert.Equal(t, "loserate", p.Report)
	require.Len(t, p.Rows, 2)
	assert.InDelta(t, 1.0, p.Rows[0]["level"], 1e-9)
	assert.InDelta(t, 30.0, p.Rows[0]["churn_rate"], 1e-9)
	assert.InDelta(t, 100.0*50/650, p.Rows[1]["churn_rate"], 1e-9)

	p = presentJSON(t, dir, "loserate", "--data-dir", dir, "--country", "BR")
	require.Len(t, p.Rows, 1)
	assert.InDelta(t, 20.0, p.Rows[0]["churn_rate"], 1e-9)

	p = presentJSON(t, dir, "loserate", "--data-dir", dir, "--min", "15", "--max", "5")
	assert.Empty(t, p.Rows)
}

// TestRetentionGaugesIgnoreSelection checks gauges are computed over every country.
func TestRetentionGaugesIgnoreSelection(t *testing.T) {
	dir := writeSampleDatasets(t)

	p := presentJSON(t, dir, "retention", "--data-dir", dir, "--country", "US")
	require.Len(t, p.Gauges, 2)
	assert.InDelta(t, 35.0, p.Gauges[0].Value, 1e-9)
	assert.InDelta(t, 7.5, p.Gauges[1].Value, 1e-9)
	for _, row := range p.Rows {
		assert.Equal(t, "US", row["country"])
	}
}

// TestConfigFileSections checks per-section selections from .gamepulse.yaml and env.
func TestConfigFileSections(t *testing.T) {
	dir := writeSampleDatasets(t)
	config := "data-dir: " + dir + "\nsections:\n  guns:\n    rating: Top-1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gamepulse.yaml"), []byte(config), 0o644))

	p := presentJSON(t, dir, "guns")
	require.Len(t, p.Rows, 1)
	assert.Equal(t, "Pistol", p.Rows[0]["gun_name"])

	t.Setenv("GAMEPULSE_PRECISION", "3")
	_, err := runGamepulse(t, dir, "guns")
	assert.Error(t, err)
}

// TestDashboardAndExport runs the dashboard, exports to Parquet and presents from the export.
func TestDashboardAndExport(t *testing.T) {
	dir := writeSampleDatasets(t)

	out, err := runGamepulse(t, dir, "dashboard", "--data-dir", dir, "--color", "no", "--width", "80")
	require.NoError(t, err)
	for _, title := range []string{"Retention", "Lose Rate", "Players Left", "Gun Popularity"} {
		assert.Contains(t, out, title)
	}

	exported := filepath.Join(t.TempDir(), "exported")
	_, err = runGamepulse(t, dir, "datasets", "export", "--data-dir", dir, "--output-file", exported)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(exported, "loserate.parquet"))

	fromCSV := presentJSON(t, dir, "players-left", "--data-dir", dir)
	fromParquet := presentJSON(t, dir, "players-left", "--source", "parquet", "--data-dir", exported)
	assert.Equal(t, fromCSV.Rows, fromParquet.Rows)
}

// TestSQLiteSource migrates a sqlite database and checks an empty table is a valid empty result.
func TestSQLiteSource(t *testing.T) {
	dir := t.TempDir()

	_, err := runGamepulse(t, dir, "datasets", "migrate", "--data-dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "gamepulse.db"))

	p := presentJSON(t, dir, "loserate", "--source", "sql", "--data-dir", dir)
	assert.Empty(t, p.Rows)

	out, err := runGamepulse(t, dir, "datasets", "status", "--source", "sql", "--data-dir", dir, "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "loserate,loserate")
}
