package parquet

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/gamepulse/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetRecordStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(DatasetRecord))
	require.NotNil(t, s)

	expectedColumns := []string{
		"country", "level", "session_rank", "retention_days", "gun_name",
		"retention_count", "total_users", "players_started", "players_completed",
		"players_churned", "avg_duration", "avg_session_duration", "percentage", "users",
	}
	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestSummaryRecordStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(SummaryRecord))
	require.NotNil(t, s)

	for _, col := range []string{"report", "level", "gun_name", "rank", "churn_rate", "duration_time", "duration_seconds", "popularity"} {
		_, ok := s.Lookup(col)
		assert.True(t, ok, "Column %s should exist in schema", col)
	}
}

func sampleRows() []schema.Row {
	return []schema.Row{
		{
			Country:  "US",
			Level:    3,
			Measures: map[schema.Measure]float64{schema.PlayersStarted: 1000, schema.PlayersCompleted: 650},
		},
		{
			Level:    4,
			Measures: map[schema.Measure]float64{schema.PlayersStarted: 500},
		},
		{
			Level:    2,
			GunName:  "Shotgun",
			Measures: map[schema.Measure]float64{schema.Percentage: 12.5},
		},
	}
}

func TestDatasetRecordRoundTrip(t *testing.T) {
	for _, row := range sampleRows() {
		assert.Equal(t, row, DatasetRecordFromRow(row).ToRow())
	}
}

func TestDatasetRecordFromRowNulls(t *testing.T) {
	rec := DatasetRecordFromRow(sampleRows()[1])
	assert.Nil(t, rec.Country)
	assert.Nil(t, rec.GunName)
	assert.Nil(t, rec.SessionRank)
	assert.Nil(t, rec.PlayersCompleted)
	require.NotNil(t, rec.Level)
	assert.Equal(t, int64(4), *rec.Level)
	require.NotNil(t, rec.PlayersStarted)
	assert.InDelta(t, 500.0, *rec.PlayersStarted, 1e-9)
}

func TestWriteReadDatasetParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "loserate.parquet")
	data := sampleRows()

	require.NoError(t, WriteDatasetParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	rows, err := ReadDatasetParquet(outputPath)
	require.NoError(t, err)
	assert.Equal(t, data, rows)
}

func TestWriteDatasetParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteDatasetParquet(nil, outputPath))

	rows, err := ReadDatasetParquet(outputPath)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadDatasetParquet_MissingFile(t *testing.T) {
	_, err := ReadDatasetParquet(filepath.Join(t.TempDir(), "missing.parquet"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSummaryRecordsFromSummary(t *testing.T) {
	summary := schema.Summary{
		Report:  schema.GunPopularityReport,
		Columns: []schema.Column{schema.LevelCol, schema.RankCol, schema.GunNameCol, schema.PopularityCol},
		Rows: []schema.SummaryRow{
			{Level: 1, Rank: 2, GunName: "Rifle", Popularity: 30},
			{Level: 1, Rank: 3, GunName: "Pistol", Popularity: 20},
		},
	}

	records := SummaryRecordsFromSummary(summary)
	require.Len(t, records, 2)
	assert.Equal(t, "guns", records[0].Report)
	require.NotNil(t, records[1].GunName)
	assert.Equal(t, "Pistol", *records[1].GunName)
	require.NotNil(t, records[1].Rank)
	assert.Equal(t, int64(3), *records[1].Rank)
	assert.Nil(t, records[0].Country)
	assert.Nil(t, records[0].ChurnRate)
	assert.Nil(t, records[0].DurationTime)
}

func TestWriteSummaryParquet(t *testing.T) {
	summary := schema.Summary{
		Report:  schema.LevelDurationReport,
		Columns: []schema.Column{schema.LevelCol, schema.DurationTimeCol},
		Rows:    []schema.SummaryRow{{Level: 1, AvgSeconds: 3661, DurationTime: "01:01:01"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummaryParquet(&buf, summary))

	records, err := parquet.Read[SummaryRecord](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].DurationTime)
	assert.Equal(t, "01:01:01", *records[0].DurationTime)
	require.NotNil(t, records[0].DurationSeconds)
	assert.InDelta(t, 3661.0, *records[0].DurationSeconds, 1e-9)
}
