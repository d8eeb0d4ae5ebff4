package datasource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loserateCSV = `,country,level,players_started,players_completed
0,US,1,1000,650
1,BR,1,500,400
2,US,2,650,600
`

const gunsCSV = `country,level,gun_name,users,percentage
US,1,Rifle,10,50
US,1,Pistol,6,30
`

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, schema.DatasetFile[schema.LoserateReport]), []byte(loserateCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, schema.DatasetFile[schema.GunPopularityReport]), []byte(gunsCSV), 0o644))
	return dir
}

func TestCSVSourceLoad(t *testing.T) {
	src := NewCSVSource(writeDataDir(t), nil)
	defer func() { _ = src.Close() }()

	ds, err := src.Load(context.Background(), schema.LoserateReport)
	require.NoError(t, err)
	assert.Equal(t, schema.LoserateReport, ds.Report)
	require.Len(t, ds.Rows, 3)
	assert.Equal(t, "BR", ds.Rows[1].Country)
	assert.InDelta(t, 600.0, ds.Rows[2].Measure(schema.PlayersCompleted), 1e-9)
}

func TestCSVSourceMissingDataset(t *testing.T) {
	src := NewCSVSource(writeDataDir(t), nil)

	_, err := src.Load(context.Background(), schema.RetentionReport)
	assert.ErrorIs(t, err, contract.ErrDatasetNotFound)
}

func TestCSVSourceUnknownReport(t *testing.T) {
	src := NewCSVSource(t.TempDir(), nil)

	_, err := src.Load(context.Background(), schema.ReportName("weapons"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, contract.ErrDatasetNotFound)
}

func TestCSVSourceCanceledContext(t *testing.T) {
	src := NewCSVSource(writeDataDir(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Load(ctx, schema.LoserateReport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVSourcePathOverride(t *testing.T) {
	dir := writeDataDir(t)
	custom := filepath.Join(t.TempDir(), "weekly_loserate.csv")
	require.NoError(t, os.WriteFile(custom, []byte("level,players_started,players_completed\n9,10,5\n"), 0o644))

	src := NewCSVSource(dir, map[schema.ReportName]string{schema.LoserateReport: custom})
	assert.Equal(t, custom, src.PathFor(schema.LoserateReport))
	assert.Equal(t, filepath.Join(dir, "popul_guns.csv"), src.PathFor(schema.GunPopularityReport))

	ds, err := src.Load(context.Background(), schema.LoserateReport)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, 9, ds.Rows[0].Level)
}

func TestCSVSourceStatus(t *testing.T) {
	dir := writeDataDir(t)
	src := NewCSVSource(dir, nil)

	status, err := src.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schema.CSVSource, status.Format)
	assert.Equal(t, dir, status.Location)
	assert.True(t, status.Connected)
	require.Len(t, status.Datasets, len(schema.AllReports))

	byReport := map[schema.ReportName]schema.DatasetStatus{}
	for _, ds := range status.Datasets {
		byReport[ds.Report] = ds
	}
	assert.True(t, byReport[schema.LoserateReport].Available)
	assert.Equal(t, 3, byReport[schema.LoserateReport].Rows)
	assert.True(t, byReport[schema.GunPopularityReport].Available)
	assert.False(t, byReport[schema.RetentionReport].Available)
	assert.NotEmpty(t, byReport[schema.RetentionReport].Error)
}

func TestCSVSourceStatusMissingDir(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "nope"), nil)

	status, err := src.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Connected)
	for _, ds := range status.Datasets {
		assert.False(t, ds.Available)
	}
}

func TestExportAndParquetSource(t *testing.T) {
	ctx := context.Background()
	csvSrc := NewCSVSource(writeDataDir(t), nil)
	outDir := filepath.Join(t.TempDir(), "export")

	results, err := ExportDatasets(ctx, csvSrc, outDir)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, schema.LoserateReport, results[0].Report)
	assert.Equal(t, 3, results[0].Rows)
	assert.Equal(t, filepath.Join(outDir, "loserate.parquet"), results[0].Path)
	assert.Equal(t, schema.GunPopularityReport, results[1].Report)

	pqSrc := NewParquetSource(outDir, nil)
	for _, report := range []schema.ReportName{schema.LoserateReport, schema.GunPopularityReport} {
		want, err := csvSrc.Load(ctx, report)
		require.NoError(t, err)
		got, err := pqSrc.Load(ctx, report)
		require.NoError(t, err)
		assert.Equal(t, want, got, report)
	}

	_, err = pqSrc.Load(ctx, schema.RetentionReport)
	assert.ErrorIs(t, err, contract.ErrDatasetNotFound)
}

func TestExportDatasetsErrors(t *testing.T) {
	ctx := context.Background()

	_, err := ExportDatasets(ctx, NewCSVSource(t.TempDir(), nil), "")
	assert.Error(t, err)

	_, err = ExportDatasets(ctx, NewCSVSource(t.TempDir(), nil), t.TempDir())
	assert.EqualError(t, err, "no dataset found to export")
}

func TestExportDatasetsWithMock(t *testing.T) {
	ctx := context.Background()
	src := &MockDataSource{}
	for _, report := range schema.AllReports {
		if report == schema.LevelDurationReport {
			src.On("Load", ctx, report).Return(schema.Dataset{
				Report: report,
				Rows:   []schema.Row{{Level: 1, Measures: map[schema.Measure]float64{schema.AvgDuration: 60}}},
			}, nil)
			continue
		}
		src.On("Load", ctx, report).Return(schema.Dataset{}, contract.ErrDatasetNotFound)
	}

	results, err := ExportDatasets(ctx, src, t.TempDir())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, schema.LevelDurationReport, results[0].Report)
	src.AssertExpectations(t)
}

func TestNewSource(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		src, err := NewSource(&contract.Config{Source: schema.CSVSource, DataDir: "data"})
		require.NoError(t, err)
		assert.IsType(t, &FileSource{}, src)
	})

	t.Run("parquet", func(t *testing.T) {
		src, err := NewSource(&contract.Config{Source: schema.ParquetSource, DataDir: "data"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("data", "avg_dur_sess.parquet"), src.(*FileSource).PathFor(schema.SessionDurationReport))
	})

	t.Run("sqlite", func(t *testing.T) {
		src, err := NewSource(&contract.Config{
			Source:          schema.SQLSource,
			SourceBackend:   schema.SQLiteBackend,
			SourceDBConnect: filepath.Join(t.TempDir(), "gp.db"),
		})
		require.NoError(t, err)
		assert.IsType(t, &SQLSource{}, src)
		assert.NoError(t, src.Close())
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := NewSource(&contract.Config{Source: schema.SourceFormat("excel")})
		assert.Error(t, err)
	})
}
