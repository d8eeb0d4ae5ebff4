package datasource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/internal/parquet"
	"github.com/huangsam/gamepulse/schema"
)

// ExportResult describes one dataset written by ExportDatasets.
type ExportResult struct {
	Report schema.ReportName
	Path   string
	Rows   int
}

// ExportDatasets writes every available dataset of src into outputDir as
// <dataset>.parquet. Missing datasets are skipped.
func ExportDatasets(ctx context.Context, src contract.DataSource, outputDir string) ([]ExportResult, error) {
	if outputDir == "" {
		return nil, errors.New("--output-file is required for export command")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var results []ExportResult
	for _, report := range schema.AllReports {
		ds, err := src.Load(ctx, report)
		if errors.Is(err, contract.ErrDatasetNotFound) {
			continue
		}
		if err != nil {
			return results, err
		}
		path := filepath.Join(outputDir, ParquetFileName(report))
		if err := parquet.WriteDatasetParquet(ds.Rows, path); err != nil {
			return results, fmt.Errorf("failed to export %s: %w", report, err)
		}
		results = append(results, ExportResult{Report: report, Path: path, Rows: len(ds.Rows)})
	}
	if len(results) == 0 {
		return nil, errors.New("no dataset found to export")
	}
	return results, nil
}
