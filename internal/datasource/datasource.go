// Package datasource loads the report datasets from CSV extracts, Parquet
// files or SQL tables.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/internal/parquet"
	"github.com/huangsam/gamepulse/schema"
)

// NewSource returns the data source selected by the configuration.
func NewSource(cfg *contract.Config) (contract.DataSource, error) {
	switch cfg.Source {
	case schema.CSVSource, "":
		return NewCSVSource(cfg.DataDir, cfg.DatasetPaths), nil
	case schema.ParquetSource:
		return NewParquetSource(cfg.DataDir, cfg.DatasetPaths), nil
	case schema.SQLSource:
		return NewSQLSource(cfg.SourceBackend, cfg.SourceDBConnect, cfg.DataDir)
	default:
		return nil, fmt.Errorf("unsupported source: %s. Must be csv, parquet, or sql", cfg.Source)
	}
}

// FileSource loads every dataset from its own file.
type FileSource struct {
	format  schema.SourceFormat
	dataDir string
	paths   map[schema.ReportName]string
	name    func(report schema.ReportName) string
	read    func(path string) ([]schema.Row, error)
}

var _ contract.DataSource = &FileSource{} // Compile-time check

// NewCSVSource reads the original CSV extracts from dataDir. Entries in
// paths replace the default location of a report's extract.
func NewCSVSource(dataDir string, paths map[schema.ReportName]string) *FileSource {
	return &FileSource{
		format:  schema.CSVSource,
		dataDir: dataDir,
		paths:   paths,
		name:    func(report schema.ReportName) string { return schema.DatasetFile[report] },
		read:    readCSVFile,
	}
}

// NewParquetSource reads <dataset>.parquet files as written by ExportDatasets.
func NewParquetSource(dataDir string, paths map[schema.ReportName]string) *FileSource {
	return &FileSource{
		format:  schema.ParquetSource,
		dataDir: dataDir,
		paths:   paths,
		name:    ParquetFileName,
		read:    parquet.ReadDatasetParquet,
	}
}

// ParquetFileName is the file a dataset is exported to.
func ParquetFileName(report schema.ReportName) string {
	return schema.DatasetName[report] + ".parquet"
}

// PathFor returns where the dataset of a report is read from.
func (s *FileSource) PathFor(report schema.ReportName) string {
	if p, ok := s.paths[report]; ok {
		return p
	}
	return filepath.Join(s.dataDir, s.name(report))
}

// Load implements the DataSource interface.
func (s *FileSource) Load(ctx context.Context, report schema.ReportName) (schema.Dataset, error) {
	if err := checkReport(report); err != nil {
		return schema.Dataset{}, err
	}
	if err := ctx.Err(); err != nil {
		return schema.Dataset{}, err
	}
	path := s.PathFor(report)
	rows, err := s.read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return schema.Dataset{}, fmt.Errorf("%w: %s (%s)", contract.ErrDatasetNotFound, report, path)
	}
	if err != nil {
		return schema.Dataset{}, fmt.Errorf("failed to load %s from %s: %w", report, path, err)
	}
	return schema.Dataset{Report: report, Rows: rows}, nil
}

// Status implements the DataSource interface.
func (s *FileSource) Status(ctx context.Context) (schema.SourceStatus, error) {
	status := schema.SourceStatus{Format: s.format, Location: s.dataDir}
	if info, err := os.Stat(s.dataDir); err == nil && info.IsDir() {
		status.Connected = true
	}
	for _, report := range schema.AllReports {
		ds := schema.DatasetStatus{
			Report:   report,
			Dataset:  schema.DatasetName[report],
			Location: s.PathFor(report),
		}
		data, err := s.Load(ctx, report)
		if err != nil {
			ds.Error = err.Error()
		} else {
			ds.Available = true
			ds.Rows = len(data.Rows)
		}
		status.Datasets = append(status.Datasets, ds)
	}
	return status, ctx.Err()
}

// Close implements the DataSource interface.
func (s *FileSource) Close() error {
	return nil
}

func readCSVFile(path string) ([]schema.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	return decodeCSV(file)
}

func checkReport(report schema.ReportName) error {
	if _, ok := schema.ValidReports[report]; !ok {
		return fmt.Errorf("unknown report: %s", report)
	}
	return nil
}
