// Package core has core logic for filtering, aggregating and presenting reports.
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/internal/datasource"
	"github.com/huangsam/gamepulse/internal/outwriter"
	"github.com/huangsam/gamepulse/schema"
)

// ErrNoDatasets is returned when the dashboard finds none of its datasets.
var ErrNoDatasets = errors.New("no dataset found for the dashboard")

// ExecuteReport presents one report section and prints it.
// It serves as the main entry point for the per-report commands.
func ExecuteReport(ctx context.Context, cfg *contract.Config, src contract.DataSource, report schema.ReportName) error {
	p, err := GetReportPresentation(ctx, cfg, src, report)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter(!shouldSuppressHeader(ctx)).WriteReport(p, cfg)
}

// GetReportPresentation loads the dataset of a report and runs the presenter
// with the selection configured for that report.
func GetReportPresentation(ctx context.Context, cfg *contract.Config, src contract.DataSource, report schema.ReportName) (schema.Presentation, error) {
	spec, err := SpecFor(report)
	if err != nil {
		return schema.Presentation{}, err
	}
	ds, err := src.Load(ctx, report)
	if err != nil {
		return schema.Presentation{}, fmt.Errorf("failed to load %s dataset: %w", report, err)
	}
	return Present(ds, cfg.SelectionFor(report), spec), nil
}

// ExecuteDashboard presents every report section in dashboard order and prints them.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config, src contract.DataSource) error {
	sections, err := GetDashboardPresentations(ctx, cfg, src)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter(!shouldSuppressHeader(ctx)).WriteDashboard(sections, cfg)
}

// GetDashboardPresentations presents each section with its own selection.
// Sections whose dataset is missing are skipped with a warning.
func GetDashboardPresentations(ctx context.Context, cfg *contract.Config, src contract.DataSource) ([]schema.Presentation, error) {
	sections := make([]schema.Presentation, 0, len(schema.AllReports))
	for _, report := range schema.AllReports {
		p, err := GetReportPresentation(ctx, cfg, src, report)
		if errors.Is(err, contract.ErrDatasetNotFound) {
			contract.LogWarn("Skipping "+string(report)+" section", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		sections = append(sections, p)
	}
	if len(sections) == 0 {
		return nil, ErrNoDatasets
	}
	return sections, nil
}

// ExecuteReportCatalog prints the definition of every report.
func ExecuteReportCatalog(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter(true).WriteCatalog(BuildReportCatalog(), cfg)
}

// ExecuteSourceStatus prints the availability of every dataset in the source.
func ExecuteSourceStatus(ctx context.Context, cfg *contract.Config, src contract.DataSource) error {
	status, err := src.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get source status: %w", err)
	}
	return outwriter.NewOutWriter(true).WriteSourceStatus(status, cfg)
}

// ExecuteDatasetExport writes every available dataset as Parquet into the
// directory named by --output-file.
func ExecuteDatasetExport(ctx context.Context, cfg *contract.Config, src contract.DataSource) error {
	results, err := datasource.ExportDatasets(ctx, src, cfg.OutputFile)
	if err != nil {
		return err
	}
	for _, r := range results {
		if cfg.UseEmojis {
			fmt.Printf("💾 Exported %s (%d rows) to %s\n", r.Report, r.Rows, r.Path)
		} else {
			fmt.Printf("Exported %s (%d rows) to %s\n", r.Report, r.Rows, r.Path)
		}
	}
	return nil
}

// ExecuteDatasetMigrate applies the dataset table migrations to the configured database.
func ExecuteDatasetMigrate(_ context.Context, cfg *contract.Config, targetVersion int) error {
	result, err := datasource.Migrate(cfg.SourceBackend, cfg.SourceDBConnect, cfg.DataDir, targetVersion)
	if err != nil {
		return fmt.Errorf("failed to migrate dataset tables: %w", err)
	}
	fmt.Println(result.String())
	return nil
}
