package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/internal/parquet"
	"github.com/huangsam/gamepulse/schema"
)

// PrintDashboard outputs every section in order. JSON is a single array; CSV
// and Parquet write one file per section when an output file is configured.
func PrintDashboard(sections []schema.Presentation, cfg *contract.Config, showHeaders bool) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		payload := make([]schema.PresentationJSON, len(sections))
		for i, p := range sections {
			payload[i] = p.ToJSON()
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, payload)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if cfg.OutputFile == "" {
			return writeDashboardCSV(os.Stdout, sections, fmtFloat, intFmt)
		}
		for _, p := range sections {
			if err := writeWithFile(sectionOutputFile(cfg.OutputFile, p.Summary.Report), func(w io.Writer) error {
				return writeReportCSV(w, p.Summary, fmtFloat, intFmt)
			}, "Wrote CSV"); err != nil {
				return fmt.Errorf("error writing CSV output for %s: %w", p.Summary.Report, err)
			}
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		for _, p := range sections {
			if err := writeWithFile(sectionOutputFile(cfg.OutputFile, p.Summary.Report), func(w io.Writer) error {
				return parquet.WriteSummaryParquet(w, p.Summary)
			}, "Wrote Parquet"); err != nil {
				return fmt.Errorf("error writing Parquet output for %s: %w", p.Summary.Report, err)
			}
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDashboardText(w, sections, cfg, showHeaders, fmtFloat, intFmt)
		}, "Wrote text")
	}
	return nil
}

func writeDashboardText(w io.Writer, sections []schema.Presentation, cfg *contract.Config, showHeaders bool, fmtFloat func(float64) string, intFmt string) error {
	for i, p := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeReportText(w, p, cfg, showHeaders, fmtFloat, intFmt); err != nil {
			return err
		}
	}
	return nil
}

// writeDashboardCSV writes each section's table as its own CSV block, separated by a blank line.
func writeDashboardCSV(w io.Writer, sections []schema.Presentation, fmtFloat func(float64) string, intFmt string) error {
	for i, p := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeReportCSV(w, p.Summary, fmtFloat, intFmt); err != nil {
			return err
		}
	}
	return nil
}
