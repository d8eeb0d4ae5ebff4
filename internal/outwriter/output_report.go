package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/internal/parquet"
	"github.com/huangsam/gamepulse/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// EmptySelectionMessage is printed in place of a table when no rows match.
const EmptySelectionMessage = "No rows match the current selection."

// PrintReport outputs one report section, dispatching based on the output format configured.
func PrintReport(p schema.Presentation, cfg *contract.Config, showHeader bool) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, p.ToJSON())
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, p.Summary, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteSummaryParquet(w, p.Summary)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, p, cfg, showHeader, fmtFloat, intFmt)
		}, "Wrote text")
	}
	return nil
}

// writeReportText renders the header, summary table, charts and gauges of a section.
func writeReportText(w io.Writer, p schema.Presentation, cfg *contract.Config, showHeader bool, fmtFloat func(float64) string, intFmt string) error {
	if showHeader {
		if _, err := fmt.Fprintln(w, sectionHeader(p, cfg.UseEmojis)); err != nil {
			return err
		}
	}

	if p.Empty() {
		if _, err := fmt.Fprintln(w, EmptySelectionMessage); err != nil {
			return err
		}
	} else if err := writeSummaryTable(w, p.Summary, cfg.UseColors, fmtFloat, intFmt); err != nil {
		return err
	}

	for _, chart := range p.Charts {
		if err := writeChart(w, chart, cfg, fmtFloat); err != nil {
			return err
		}
	}
	return writeGauges(w, p.Gauges, cfg, fmtFloat)
}

// writeSummaryTable generates and writes the human-readable summary table.
func writeSummaryTable(w io.Writer, summary schema.Summary, useColors bool, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)

	headers := make([]string, len(summary.Columns))
	for i, c := range summary.Columns {
		headers[i] = columnTitle(c)
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(summary.Rows))
	for _, r := range summary.Rows {
		row := make([]string, len(summary.Columns))
		for i, c := range summary.Columns {
			row[i] = formatTableCell(r, c, fmtFloat, intFmt, useColors)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeReportCSV writes the summary columns as header and rows.
func writeReportCSV(w io.Writer, summary schema.Summary, fmtFloat func(float64) string, intFmt string) error {
	header := make([]string, len(summary.Columns))
	for i, c := range summary.Columns {
		header[i] = string(c)
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range summary.Rows {
			record := make([]string, len(summary.Columns))
			for i, c := range summary.Columns {
				record[i] = formatCell(r, c, fmtFloat, intFmt)
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
