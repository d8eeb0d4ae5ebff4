package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintSourceStatus outputs the dataset source status.
func PrintSourceStatus(status schema.SourceStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatusCSV(w, status)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for dataset status")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatusText(w, status, cfg.UseColors)
		}, "Wrote text")
	}
}

func writeStatusText(w io.Writer, status schema.SourceStatus, useColors bool) error {
	if _, err := fmt.Fprintf(w, "Source Format: %s\n", status.Format); err != nil {
		return err
	}
	if status.Backend != "" {
		if _, err := fmt.Fprintf(w, "Source Backend: %s\n", status.Backend); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Location: %s\n", status.Location); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Connected: %t\n", status.Connected); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Report", "Dataset", "Available", "Rows", "Error"})
	data := make([][]string, 0, len(status.Datasets))
	for _, ds := range status.Datasets {
		available := contract.Colorize(schema.RetainedColor, "yes", useColors)
		rows := strconv.Itoa(ds.Rows)
		if !ds.Available {
			available = contract.Colorize(schema.LostColor, "no", useColors)
			rows = "-"
		}
		data = append(data, []string{string(ds.Report), ds.Dataset, available, rows, ds.Error})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeStatusCSV(w io.Writer, status schema.SourceStatus) error {
	header := []string{"report", "dataset", "location", "available", "rows", "error"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, ds := range status.Datasets {
			record := []string{
				string(ds.Report),
				ds.Dataset,
				ds.Location,
				strconv.FormatBool(ds.Available),
				strconv.Itoa(ds.Rows),
				ds.Error,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
