package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/schema"
)

// PrintReportCatalog displays the definition of every report.
func PrintReportCatalog(catalog schema.ReportCatalog, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, catalog)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogCSV(w, catalog)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the report catalog")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogText(w, catalog, cfg.UseEmojis)
		}, "Wrote text")
	}
}

// writeCatalogText displays the catalog in human-readable text format.
func writeCatalogText(w io.Writer, catalog schema.ReportCatalog, useEmojis bool) error {
	title := catalog.Title
	if useEmojis {
		title = "🎮 " + title
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n\n", title, strings.Repeat("=", len([]rune(title))), catalog.Description); err != nil {
		return err
	}

	for _, def := range catalog.Reports {
		name := def.Name
		if useEmojis {
			name = reportEmoji(schema.ReportName(def.Name)) + " " + name
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, def.Title); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Dataset: %s\n", def.Dataset); err != nil {
			return err
		}
		if def.RangeKey != "" {
			if _, err := fmt.Fprintf(w, "   Range: %s\n", def.RangeKey); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "   Group by: %s\n", strings.Join(def.GroupBy, ", ")); err != nil {
			return err
		}
		if len(def.Sums) > 0 {
			if _, err := fmt.Fprintf(w, "   Sum: %s\n", strings.Join(def.Sums, ", ")); err != nil {
				return err
			}
		}
		if len(def.Means) > 0 {
			if _, err := fmt.Fprintf(w, "   Mean: %s\n", strings.Join(def.Means, ", ")); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "   Formula: %s\n   Chart: %s\n\n", def.Formula, def.Chart); err != nil {
			return err
		}
	}
	return nil
}

func writeCatalogCSV(w io.Writer, catalog schema.ReportCatalog) error {
	header := []string{"name", "title", "dataset", "range_key", "group_by", "sums", "means", "formula", "chart"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, def := range catalog.Reports {
			record := []string{
				def.Name,
				def.Title,
				def.Dataset,
				def.RangeKey,
				strings.Join(def.GroupBy, ";"),
				strings.Join(def.Sums, ";"),
				strings.Join(def.Means, ";"),
				def.Formula,
				def.Chart,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
