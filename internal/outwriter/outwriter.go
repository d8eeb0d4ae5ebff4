// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct {
	// showHeaders prints the section header lines in text output.
	showHeaders bool
}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter(showHeaders bool) *OutWriter {
	return &OutWriter{showHeaders: showHeaders}
}

// WriteReport prints one report section using the configured output format.
func (ow *OutWriter) WriteReport(p schema.Presentation, cfg *contract.Config) error {
	return PrintReport(p, cfg, ow.showHeaders)
}

// WriteDashboard prints every report section in order using the configured output format.
func (ow *OutWriter) WriteDashboard(sections []schema.Presentation, cfg *contract.Config) error {
	return PrintDashboard(sections, cfg, ow.showHeaders)
}

// WriteCatalog prints the report definitions using the configured output format.
func (ow *OutWriter) WriteCatalog(catalog schema.ReportCatalog, cfg *contract.Config) error {
	return PrintReportCatalog(catalog, cfg)
}

// WriteSourceStatus prints the dataset source status using the configured output format.
func (ow *OutWriter) WriteSourceStatus(status schema.SourceStatus, cfg *contract.Config) error {
	return PrintSourceStatus(status, cfg)
}
