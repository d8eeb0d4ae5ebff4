// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/huangsam/gamepulse/schema"
)

// ErrDatasetNotFound is returned when a source has no data for a report.
var ErrDatasetNotFound = errors.New("dataset not found")

// DataSource defines the read-only operations needed to load report datasets.
// This allows the presentation logic to be tested without files or databases.
type DataSource interface {
	// Load reads the whole dataset behind a report. Every call goes back to
	// the underlying storage.
	Load(ctx context.Context, report schema.ReportName) (schema.Dataset, error)

	// Status returns availability and row counts for every dataset.
	Status(ctx context.Context) (schema.SourceStatus, error)

	// Close releases the underlying handles
	Close() error
}
