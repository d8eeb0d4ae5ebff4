// Package parquet provides data structures and functions for reading and writing
// gamepulse datasets and report summaries as Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/gamepulse/schema"
	"github.com/parquet-go/parquet-go"
)

// DatasetRecord is one row of any dataset extract.
// Columns a dataset does not carry are stored as nulls.
type DatasetRecord struct {
	// Country is the ISO code of the player's country (nullable)
	Country *string `parquet:"country,optional,snappy"`

	// Level is the game level (nullable)
	Level *int64 `parquet:"level,optional,snappy"`

	// SessionRank is the ordinal of the player's session (nullable)
	SessionRank *int64 `parquet:"session_rank,optional,snappy"`

	// RetentionDays is the day offset a retention count refers to (nullable)
	RetentionDays *int64 `parquet:"retention_days,optional,snappy"`

	// GunName names the weapon a popularity row refers to (nullable)
	GunName *string `parquet:"gun_name,optional,snappy"`

	RetentionCount     *float64 `parquet:"retention_count,optional,snappy"`
	TotalUsers         *float64 `parquet:"total_users,optional,snappy"`
	PlayersStarted     *float64 `parquet:"players_started,optional,snappy"`
	PlayersCompleted   *float64 `parquet:"players_completed,optional,snappy"`
	PlayersChurned     *float64 `parquet:"players_churned,optional,snappy"`
	AvgDuration        *float64 `parquet:"avg_duration,optional,snappy"`
	AvgSessionDuration *float64 `parquet:"avg_session_duration,optional,snappy"`
	Percentage         *float64 `parquet:"percentage,optional,snappy"`
	Users              *float64 `parquet:"users,optional,snappy"`
}

// SummaryRecord is one row of a report summary. Only the columns of the
// report that produced it are set.
type SummaryRecord struct {
	// Report is the report that produced this row
	Report string `parquet:"report,snappy"`

	Country          *string  `parquet:"country,optional,snappy"`
	Level            *int64   `parquet:"level,optional,snappy"`
	SessionRank      *int64   `parquet:"session_rank,optional,snappy"`
	RetentionDays    *int64   `parquet:"retention_days,optional,snappy"`
	GunName          *string  `parquet:"gun_name,optional,snappy"`
	Rank             *int64   `parquet:"rank,optional,snappy"`
	TotalUsers       *int64   `parquet:"total_users,optional,snappy"`
	RetentionCount   *int64   `parquet:"retention_count,optional,snappy"`
	RetentionPercent *float64 `parquet:"retention_percent,optional,snappy"`
	PlayersStarted   *int64   `parquet:"players_started,optional,snappy"`
	PlayersCompleted *int64   `parquet:"players_completed,optional,snappy"`
	PlayersChurned   *int64   `parquet:"players_churned,optional,snappy"`
	ChurnRate        *float64 `parquet:"churn_rate,optional,snappy"`
	DurationTime     *string  `parquet:"duration_time,optional,snappy"`

	// DurationSeconds is the mean duration behind DurationTime (nullable)
	DurationSeconds *float64 `parquet:"duration_seconds,optional,snappy"`

	Popularity *float64 `parquet:"popularity,optional,snappy"`
}

// measureFields pairs every measure with its record field.
func (r *DatasetRecord) measureFields() map[schema.Measure]**float64 {
	return map[schema.Measure]**float64{
		schema.RetentionCount:     &r.RetentionCount,
		schema.TotalUsers:         &r.TotalUsers,
		schema.PlayersStarted:     &r.PlayersStarted,
		schema.PlayersCompleted:   &r.PlayersCompleted,
		schema.PlayersChurned:     &r.PlayersChurned,
		schema.AvgDuration:        &r.AvgDuration,
		schema.AvgSessionDuration: &r.AvgSessionDuration,
		schema.Percentage:         &r.Percentage,
		schema.Users:              &r.Users,
	}
}

// DatasetRecordFromRow converts a dataset row for Parquet export.
// Zero-valued keys are stored as nulls.
func DatasetRecordFromRow(row schema.Row) DatasetRecord {
	var rec DatasetRecord
	rec.Country = optionalString(row.Country)
	rec.GunName = optionalString(row.GunName)
	rec.Level = optionalInt(row.Level)
	rec.SessionRank = optionalInt(row.SessionRank)
	rec.RetentionDays = optionalInt(row.RetentionDays)
	for m, field := range rec.measureFields() {
		if v, ok := row.Measures[m]; ok {
			*field = &v
		}
	}
	return rec
}

// ToRow converts a Parquet record back into a dataset row.
func (r DatasetRecord) ToRow() schema.Row {
	row := schema.Row{Measures: map[schema.Measure]float64{}}
	if r.Country != nil {
		row.Country = *r.Country
	}
	if r.GunName != nil {
		row.GunName = *r.GunName
	}
	if r.Level != nil {
		row.Level = int(*r.Level)
	}
	if r.SessionRank != nil {
		row.SessionRank = int(*r.SessionRank)
	}
	if r.RetentionDays != nil {
		row.RetentionDays = int(*r.RetentionDays)
	}
	for m, field := range r.measureFields() {
		if *field != nil {
			row.Measures[m] = **field
		}
	}
	return row
}

// SummaryRecordsFromSummary converts a report summary for Parquet export.
func SummaryRecordsFromSummary(summary schema.Summary) []SummaryRecord {
	result := make([]SummaryRecord, len(summary.Rows))
	for i, row := range summary.Rows {
		rec := SummaryRecord{Report: string(summary.Report)}
		for _, col := range summary.Columns {
			switch col {
			case schema.CountryCol:
				rec.Country = &row.Country
			case schema.LevelCol:
				rec.Level = ptr(int64(row.Level))
			case schema.SessionRankCol:
				rec.SessionRank = ptr(int64(row.SessionRank))
			case schema.RetentionDaysCol:
				rec.RetentionDays = ptr(int64(row.RetentionDays))
			case schema.GunNameCol:
				rec.GunName = &row.GunName
			case schema.RankCol:
				rec.Rank = ptr(int64(row.Rank))
			case schema.TotalUsersCol:
				rec.TotalUsers = &row.TotalUsers
			case schema.RetentionCountCol:
				rec.RetentionCount = &row.RetentionCount
			case schema.RetentionPercentCol:
				rec.RetentionPercent = &row.RetentionPercent
			case schema.PlayersStartedCol:
				rec.PlayersStarted = &row.PlayersStarted
			case schema.PlayersCompletedCol:
				rec.PlayersCompleted = &row.PlayersCompleted
			case schema.PlayersChurnedCol:
				rec.PlayersChurned = &row.PlayersChurned
			case schema.ChurnRateCol:
				rec.ChurnRate = &row.ChurnRate
			case schema.DurationTimeCol:
				rec.DurationTime = &row.DurationTime
				rec.DurationSeconds = &row.AvgSeconds
			case schema.PopularityCol:
				rec.Popularity = &row.Popularity
			}
		}
		result[i] = rec
	}
	return result
}

// WriteDatasetParquet writes dataset rows to a Parquet file.
func WriteDatasetParquet(rows []schema.Row, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	records := make([]DatasetRecord, len(rows))
	for i, row := range rows {
		records[i] = DatasetRecordFromRow(row)
	}
	return writeRecords(file, records)
}

// ReadDatasetParquet reads all dataset rows from a Parquet file.
func ReadDatasetParquet(inputPath string) ([]schema.Row, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	records, err := readRecords[DatasetRecord](file)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file %s: %w", inputPath, err)
	}
	rows := make([]schema.Row, len(records))
	for i, rec := range records {
		rows[i] = rec.ToRow()
	}
	return rows, nil
}

// WriteSummaryParquet writes the rows of a report summary to w.
func WriteSummaryParquet(w io.Writer, summary schema.Summary) error {
	return writeRecords(w, SummaryRecordsFromSummary(summary))
}

// writeRecords writes records with a schema inferred from the struct tags of T.
func writeRecords[T any](w io.Writer, records []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to flush parquet file: %w", err)
	}
	return nil
}

// readRecords reads every record of a Parquet file.
func readRecords[T any](file *os.File) ([]T, error) {
	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	records := make([]T, reader.NumRows())
	read := 0
	for read < len(records) {
		n, err := reader.Read(records[read:])
		read += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return records[:read], nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(v int) *int64 {
	if v == 0 {
		return nil
	}
	return ptr(int64(v))
}

func ptr[T any](v T) *T {
	return &v
}
