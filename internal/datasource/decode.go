package datasource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/gamepulse/schema"
)

// absentValues are cell values that mean "no value".
var absentValues = map[string]struct{}{
	"":     {},
	"nan":  {},
	"null": {},
	"none": {},
	"na":   {},
}

// indexColumns are leading columns written by dataframe exports.
var indexColumns = map[string]struct{}{
	"":           {},
	"index":      {},
	"unnamed: 0": {},
}

var keyColumns = map[string]schema.KeyField{
	string(schema.CountryKey):       schema.CountryKey,
	string(schema.LevelKey):         schema.LevelKey,
	string(schema.SessionRankKey):   schema.SessionRankKey,
	string(schema.RetentionDaysKey): schema.RetentionDaysKey,
	string(schema.GunNameKey):       schema.GunNameKey,
}

var measureColumns = map[string]schema.Measure{
	string(schema.RetentionCount):     schema.RetentionCount,
	string(schema.TotalUsers):         schema.TotalUsers,
	string(schema.PlayersStarted):     schema.PlayersStarted,
	string(schema.PlayersCompleted):   schema.PlayersCompleted,
	string(schema.PlayersChurned):     schema.PlayersChurned,
	string(schema.AvgDuration):        schema.AvgDuration,
	string(schema.AvgSessionDuration): schema.AvgSessionDuration,
	string(schema.Percentage):         schema.Percentage,
	string(schema.Users):              schema.Users,
}

type cellSetter func(row *schema.Row, value string) error

// recordDecoder turns positional records into rows using the column header.
// Columns it does not know are ignored.
type recordDecoder struct {
	setters []cellSetter
}

func newRecordDecoder(header []string) (*recordDecoder, error) {
	if len(header) == 0 {
		return nil, errors.New("empty header")
	}
	d := &recordDecoder{setters: make([]cellSetter, len(header))}
	seen := make(map[string]bool, len(header))
	for i, raw := range header {
		name := normalizeColumn(raw, i == 0)
		if i == 0 {
			if _, ok := indexColumns[name]; ok {
				continue
			}
		}
		_, isKey := keyColumns[name]
		_, isMeasure := measureColumns[name]
		if !isKey && !isMeasure {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", raw)
		}
		seen[name] = true

		if key, ok := keyColumns[name]; ok {
			d.setters[i] = keySetter(key)
			continue
		}
		if m, ok := measureColumns[name]; ok {
			d.setters[i] = measureSetter(m)
		}
	}
	return d, nil
}

// decode converts one record. Short records leave the missing columns unset.
func (d *recordDecoder) decode(record []string) (schema.Row, error) {
	row := schema.Row{Measures: make(map[schema.Measure]float64, len(record))}
	for i, value := range record {
		if i >= len(d.setters) || d.setters[i] == nil {
			continue
		}
		if err := d.setters[i](&row, value); err != nil {
			return schema.Row{}, err
		}
	}
	fillPlayersCompleted(&row)
	return row, nil
}

// fillPlayersCompleted derives completions for extracts that only carry
// precomputed churn.
func fillPlayersCompleted(row *schema.Row) {
	if _, ok := row.Measures[schema.PlayersCompleted]; ok {
		return
	}
	started, hasStarted := row.Measures[schema.PlayersStarted]
	churned, hasChurned := row.Measures[schema.PlayersChurned]
	if hasStarted && hasChurned {
		row.Measures[schema.PlayersCompleted] = started - churned
	}
}

func keySetter(key schema.KeyField) cellSetter {
	switch key {
	case schema.CountryKey:
		return func(row *schema.Row, value string) error {
			if !isAbsent(value) {
				row.Country = strings.ToUpper(strings.TrimSpace(value))
			}
			return nil
		}
	case schema.GunNameKey:
		return func(row *schema.Row, value string) error {
			if !isAbsent(value) {
				row.GunName = strings.TrimSpace(value)
			}
			return nil
		}
	default:
		return func(row *schema.Row, value string) error {
			n, err := parseIntCell(value)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", key, value, err)
			}
			switch key {
			case schema.LevelKey:
				row.Level = n
			case schema.SessionRankKey:
				row.SessionRank = n
			case schema.RetentionDaysKey:
				row.RetentionDays = n
			}
			return nil
		}
	}
}

func measureSetter(m schema.Measure) cellSetter {
	return func(row *schema.Row, value string) error {
		if isAbsent(value) {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return fmt.Errorf("invalid %s %q", m, value)
		}
		row.Measures[m] = f
		return nil
	}
}

// parseIntCell accepts integer text and integral float text such as "3.0".
func parseIntCell(value string) (int, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("not an integer")
	}
	return int(f), nil
}

func isAbsent(value string) bool {
	_, ok := absentValues[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

func normalizeColumn(name string, first bool) string {
	if first {
		name = strings.TrimPrefix(name, "\ufeff")
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// decodeCSV reads a whole CSV extract. An empty input yields no rows.
func decodeCSV(r io.Reader) ([]schema.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	dec, err := newRecordDecoder(header)
	if err != nil {
		return nil, err
	}

	var rows []schema.Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		row, err := dec.decode(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
