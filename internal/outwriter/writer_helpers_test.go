package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/gamepulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{"precision 1", 1, 35.04, "35.0"},
		{"precision 2", 2, 3.14159, "3.14"},
		{"negative value", 2, -42.567, "-42.57"},
		{"rounds half up", 1, 66.66, "66.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, intFmt := createFormatters(tt.precision)
			assert.Equal(t, tt.expected, fmtFloat(tt.value))
			assert.Equal(t, "%d", intFmt)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]any{"report": "loserate", "rows": 2}))
	assert.Equal(t, "{\n  \"report\": \"loserate\",\n  \"rows\": 2\n}\n", buf.String())
}

func TestWriteJSONError(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		rows     [][]string
		expected string
	}{
		{
			name:     "rows",
			header:   []string{"level", "churn_rate"},
			rows:     [][]string{{"1", "35.0"}, {"2", "7.7"}},
			expected: "level,churn_rate\n1,35.0\n2,7.7\n",
		},
		{
			name:     "empty rows",
			header:   []string{"level", "duration_time"},
			expected: "level,duration_time\n",
		},
		{
			name:     "values with commas",
			header:   []string{"gun_name"},
			rows:     [][]string{{"Rifle, scoped"}},
			expected: "gun_name\n\"Rifle, scoped\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeCSVWithHeader(&buf, tt.header, func(w *csv.Writer) error {
				for _, row := range tt.rows {
					if err := w.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteCSVWithHeaderError(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"col"}, func(_ *csv.Writer) error {
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFile(t *testing.T) {
	t.Run("actual file", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "report.json")
		err := writeWithFile(tmpFile, func(w io.Writer) error {
			return writeJSON(w, map[string]int{"rows": 3})
		}, "Wrote JSON")
		require.NoError(t, err)

		content, err := os.ReadFile(tmpFile)
		require.NoError(t, err)
		var decoded map[string]int
		require.NoError(t, json.Unmarshal(content, &decoded))
		assert.Equal(t, 3, decoded["rows"])
	})

	t.Run("writer error", func(t *testing.T) {
		err := writeWithFile(filepath.Join(t.TempDir(), "out.txt"), func(_ io.Writer) error {
			return assert.AnError
		}, "Wrote text")
		assert.Equal(t, assert.AnError, err)
	})

	t.Run("invalid path", func(t *testing.T) {
		err := writeWithFile("/nonexistent/path/file.txt", func(_ io.Writer) error {
			return nil
		}, "Wrote text")
		assert.Error(t, err)
	})
}

func TestSectionOutputFile(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "pulse_loserate.parquet"),
		sectionOutputFile(filepath.Join("out", "pulse.parquet"), schema.LoserateReport))
	assert.Equal(t, "pulse_guns", sectionOutputFile("pulse", schema.GunPopularityReport))
	assert.Empty(t, sectionOutputFile("", schema.RetentionReport))
}
