package outwriter

import (
	"testing"

	"github.com/huangsam/gamepulse/schema"
	"github.com/stretchr/testify/assert"
)

func TestColumnTitle(t *testing.T) {
	assert.Equal(t, "Churn Rate", columnTitle(schema.ChurnRateCol))
	assert.Equal(t, "Level", columnTitle(schema.LevelCol))
	assert.Equal(t, "Retention Days", columnTitle(schema.RetentionDaysCol))
}

func TestFormatCell(t *testing.T) {
	fmtFloat, intFmt := createFormatters(1)
	row := schema.SummaryRow{
		Level:          3,
		PlayersStarted: 1000,
		ChurnRate:      35,
		DurationTime:   "01:01:01",
		GunName:        "Rifle",
	}

	assert.Equal(t, "3", formatCell(row, schema.LevelCol, fmtFloat, intFmt))
	assert.Equal(t, "1000", formatCell(row, schema.PlayersStartedCol, fmtFloat, intFmt))
	assert.Equal(t, "35.0", formatCell(row, schema.ChurnRateCol, fmtFloat, intFmt))
	assert.Equal(t, "01:01:01", formatCell(row, schema.DurationTimeCol, fmtFloat, intFmt))
	assert.Equal(t, "Rifle", formatCell(row, schema.GunNameCol, fmtFloat, intFmt))
	assert.Empty(t, formatCell(row, schema.Column("unknown"), fmtFloat, intFmt))
}

func TestFormatTableCell(t *testing.T) {
	fmtFloat, intFmt := createFormatters(1)
	row := schema.SummaryRow{Level: 2, ChurnRate: 7.69, Popularity: 30, RetentionPercent: 42}

	assert.Equal(t, "2", formatTableCell(row, schema.LevelCol, fmtFloat, intFmt, false))
	assert.Equal(t, "7.7%", formatTableCell(row, schema.ChurnRateCol, fmtFloat, intFmt, false))
	assert.Equal(t, "30.0%", formatTableCell(row, schema.PopularityCol, fmtFloat, intFmt, false))
	assert.Equal(t, "42.0%", formatTableCell(row, schema.RetentionPercentCol, fmtFloat, intFmt, false))
}

func TestSelectionSummary(t *testing.T) {
	tests := []struct {
		name     string
		report   schema.ReportName
		sel      schema.Selection
		expected string
	}{
		{
			name:     "retention has no range",
			report:   schema.RetentionReport,
			sel:      schema.DefaultSelection(schema.RetentionReport),
			expected: "countries: BR,IN,MX,RU,US",
		},
		{
			name:     "loserate levels",
			report:   schema.LoserateReport,
			sel:      schema.DefaultSelection(schema.LoserateReport),
			expected: "countries: all, levels: 1-10",
		},
		{
			name:     "session ranks",
			report:   schema.SessionDurationReport,
			sel:      schema.Selection{Countries: schema.SpecificCountries("us"), Range: schema.NewLevelRange(2, 5)},
			expected: "countries: US, sessions: 2-5",
		},
		{
			name:     "guns rating",
			report:   schema.GunPopularityReport,
			sel:      schema.DefaultSelection(schema.GunPopularityReport),
			expected: "countries: all, levels: 1-10, rating: Top-3",
		},
		{
			name:     "no country",
			report:   schema.LevelDurationReport,
			sel:      schema.Selection{Countries: schema.SpecificCountries(), Range: schema.DefaultLevelRange()},
			expected: "countries: none, levels: 1-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, selectionSummary(tt.report, tt.sel))
		})
	}
}

func TestSectionHeader(t *testing.T) {
	p := schema.Presentation{
		Title:     "Lose Rate",
		Selection: schema.DefaultSelection(schema.LoserateReport),
		Summary:   schema.Summary{Report: schema.LoserateReport},
	}
	assert.Equal(t, "Lose Rate (countries: all, levels: 1-10)", sectionHeader(p, false))
	assert.Equal(t, "💀 Lose Rate (countries: all, levels: 1-10)", sectionHeader(p, true))
}
