package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/huangsam/gamepulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryRecords(t *testing.T) {
	summary := schema.Summary{
		Report:  schema.LoserateReport,
		Columns: []schema.Column{schema.LevelCol, schema.ChurnRateCol},
		Rows: []schema.SummaryRow{
			{Level: 1, ChurnRate: 35, PlayersStarted: 1000},
			{Level: 2, ChurnRate: 10},
		},
	}

	records := summary.Records()
	require.Len(t, records, 2)
	assert.Equal(t, map[string]any{"level": 1, "churn_rate": 35.0}, records[0])
	assert.NotContains(t, records[0], "players_started", "only listed columns are exported")
}

func TestChartSeriesAndCategories(t *testing.T) {
	chart := schema.Chart{Points: []schema.Point{
		{Category: "1", Series: "Lose Rate", Value: 30},
		{Category: "1", Series: "Retention Rate", Value: 70},
		{Category: "2", Series: "Lose Rate", Value: 10},
		{Category: "2", Series: "Retention Rate", Value: 90},
	}}
	assert.Equal(t, []string{"Lose Rate", "Retention Rate"}, chart.Series())
	assert.Equal(t, []string{"1", "2"}, chart.Categories())
}

func TestPresentationToJSON(t *testing.T) {
	p := schema.Presentation{
		Title: "Lose Rate",
		Selection: schema.Selection{
			Countries: schema.SpecificCountries("US"),
			Range:     schema.NewLevelRange(1, 5),
		},
		Summary: schema.Summary{
			Report:  schema.LoserateReport,
			Columns: []schema.Column{schema.LevelCol},
			Rows:    []schema.SummaryRow{{Level: 3}},
		},
	}
	assert.False(t, p.Empty())

	data, err := json.Marshal(p.ToJSON())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"report": "loserate",
		"title": "Lose Rate",
		"selection": {"countries": "US", "range": {"min": 1, "max": 5}},
		"columns": ["level"],
		"rows": [{"level": 3}]
	}`, string(data))
}

func TestSummaryRowValueUnknownColumn(t *testing.T) {
	assert.Nil(t, schema.SummaryRow{}.Value(schema.Column("nope")))
}
