package core

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/gamepulse/core/agg"
	"github.com/huangsam/gamepulse/core/algo"
	"github.com/huangsam/gamepulse/schema"
)

// Series labels used by the chart-bearing reports.
const (
	RetentionPercentSeries = "Retention Percent"
	LoseRateSeries         = "Lose Rate"
	RetentionRateSeries    = "Retention Rate"
	PlayersStartedSeries   = "Players Started"
	PlayersChurnedSeries   = "Players Churned"
)

// GaugeDays are the retention days shown as total gauges.
var GaugeDays = []int{1, 7}

var percentAxis = &schema.AxisRange{Min: 0, Max: 100}

// buildCharts returns the categorical charts of a report, or nil for table-only reports.
func buildCharts(spec schema.MetricSpec, rows []schema.SummaryRow) []schema.Chart {
	if len(rows) == 0 {
		return nil
	}
	switch spec.Report {
	case schema.RetentionReport:
		return retentionCharts(rows)
	case schema.LoserateReport:
		return []schema.Chart{loserateChart(rows)}
	case schema.PlayersLeftReport:
		return []schema.Chart{playersLeftChart(rows)}
	default:
		return nil
	}
}

// retentionCharts plots retention percent by country for each gauge day,
// highest retention first.
func retentionCharts(rows []schema.SummaryRow) []schema.Chart {
	var charts []schema.Chart
	for _, day := range GaugeDays {
		var dayRows []schema.SummaryRow
		for _, r := range rows {
			if r.RetentionDays == day {
				dayRows = append(dayRows, r)
			}
		}
		if len(dayRows) == 0 {
			continue
		}
		algo.RankDescending(dayRows,
			func(r schema.SummaryRow) float64 { return r.RetentionPercent },
			func(a, b schema.SummaryRow) int { return strings.Compare(a.Country, b.Country) })

		chart := schema.Chart{
			Title:         fmt.Sprintf("Day %d Retention by Country", day),
			Kind:          schema.BarChart,
			CategoryTitle: "Country",
			ValueTitle:    "Retention Percent",
			ValueRange:    percentAxis,
		}
		for _, r := range dayRows {
			chart.Points = append(chart.Points, schema.Point{
				Category: r.Country,
				Value:    r.RetentionPercent,
				Series:   RetentionPercentSeries,
				Color:    schema.RetainedColor,
			})
		}
		charts = append(charts, chart)
	}
	return charts
}

// loserateChart stacks the lose rate and its complement per level.
func loserateChart(rows []schema.SummaryRow) schema.Chart {
	chart := schema.Chart{
		Title:         "Lose Rate by Level",
		Kind:          schema.StackedBarChart,
		CategoryTitle: "Level",
		ValueTitle:    "Rate",
		ValueRange:    percentAxis,
	}
	for _, r := range rows {
		level := strconv.Itoa(r.Level)
		chart.Points = append(chart.Points,
			schema.Point{Category: level, Value: r.ChurnRate, Series: LoseRateSeries, Color: schema.LostColor},
			schema.Point{Category: level, Value: 100 - r.ChurnRate, Series: RetentionRateSeries, Color: schema.RetainedColor},
		)
	}
	return chart
}

// playersLeftChart compares started and churned players per level.
func playersLeftChart(rows []schema.SummaryRow) schema.Chart {
	chart := schema.Chart{
		Title:             "Players Started vs Churned by Level",
		Kind:              schema.HorizontalBarChart,
		CategoryTitle:     "Level",
		ValueTitle:        "Players",
		ReverseCategories: true,
	}
	for _, r := range rows {
		level := strconv.Itoa(r.Level)
		chart.Points = append(chart.Points,
			schema.Point{Category: level, Value: float64(r.PlayersStarted), Series: PlayersStartedSeries, Color: schema.RetainedColor},
			schema.Point{Category: level, Value: float64(r.PlayersChurned), Series: PlayersChurnedSeries, Color: schema.LostColor},
		)
	}
	return chart
}

// buildRetentionGauges computes the total retention of each gauge day over the
// whole dataset, independent of the country selection.
func buildRetentionGauges(rows []schema.Row) []schema.Gauge {
	groups := agg.GroupRows(rows, []schema.KeyField{schema.RetentionDaysKey},
		[]schema.Measure{schema.RetentionCount, schema.TotalUsers}, nil)

	gauges := make([]schema.Gauge, 0, len(GaugeDays))
	for _, day := range GaugeDays {
		g := schema.Gauge{Label: fmt.Sprintf("Day %d", day)}
		idx := slices.IndexFunc(groups, func(grp *agg.Group) bool { return grp.Key.RetentionDays == day })
		if idx >= 0 {
			pct := retentionPercent(groups[idx].Sum(schema.RetentionCount), groups[idx].Sum(schema.TotalUsers))
			g.Value = min(max(pct, 0), 100)
		}
		gauges = append(gauges, g)
	}
	return gauges
}
