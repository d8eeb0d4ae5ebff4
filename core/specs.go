package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/gamepulse/schema"
)

// ErrUnknownReport is returned for a report name outside schema.AllReports.
var ErrUnknownReport = errors.New("unknown report")

// reportSpecs holds the presenter parameters of every report section.
var reportSpecs = map[schema.ReportName]schema.MetricSpec{
	schema.RetentionReport: {
		Report:    schema.RetentionReport,
		Title:     "Retention",
		GroupKeys: []schema.KeyField{schema.RetentionDaysKey, schema.CountryKey},
		Sums:      []schema.Measure{schema.RetentionCount, schema.TotalUsers},
		Derive:    schema.RetentionPercentDerivation,
		Columns: []schema.Column{
			schema.RetentionDaysCol, schema.CountryCol,
			schema.TotalUsersCol, schema.RetentionCountCol, schema.RetentionPercentCol,
		},
	},
	schema.LoserateReport: {
		Report:        schema.LoserateReport,
		Title:         "Lose Rate",
		RangeKey:      schema.LevelKey,
		ExcludeLevels: schema.SentinelLevels,
		GroupKeys:     []schema.KeyField{schema.LevelKey},
		Sums:          []schema.Measure{schema.PlayersStarted, schema.PlayersCompleted},
		Derive:        schema.ChurnRateDerivation,
		Columns: []schema.Column{
			schema.LevelCol, schema.PlayersStartedCol, schema.PlayersCompletedCol, schema.ChurnRateCol,
		},
	},
	schema.PlayersLeftReport: {
		Report:    schema.PlayersLeftReport,
		Title:     "Players Left",
		RangeKey:  schema.LevelKey,
		GroupKeys: []schema.KeyField{schema.LevelKey},
		Sums:      []schema.Measure{schema.PlayersStarted, schema.PlayersCompleted},
		Derive:    schema.PlayersChurnedDerivation,
		Columns: []schema.Column{
			schema.LevelCol, schema.PlayersStartedCol, schema.PlayersCompletedCol, schema.PlayersChurnedCol,
		},
	},
	schema.LevelDurationReport: {
		Report:           schema.LevelDurationReport,
		Title:            "Average Level Duration",
		RangeKey:         schema.LevelKey,
		GroupKeys:        []schema.KeyField{schema.LevelKey},
		CountryGroupKeys: []schema.KeyField{schema.CountryKey, schema.LevelKey},
		Means:            []schema.Measure{schema.AvgDuration},
		Derive:           schema.DurationTimeDerivation,
		Columns:          []schema.Column{schema.LevelCol, schema.DurationTimeCol},
		CountryColumns:   []schema.Column{schema.CountryCol, schema.LevelCol, schema.DurationTimeCol},
	},
	schema.SessionDurationReport: {
		Report:           schema.SessionDurationReport,
		Title:            "Average Session Duration",
		RangeKey:         schema.SessionRankKey,
		GroupKeys:        []schema.KeyField{schema.SessionRankKey},
		CountryGroupKeys: []schema.KeyField{schema.CountryKey, schema.SessionRankKey},
		Means:            []schema.Measure{schema.AvgSessionDuration},
		Derive:           schema.DurationTimeDerivation,
		Columns:          []schema.Column{schema.SessionRankCol, schema.DurationTimeCol},
		CountryColumns:   []schema.Column{schema.CountryCol, schema.SessionRankCol, schema.DurationTimeCol},
	},
	schema.GunPopularityReport: {
		Report:    schema.GunPopularityReport,
		Title:     "Gun Popularity",
		RangeKey:  schema.LevelKey,
		GroupKeys: []schema.KeyField{schema.LevelKey, schema.GunNameKey},
		Means:     []schema.Measure{schema.Percentage},
		Derive:    schema.TopKDerivation,
		Columns:   []schema.Column{schema.LevelCol, schema.RankCol, schema.GunNameCol, schema.PopularityCol},
	},
}

// SpecFor returns the metric spec of a report.
func SpecFor(report schema.ReportName) (schema.MetricSpec, error) {
	spec, ok := reportSpecs[report]
	if !ok {
		return schema.MetricSpec{}, fmt.Errorf("%w: %s", ErrUnknownReport, report)
	}
	return spec, nil
}

// durationMeasure is the averaged seconds a duration report formats.
func durationMeasure(spec schema.MetricSpec) schema.Measure {
	if len(spec.Means) == 0 {
		return schema.AvgDuration
	}
	return spec.Means[0]
}

// formulaFor renders the derivation of a report for the catalog.
func formulaFor(spec schema.MetricSpec) string {
	switch spec.Derive {
	case schema.RetentionPercentDerivation:
		return "retention_percent = retention_count / total_users * 100"
	case schema.ChurnRateDerivation:
		return "churn_rate = 100 - (players_completed / players_started * 100)"
	case schema.PlayersChurnedDerivation:
		return "players_churned = players_started - players_completed"
	case schema.DurationTimeDerivation:
		return fmt.Sprintf("duration_time = format_hms(mean(%s))", durationMeasure(spec))
	case schema.TopKDerivation:
		return "popularity = mean(percentage); per level keep ranks 2..k+1 by popularity desc"
	default:
		return string(spec.Derive)
	}
}

// chartFor names the chart kinds a report renders for the catalog.
func chartFor(report schema.ReportName) string {
	switch report {
	case schema.RetentionReport:
		return "gauges (day 1, day 7) + bar per day by country"
	case schema.LoserateReport:
		return string(schema.StackedBarChart)
	case schema.PlayersLeftReport:
		return string(schema.HorizontalBarChart)
	default:
		return "table"
	}
}

// BuildReportCatalog describes every report for the catalog command.
func BuildReportCatalog() schema.ReportCatalog {
	defs := make([]schema.ReportDefinition, 0, len(schema.AllReports))
	for _, report := range schema.AllReports {
		spec := reportSpecs[report]
		groupBy := keyNames(spec.GroupKeys)
		if len(spec.CountryGroupKeys) > 0 {
			groupBy = append(groupBy, "("+strings.Join(keyNames(spec.CountryGroupKeys), ",")+" when countries are selected)")
		}
		defs = append(defs, schema.ReportDefinition{
			Name:     string(report),
			Title:    spec.Title,
			Dataset:  schema.DatasetName[report],
			RangeKey: string(spec.RangeKey),
			GroupBy:  groupBy,
			Sums:     measureNames(spec.Sums),
			Means:    measureNames(spec.Means),
			Formula:  formulaFor(spec),
			Chart:    chartFor(report),
		})
	}
	return schema.ReportCatalog{
		Title:       "Gamepulse Reports",
		Description: "Every report = country filter -> range filter -> group -> sum/mean -> derive",
		Reports:     defs,
	}
}

func keyNames(keys []schema.KeyField) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

func measureNames(measures []schema.Measure) []string {
	if len(measures) == 0 {
		return nil
	}
	out := make([]string, len(measures))
	for i, m := range measures {
		out[i] = string(m)
	}
	return out
}
