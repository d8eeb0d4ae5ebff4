package core

import (
	"slices"

	"github.com/huangsam/gamepulse/core/agg"
	"github.com/huangsam/gamepulse/schema"
)

// Present runs the filter, group, aggregate, derive and format pipeline of one
// report section. It is a pure function of its inputs: the dataset is never
// mutated and nothing is retained between calls. An empty summary is a valid
// result, not an error.
func Present(ds schema.Dataset, sel schema.Selection, spec schema.MetricSpec) schema.Presentation {
	filtered := filterRows(ds.Rows, sel, spec)
	groups := agg.GroupRows(filtered, spec.GroupKeysFor(sel.Countries), spec.Sums, spec.Means)

	var rows []schema.SummaryRow
	if spec.Derive == schema.TopKDerivation {
		rows = deriveTopK(groups, sel.Rating)
	} else {
		rows = make([]schema.SummaryRow, 0, len(groups))
		for _, g := range groups {
			rows = append(rows, deriveRow(g, spec))
		}
	}

	p := schema.Presentation{
		Title:     spec.Title,
		Selection: sel,
		Summary: schema.Summary{
			Report:  spec.Report,
			Columns: slices.Clone(spec.ColumnsFor(sel.Countries)),
			Rows:    rows,
		},
	}
	p.Charts = buildCharts(spec, rows)
	if spec.Report == schema.RetentionReport {
		p.Gauges = buildRetentionGauges(ds.Rows)
	}
	return p
}

// filterRows keeps the rows that pass the country filter, the exclusion
// filter and the range filter, in that order.
func filterRows(rows []schema.Row, sel schema.Selection, spec schema.MetricSpec) []schema.Row {
	var out []schema.Row
	for _, r := range rows {
		if !sel.Countries.Matches(r.Country) {
			continue
		}
		if len(spec.ExcludeLevels) > 0 && slices.Contains(spec.ExcludeLevels, r.Level) {
			continue
		}
		if spec.RangeKey != "" && !sel.Range.Contains(r.Key(spec.RangeKey)) {
			continue
		}
		out = append(out, r)
	}
	return out
}
