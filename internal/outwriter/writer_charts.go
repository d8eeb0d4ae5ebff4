package outwriter

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/schema"
)

const (
	maxChartLabelWidth = 12
	gaugeWidth         = 20
)

// barGlyphs tell series apart when colors are disabled.
var barGlyphs = []string{"█", "▒", "░", "▓"}

// writeChart draws a categorical chart as terminal bars.
func writeChart(w io.Writer, chart schema.Chart, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(chart.Points) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", chartTitle(chart.Title, cfg.UseColors)); err != nil {
		return err
	}

	series := chart.Series()
	categories := chart.Categories()
	if chart.Kind == schema.HorizontalBarChart && !chart.ReverseCategories {
		// Horizontal bars stack from the bottom up unless reversed
		slices.Reverse(categories)
	}
	labelWidth := chartLabelWidth(categories)
	barWidth := GetMaxBarWidth(cfg, labelWidth)

	var err error
	switch chart.Kind {
	case schema.StackedBarChart:
		err = writeStackedBars(w, chart, categories, series, labelWidth, barWidth, cfg.UseColors, fmtFloat)
	default:
		err = writeGroupedBars(w, chart, categories, series, labelWidth, barWidth, cfg.UseColors, fmtFloat)
	}
	if err != nil {
		return err
	}
	return writeLegend(w, chart, series, cfg.UseColors)
}

// writeGroupedBars draws one bar per (category, series) scaled to the value axis.
func writeGroupedBars(w io.Writer, chart schema.Chart, categories, series []string, labelWidth, barWidth int, useColors bool, fmtFloat func(float64) string) error {
	scale := axisMax(chart)
	for _, category := range categories {
		label := contract.TruncateLabel(category, labelWidth)
		for _, p := range pointsFor(chart, category) {
			cells := scaledCells(p.Value, scale, barWidth)
			bar := contract.Colorize(p.Color, strings.Repeat(glyphFor(series, p.Series, useColors), cells), useColors)
			if _, err := fmt.Fprintf(w, "%*s | %s %s\n", labelWidth, label, bar, fmtFloat(p.Value)); err != nil {
				return err
			}
			label = ""
		}
	}
	return nil
}

// writeStackedBars draws one bar per category with a segment per series.
func writeStackedBars(w io.Writer, chart schema.Chart, categories, series []string, labelWidth, barWidth int, useColors bool, fmtFloat func(float64) string) error {
	scale := axisMax(chart)
	for _, category := range categories {
		var bar strings.Builder
		var values []string
		used := 0
		for _, p := range pointsFor(chart, category) {
			cells := min(scaledCells(p.Value, scale, barWidth), barWidth-used)
			used += cells
			bar.WriteString(contract.Colorize(p.Color, strings.Repeat(glyphFor(series, p.Series, useColors), cells), useColors))
			values = append(values, fmtFloat(p.Value))
		}
		label := contract.TruncateLabel(category, labelWidth)
		if _, err := fmt.Fprintf(w, "%*s | %s %s\n", labelWidth, label, bar.String(), strings.Join(values, " / ")); err != nil {
			return err
		}
	}
	return nil
}

func writeLegend(w io.Writer, chart schema.Chart, series []string, useColors bool) error {
	colors := make(map[string]schema.Color, len(series))
	for _, p := range chart.Points {
		if _, ok := colors[p.Series]; !ok {
			colors[p.Series] = p.Color
		}
	}
	parts := make([]string, 0, len(series))
	for _, s := range series {
		swatch := contract.Colorize(colors[s], glyphFor(series, s, useColors), useColors)
		parts = append(parts, swatch+" "+s)
	}
	_, err := fmt.Fprintf(w, "%s  (%s)\n", strings.Join(parts, "  "), chart.ValueTitle)
	return err
}

// writeGauges draws each gauge as a fixed-width percentage bar, e.g. [##########..........] 50.0%.
func writeGauges(w io.Writer, gauges []schema.Gauge, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(gauges) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", chartTitle("Total Retention", cfg.UseColors)); err != nil {
		return err
	}
	labels := make([]string, len(gauges))
	for i, g := range gauges {
		labels[i] = g.Label
	}
	labelWidth := chartLabelWidth(labels)
	for _, g := range gauges {
		if _, err := fmt.Fprintf(w, "%-*s %s %s%%\n", labelWidth, g.Label, gaugeBar(g.Value, cfg.UseColors), fmtFloat(g.Value)); err != nil {
			return err
		}
	}
	return nil
}

func gaugeBar(value float64, useColors bool) string {
	filled := scaledCells(value, 100, gaugeWidth)
	done := contract.Colorize(schema.RetainedColor, strings.Repeat("#", filled), useColors)
	return "[" + done + strings.Repeat(".", gaugeWidth-filled) + "]"
}

func chartTitle(title string, useColors bool) string {
	if !useColors {
		return title
	}
	return contract.HeaderColor.Sprint(title)
}

// scaledCells maps a value onto [0, width] cells of a bar whose full length is scale.
func scaledCells(value, scale float64, width int) int {
	if scale <= 0 || value <= 0 || math.IsNaN(value) {
		return 0
	}
	cells := int(math.Round(value / scale * float64(width)))
	return min(max(cells, 0), width)
}

// axisMax is the value that fills a whole bar: the fixed axis maximum, or the largest value.
func axisMax(chart schema.Chart) float64 {
	if chart.ValueRange != nil && chart.ValueRange.Max > 0 {
		return chart.ValueRange.Max
	}
	largest := 0.0
	for _, p := range chart.Points {
		largest = max(largest, p.Value)
	}
	return largest
}

func chartLabelWidth(labels []string) int {
	width := 1
	for _, l := range labels {
		width = max(width, len([]rune(l)))
	}
	return min(width, maxChartLabelWidth)
}

func pointsFor(chart schema.Chart, category string) []schema.Point {
	var out []schema.Point
	for _, p := range chart.Points {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// glyphFor returns the bar glyph of a series. With colors on, every series uses
// the solid block and is told apart by color.
func glyphFor(series []string, name string, useColors bool) string {
	if useColors {
		return barGlyphs[0]
	}
	idx := max(slices.Index(series, name), 0)
	return barGlyphs[idx%len(barGlyphs)]
}
