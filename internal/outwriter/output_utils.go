package outwriter

import (
	"fmt"
	"strings"

	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/schema"
)

// percentColumns are shown with a percent sign in text tables.
var percentColumns = map[schema.Column]schema.Color{
	schema.RetentionPercentCol: schema.RetainedColor,
	schema.ChurnRateCol:        schema.LostColor,
	schema.PopularityCol:       "",
}

// rangeLabels names what the selection range bounds for each ranged report.
var rangeLabels = map[schema.ReportName]string{
	schema.LoserateReport:        "levels",
	schema.PlayersLeftReport:     "levels",
	schema.LevelDurationReport:   "levels",
	schema.SessionDurationReport: "sessions",
	schema.GunPopularityReport:   "levels",
}

// columnTitle turns a column name into a table header, e.g. "churn_rate" -> "Churn Rate".
func columnTitle(c schema.Column) string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// formatCell renders one summary value for machine-readable text formats.
func formatCell(row schema.SummaryRow, c schema.Column, fmtFloat func(float64) string, intFmt string) string {
	switch v := row.Value(c).(type) {
	case string:
		return v
	case int:
		return fmt.Sprintf(intFmt, v)
	case int64:
		return fmt.Sprintf(intFmt, v)
	case float64:
		return fmtFloat(v)
	default:
		return ""
	}
}

// formatTableCell renders one summary value for the text table.
func formatTableCell(row schema.SummaryRow, c schema.Column, fmtFloat func(float64) string, intFmt string, useColors bool) string {
	text := formatCell(row, c, fmtFloat, intFmt)
	color, isPercent := percentColumns[c]
	if !isPercent {
		return text
	}
	text += "%"
	if color == "" {
		return text
	}
	return contract.Colorize(color, text, useColors)
}

// reportEmoji returns the header emoji of a report section.
func reportEmoji(report schema.ReportName) string {
	switch report {
	case schema.RetentionReport:
		return "🔁"
	case schema.LoserateReport:
		return "💀"
	case schema.PlayersLeftReport:
		return "🚪"
	case schema.LevelDurationReport:
		return "⏱️ "
	case schema.SessionDurationReport:
		return "⌛"
	case schema.GunPopularityReport:
		return "🔫"
	default:
		return "📊"
	}
}

// selectionSummary describes the filter values a section was rendered with.
func selectionSummary(report schema.ReportName, sel schema.Selection) string {
	countries := sel.Countries.String()
	if countries == "" {
		countries = "none"
	}
	parts := []string{"countries: " + countries}
	if label, ok := rangeLabels[report]; ok {
		parts = append(parts, fmt.Sprintf("%s: %d-%d", label, sel.Range.Min, sel.Range.Max))
	}
	if report == schema.GunPopularityReport && sel.Rating > 0 {
		parts = append(parts, "rating: "+sel.Rating.String())
	}
	return strings.Join(parts, ", ")
}

// sectionHeader is the first line of a section in text output.
func sectionHeader(p schema.Presentation, useEmojis bool) string {
	header := fmt.Sprintf("%s (%s)", p.Title, selectionSummary(p.Summary.Report, p.Selection))
	if useEmojis {
		return reportEmoji(p.Summary.Report) + " " + header
	}
	return header
}
