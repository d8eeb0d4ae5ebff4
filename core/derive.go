package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/huangsam/gamepulse/core/agg"
	"github.com/huangsam/gamepulse/core/algo"
	"github.com/huangsam/gamepulse/schema"
)

// FormatHMS renders seconds as HH:MM:SS using integer division. Hours are
// unbounded and fractional seconds are truncated.
func FormatHMS(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	s := int64(seconds)
	h := s / 3600
	m := (s % 3600) / 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s%60)
}

// retentionPercent is retention_count / total_users * 100, or 0 without users.
func retentionPercent(retained, total float64) float64 {
	if total == 0 {
		return 0
	}
	return retained / total * 100
}

// churnRate is 100 - completed / started * 100, or 0 without starts.
func churnRate(started, completed float64) float64 {
	if started == 0 {
		return 0
	}
	return 100 - (completed / started * 100)
}

// summaryKeys copies a group key onto a summary row.
func summaryKeys(g *agg.Group) schema.SummaryRow {
	return schema.SummaryRow{
		Country:       g.Key.Country,
		Level:         g.Key.Level,
		SessionRank:   g.Key.SessionRank,
		RetentionDays: g.Key.RetentionDays,
		GunName:       g.Key.GunName,
		Members:       g.Members,
	}
}

// deriveRow finalizes one group for every derivation except top-k.
func deriveRow(g *agg.Group, spec schema.MetricSpec) schema.SummaryRow {
	out := summaryKeys(g)
	switch spec.Derive {
	case schema.RetentionPercentDerivation:
		retained, total := g.Sum(schema.RetentionCount), g.Sum(schema.TotalUsers)
		out.RetentionCount = int64(retained)
		out.TotalUsers = int64(total)
		out.RetentionPercent = retentionPercent(retained, total)
	case schema.ChurnRateDerivation:
		started, completed := g.Sum(schema.PlayersStarted), g.Sum(schema.PlayersCompleted)
		out.PlayersStarted = int64(started)
		out.PlayersCompleted = int64(completed)
		out.ChurnRate = churnRate(started, completed)
	case schema.PlayersChurnedDerivation:
		out.PlayersStarted = int64(g.Sum(schema.PlayersStarted))
		out.PlayersCompleted = int64(g.Sum(schema.PlayersCompleted))
		out.PlayersChurned = out.PlayersStarted - out.PlayersCompleted
	case schema.DurationTimeDerivation:
		out.AvgSeconds = g.Mean(durationMeasure(spec))
		out.DurationTime = FormatHMS(out.AvgSeconds)
	}
	return out
}

// deriveTopK ranks the (level, gun) groups of each level by mean percentage
// and keeps ranks 2..k+1. Groups arrive sorted by level, then gun name.
func deriveTopK(groups []*agg.Group, depth schema.RatingDepth) []schema.SummaryRow {
	var out []schema.SummaryRow
	for start := 0; start < len(groups); {
		end := start
		for end < len(groups) && groups[end].Key.Level == groups[start].Key.Level {
			end++
		}

		level := make([]schema.SummaryRow, 0, end-start)
		for _, g := range groups[start:end] {
			r := summaryKeys(g)
			r.Popularity = g.Mean(schema.Percentage)
			level = append(level, r)
		}
		algo.RankDescending(level,
			func(r schema.SummaryRow) float64 { return r.Popularity },
			func(a, b schema.SummaryRow) int { return strings.Compare(a.GunName, b.GunName) })
		for i := range level {
			level[i].Rank = i + 1
		}
		out = append(out, algo.TopAfterLeader(level, depth.K())...)

		start = end
	}
	return out
}
