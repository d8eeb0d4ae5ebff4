// Package agg has grouping and aggregation logic for dataset rows.
package agg

import (
	"cmp"
	"slices"

	"github.com/huangsam/gamepulse/schema"
)

// Key identifies a group. Only the fields named by the grouping key are set.
type Key struct {
	Country       string
	Level         int
	SessionRank   int
	RetentionDays int
	GunName       string
}

// KeyOf projects a row onto the given key fields.
func KeyOf(row schema.Row, fields []schema.KeyField) Key {
	var k Key
	for _, f := range fields {
		switch f {
		case schema.CountryKey:
			k.Country = row.Country
		case schema.LevelKey:
			k.Level = row.Level
		case schema.SessionRankKey:
			k.SessionRank = row.SessionRank
		case schema.RetentionDaysKey:
			k.RetentionDays = row.RetentionDays
		case schema.GunNameKey:
			k.GunName = row.GunName
		}
	}
	return k
}

// compareKeys orders two keys field by field in grouping-key order.
func compareKeys(a, b Key, fields []schema.KeyField) int {
	for _, f := range fields {
		var c int
		switch f {
		case schema.CountryKey:
			c = cmp.Compare(a.Country, b.Country)
		case schema.LevelKey:
			c = cmp.Compare(a.Level, b.Level)
		case schema.SessionRankKey:
			c = cmp.Compare(a.SessionRank, b.SessionRank)
		case schema.RetentionDaysKey:
			c = cmp.Compare(a.RetentionDays, b.RetentionDays)
		case schema.GunNameKey:
			c = cmp.Compare(a.GunName, b.GunName)
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// Group accumulates the rows sharing one key.
type Group struct {
	Key     Key
	Members int

	sums       map[schema.Measure]float64
	meanTotals map[schema.Measure]float64
	meanCounts map[schema.Measure]int
}

// Sum returns the total of a summed measure.
func (g *Group) Sum(m schema.Measure) float64 {
	return g.sums[m]
}

// Mean returns the average of a measure over the members that carry it.
func (g *Group) Mean(m schema.Measure) float64 {
	n := g.meanCounts[m]
	if n == 0 {
		return 0
	}
	return g.meanTotals[m] / float64(n)
}

// GroupRows partitions rows by the key fields in a single pass, summing and
// averaging the requested measures. Groups are returned in ascending key order.
// Every row lands in exactly one group and no group is empty.
func GroupRows(rows []schema.Row, fields []schema.KeyField, sums, means []schema.Measure) []*Group {
	index := make(map[Key]*Group)
	for _, row := range rows {
		k := KeyOf(row, fields)
		g, ok := index[k]
		if !ok {
			g = &Group{
				Key:        k,
				sums:       make(map[schema.Measure]float64, len(sums)),
				meanTotals: make(map[schema.Measure]float64, len(means)),
				meanCounts: make(map[schema.Measure]int, len(means)),
			}
			index[k] = g
		}
		g.Members++
		for _, m := range sums {
			g.sums[m] += row.Measures[m]
		}
		for _, m := range means {
			if v, present := row.Measures[m]; present {
				g.meanTotals[m] += v
				g.meanCounts[m]++
			}
		}
	}

	groups := make([]*Group, 0, len(index))
	for _, g := range index {
		groups = append(groups, g)
	}
	slices.SortFunc(groups, func(a, b *Group) int {
		return compareKeys(a.Key, b.Key, fields)
	})
	return groups
}
