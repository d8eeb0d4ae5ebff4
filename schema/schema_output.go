package schema

// SummaryRow is one aggregate row produced from a group of dataset rows.
// Only the fields named by the summary columns are meaningful for a report.
type SummaryRow struct {
	Country       string
	Level         int
	SessionRank   int
	RetentionDays int
	GunName       string
	Rank          int

	RetentionCount   int64
	TotalUsers       int64
	RetentionPercent float64
	PlayersStarted   int64
	PlayersCompleted int64
	PlayersChurned   int64
	ChurnRate        float64
	AvgSeconds       float64
	DurationTime     string
	Popularity       float64

	// Members is the number of dataset rows folded into this row.
	Members int
}

// Value returns the typed value of a column.
func (r SummaryRow) Value(c Column) any {
	switch c {
	case CountryCol:
		return r.Country
	case LevelCol:
		return r.Level
	case SessionRankCol:
		return r.SessionRank
	case RetentionDaysCol:
		return r.RetentionDays
	case GunNameCol:
		return r.GunName
	case RankCol:
		return r.Rank
	case TotalUsersCol:
		return r.TotalUsers
	case RetentionCountCol:
		return r.RetentionCount
	case RetentionPercentCol:
		return r.RetentionPercent
	case PlayersStartedCol:
		return r.PlayersStarted
	case PlayersCompletedCol:
		return r.PlayersCompleted
	case PlayersChurnedCol:
		return r.PlayersChurned
	case ChurnRateCol:
		return r.ChurnRate
	case DurationTimeCol:
		return r.DurationTime
	case PopularityCol:
		return r.Popularity
	default:
		return nil
	}
}

// Summary is the ordered table a report renders.
type Summary struct {
	Report  ReportName   `json:"report"`
	Columns []Column     `json:"columns"`
	Rows    []SummaryRow `json:"-"`
}

// Records returns the rows as column-keyed maps for machine-readable output.
func (s Summary) Records() []map[string]any {
	out := make([]map[string]any, len(s.Rows))
	for i, r := range s.Rows {
		rec := make(map[string]any, len(s.Columns))
		for _, c := range s.Columns {
			rec[string(c)] = r.Value(c)
		}
		out[i] = rec
	}
	return out
}

// AxisRange fixes the value axis of a chart.
type AxisRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Point is one (category, value, series, color) tuple of a categorical chart.
type Point struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Series   string  `json:"series"`
	Color    Color   `json:"color"`
}

// Chart is a categorical chart descriptor.
type Chart struct {
	Title             string     `json:"title"`
	Kind              ChartKind  `json:"kind"`
	CategoryTitle     string     `json:"category_title"`
	ValueTitle        string     `json:"value_title"`
	ValueRange        *AxisRange `json:"value_range,omitempty"`
	ReverseCategories bool       `json:"reverse_categories,omitempty"`
	Points            []Point    `json:"points"`
}

// Series returns the distinct series names in first-seen order.
func (c Chart) Series() []string {
	var out []string
	seen := map[string]bool{}
	for _, p := range c.Points {
		if !seen[p.Series] {
			seen[p.Series] = true
			out = append(out, p.Series)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (c Chart) Categories() []string {
	var out []string
	seen := map[string]bool{}
	for _, p := range c.Points {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Gauge is a single percentage in [0, 100] with a label.
type Gauge struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Presentation is everything one report section renders.
type Presentation struct {
	Title     string    `json:"title"`
	Selection Selection `json:"selection"`
	Summary   Summary   `json:"summary"`
	Charts    []Chart   `json:"charts,omitempty"`
	Gauges    []Gauge   `json:"gauges,omitempty"`
}

// Empty reports whether no rows matched the selection.
func (p Presentation) Empty() bool {
	return len(p.Summary.Rows) == 0
}

// PresentationJSON is the wire shape of a presentation.
type PresentationJSON struct {
	Report    ReportName       `json:"report"`
	Title     string           `json:"title"`
	Selection Selection        `json:"selection"`
	Columns   []Column         `json:"columns"`
	Rows      []map[string]any `json:"rows"`
	Charts    []Chart          `json:"charts,omitempty"`
	Gauges    []Gauge          `json:"gauges,omitempty"`
}

// ToJSON flattens a presentation for JSON encoding.
func (p Presentation) ToJSON() PresentationJSON {
	return PresentationJSON{
		Report:    p.Summary.Report,
		Title:     p.Title,
		Selection: p.Selection,
		Columns:   p.Summary.Columns,
		Rows:      p.Summary.Records(),
		Charts:    p.Charts,
		Gauges:    p.Gauges,
	}
}
