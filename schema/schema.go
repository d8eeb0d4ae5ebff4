// Package schema has the data models shared by all parts of gamepulse.
package schema

// Row is one record of a dataset extract. Keys absent from a dataset keep
// their zero value; Country is empty when the extract has no country.
type Row struct {
	Country       string
	Level         int
	SessionRank   int
	RetentionDays int
	GunName       string
	Measures      map[Measure]float64
}

// Key returns the integer value of a numeric key field.
func (r Row) Key(field KeyField) int {
	switch field {
	case LevelKey:
		return r.Level
	case SessionRankKey:
		return r.SessionRank
	case RetentionDaysKey:
		return r.RetentionDays
	default:
		return 0
	}
}

// Label returns the textual value of a key field.
func (r Row) Label(field KeyField) string {
	switch field {
	case CountryKey:
		return r.Country
	case GunNameKey:
		return r.GunName
	default:
		return ""
	}
}

// Measure returns a numeric measure, or zero when the row lacks it.
func (r Row) Measure(m Measure) float64 {
	return r.Measures[m]
}

// Dataset is the whole-table content of one report's extract.
type Dataset struct {
	Report ReportName
	Rows   []Row
}

// DatasetName maps each report to its table name in SQL and Parquet sources.
var DatasetName = map[ReportName]string{
	RetentionReport:       "retention_count_total_users",
	LoserateReport:        "loserate",
	PlayersLeftReport:     "lose_users",
	LevelDurationReport:   "avg_dur_lev",
	SessionDurationReport: "avg_dur_sess",
	GunPopularityReport:   "popul_guns",
}

// DatasetFile maps each report to the file name of its CSV extract.
var DatasetFile = map[ReportName]string{
	RetentionReport:       "retention_count_total_users_202307221802.csv",
	LoserateReport:        "loserate.csv",
	PlayersLeftReport:     "lose_users.csv",
	LevelDurationReport:   "avg_dur_lev.csv",
	SessionDurationReport: "avg_dur_sess.csv",
	GunPopularityReport:   "popul_guns.csv",
}
