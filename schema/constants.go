package schema

// Custom string types for type safety.
type (
	// ReportName identifies one of the report sections and its dataset.
	ReportName string

	// OutputMode represents the format of the output.
	OutputMode string

	// SourceFormat represents how datasets are stored.
	SourceFormat string

	// DatabaseBackend represents the database backend for SQL datasets.
	DatabaseBackend string

	// KeyField names a categorical column used for filtering or grouping.
	KeyField string

	// Measure names a numeric column of a dataset row.
	Measure string

	// Column names a column of a summary table.
	Column string

	// Derivation names the single derived value a report computes per group.
	Derivation string

	// Color is the semantic color of a chart series.
	Color string

	// ChartKind represents how a categorical chart is drawn.
	ChartKind string
)

// All report sections, in dashboard order.
const (
	RetentionReport       ReportName = "retention"
	LoserateReport        ReportName = "loserate"
	PlayersLeftReport     ReportName = "players-left"
	LevelDurationReport   ReportName = "level-duration"
	SessionDurationReport ReportName = "session-duration"
	GunPopularityReport   ReportName = "guns"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All dataset source formats supported.
const (
	CSVSource     SourceFormat = "csv" // default
	ParquetSource SourceFormat = "parquet"
	SQLSource     SourceFormat = "sql"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// Categorical keys of dataset rows.
const (
	CountryKey       KeyField = "country"
	LevelKey         KeyField = "level"
	SessionRankKey   KeyField = "session_rank"
	RetentionDaysKey KeyField = "retention_days"
	GunNameKey       KeyField = "gun_name"
)

// Numeric measures of dataset rows.
const (
	RetentionCount     Measure = "retention_count"
	TotalUsers         Measure = "total_users"
	PlayersStarted     Measure = "players_started"
	PlayersCompleted   Measure = "players_completed"
	PlayersChurned     Measure = "players_churned"
	AvgDuration        Measure = "avg_duration"
	AvgSessionDuration Measure = "avg_session_duration"
	Percentage         Measure = "percentage"
	Users              Measure = "users"
)

// Summary table columns.
const (
	CountryCol          Column = "country"
	LevelCol            Column = "level"
	SessionRankCol      Column = "session_rank"
	RetentionDaysCol    Column = "retention_days"
	GunNameCol          Column = "gun_name"
	RankCol             Column = "rank"
	TotalUsersCol       Column = "total_users"
	RetentionCountCol   Column = "retention_count"
	RetentionPercentCol Column = "retention_percent"
	PlayersStartedCol   Column = "players_started"
	PlayersCompletedCol Column = "players_completed"
	PlayersChurnedCol   Column = "players_churned"
	ChurnRateCol        Column = "churn_rate"
	DurationTimeCol     Column = "duration_time"
	PopularityCol       Column = "popularity"
)

// Derivations, one per report.
const (
	RetentionPercentDerivation Derivation = "retention_percent"
	ChurnRateDerivation        Derivation = "churn_rate"
	PlayersChurnedDerivation   Derivation = "players_churned"
	DurationTimeDerivation     Derivation = "duration_time"
	TopKDerivation             Derivation = "top_k_after_leader"
)

// Semantic series colors.
const (
	RetainedColor Color = "lightgreen"
	LostColor     Color = "lightcoral"
)

// All chart kinds supported.
const (
	BarChart           ChartKind = "bar"
	StackedBarChart    ChartKind = "stacked_bar"
	HorizontalBarChart ChartKind = "horizontal_bar"
)

// AllReports lists every report in dashboard order.
var AllReports = []ReportName{
	RetentionReport,
	LoserateReport,
	PlayersLeftReport,
	LevelDurationReport,
	SessionDurationReport,
	GunPopularityReport,
}

// ValidReports lists all valid report names.
var ValidReports = map[ReportName]struct{}{
	RetentionReport:       {},
	LoserateReport:        {},
	PlayersLeftReport:     {},
	LevelDurationReport:   {},
	SessionDurationReport: {},
	GunPopularityReport:   {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidSourceFormats lists all valid source formats.
var ValidSourceFormats = map[SourceFormat]struct{}{
	CSVSource:     {},
	ParquetSource: {},
	SQLSource:     {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// SentinelLevels are instrumentation placeholders that never describe gameplay.
var SentinelLevels = []int{194000, 1940010000}
