package contract

import (
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/huangsam/gamepulse/schema"
)

// Default values for configuration.
const (
	DefaultDataDir   = "data"
	DefaultPrecision = 1
	DefaultSQLiteDB  = "gamepulse.db"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// SectionRawInput holds the selection of one report section as read from
// the config file, command flags or MCP tool arguments. Nil and empty
// fields leave the underlying selection untouched.
type SectionRawInput struct {
	Countries []string `mapstructure:"countries"`
	Min       *int     `mapstructure:"min"`
	Max       *int     `mapstructure:"max"`
	Rating    string   `mapstructure:"rating"`
}

// IsZero reports whether the input overrides nothing.
func (s SectionRawInput) IsZero() bool {
	return s.Countries == nil && s.Min == nil && s.Max == nil && s.Rating == ""
}

// Config holds the runtime configuration for presenting reports.
// This struct remains the "final, validated" config.
type Config struct {
	Source          schema.SourceFormat
	DataDir         string
	DatasetPaths    map[schema.ReportName]string
	SourceBackend   schema.DatabaseBackend
	SourceDBConnect string // Please use env var as this is plaintext

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	// Sections is the resolved selection of every report section
	Sections map[schema.ReportName]schema.Selection

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored chart bars in text output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	DataDir         string `mapstructure:"data-dir"`
	Source          string `mapstructure:"source"`
	SourceBackend   string `mapstructure:"source-backend"`
	SourceDBConnect string `mapstructure:"source-db-connect"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Precision       int    `mapstructure:"precision"`
	Width           int    `mapstructure:"width"`
	Emoji           string `mapstructure:"emoji"`
	Color           string `mapstructure:"color"`

	// --- Per-report dataset locations from config file ---
	Datasets map[string]string `mapstructure:"datasets"`

	// --- Per-section selections from config file ---
	Sections map[string]SectionRawInput `mapstructure:"sections"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.DatasetPaths != nil {
		clone.DatasetPaths = make(map[schema.ReportName]string, len(c.DatasetPaths))
		maps.Copy(clone.DatasetPaths, c.DatasetPaths)
	}
	if c.Sections != nil {
		clone.Sections = make(map[schema.ReportName]schema.Selection, len(c.Sections))
		maps.Copy(clone.Sections, c.Sections)
	}
	return &clone
}

// SelectionFor returns the configured selection of a report section,
// falling back to its defaults.
func (c *Config) SelectionFor(report schema.ReportName) schema.Selection {
	if sel, ok := c.Sections[report]; ok {
		return sel
	}
	return schema.DefaultSelection(report)
}

// ApplySection overrides the selection of one report section with raw input.
func (c *Config) ApplySection(report schema.ReportName, raw SectionRawInput) error {
	sel, err := ResolveSelection(c.SelectionFor(report), report, raw)
	if err != nil {
		return err
	}
	if c.Sections == nil {
		c.Sections = make(map[schema.ReportName]schema.Selection)
	}
	c.Sections[report] = sel
	return nil
}

// ResolveSelection layers raw input over a base selection. Range bounds are
// clamped to the offered bounds but never reordered.
func ResolveSelection(base schema.Selection, report schema.ReportName, raw SectionRawInput) (schema.Selection, error) {
	sel := base
	if raw.Countries != nil {
		sel.Countries = schema.ParseCountrySelection(raw.Countries)
	}

	lo, hi := sel.Range.Min, sel.Range.Max
	if raw.Min != nil {
		lo = *raw.Min
	}
	if raw.Max != nil {
		hi = *raw.Max
	}
	if raw.Min != nil || raw.Max != nil {
		sel.Range = schema.NewLevelRange(lo, hi)
	}

	if raw.Rating != "" {
		if report != schema.GunPopularityReport {
			return base, fmt.Errorf("rating only applies to the %s report (received %q for %s)", schema.GunPopularityReport, raw.Rating, report)
		}
		depth, err := schema.ParseRatingDepth(raw.Rating)
		if err != nil {
			return base, err
		}
		sel.Rating = depth
	}
	return sel, nil
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateSourceConfigs(cfg, input); err != nil {
		return err
	}
	if err := processDatasetPaths(cfg, input); err != nil {
		return err
	}
	if err := processSections(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("source-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("source-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// SQLiteDBFilePath returns the default SQLite database inside the data directory.
func SQLiteDBFilePath(dataDir string) string {
	return filepath.Join(dataDir, DefaultSQLiteDB)
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// validateSourceConfigs validates where the datasets are read from.
func validateSourceConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.DataDir = strings.TrimSpace(input.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}

	cfg.Source = schema.SourceFormat(strings.ToLower(input.Source))
	if _, ok := schema.ValidSourceFormats[cfg.Source]; !ok {
		return fmt.Errorf("invalid source '%s'. must be csv, parquet, sql", input.Source)
	}

	cfg.SourceBackend = schema.DatabaseBackend(strings.ToLower(input.SourceBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.SourceBackend]; !ok {
		return fmt.Errorf("invalid source backend '%s'. must be sqlite, mysql, postgresql", input.SourceBackend)
	}
	cfg.SourceDBConnect = input.SourceDBConnect
	if cfg.Source == schema.SQLSource {
		if err := ValidateDatabaseConnectionString(cfg.SourceBackend, cfg.SourceDBConnect); err != nil {
			return err
		}
	}
	return nil
}

// processDatasetPaths converts per-report dataset overrides from the config file.
func processDatasetPaths(cfg *Config, input *ConfigRawInput) error {
	cfg.DatasetPaths = make(map[schema.ReportName]string, len(input.Datasets))
	for name, path := range input.Datasets {
		report := schema.ReportName(strings.ToLower(name))
		if _, ok := schema.ValidReports[report]; !ok {
			return fmt.Errorf("invalid dataset override '%s': unknown report", name)
		}
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("dataset override for %s cannot be empty", report)
		}
		cfg.DatasetPaths[report] = path
	}
	return nil
}

// processSections builds the selection of every report section from its
// defaults and any section block of the config file.
func processSections(cfg *Config, input *ConfigRawInput) error {
	cfg.Sections = make(map[schema.ReportName]schema.Selection, len(schema.AllReports))
	for _, report := range schema.AllReports {
		cfg.Sections[report] = schema.DefaultSelection(report)
	}
	for name, raw := range input.Sections {
		report := schema.ReportName(strings.ToLower(name))
		if _, ok := schema.ValidReports[report]; !ok {
			return fmt.Errorf("invalid section '%s': unknown report", name)
		}
		sel, err := ResolveSelection(cfg.Sections[report], report, raw)
		if err != nil {
			return fmt.Errorf("section %s: %w", report, err)
		}
		cfg.Sections[report] = sel
	}
	return nil
}
