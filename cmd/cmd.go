// Package cmd defines the command-line interface for gamepulse.
package cmd

import (
	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add one command per report section, in dashboard order
	for _, report := range schema.AllReports {
		rootCmd.AddCommand(newReportCmd(report))
	}

	// Add primary subcommands to the root command
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the datasets subcommands to the parent datasets command
	datasetsCmd.AddCommand(datasetsStatusCmd)
	datasetsCmd.AddCommand(datasetsExportCmd)
	datasetsCmd.AddCommand(datasetsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().StringP("data-dir", "d", contract.DefaultDataDir, "Directory holding the dataset extracts")
	rootCmd.PersistentFlags().String("source", string(schema.CSVSource), "Dataset source: csv or parquet or sql")
	rootCmd.PersistentFlags().String("source-backend", string(schema.SQLiteBackend), "SQL source backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("source-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().StringP("output-file", "o", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in section headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored chart bars in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of datasetsMigrateCmd to Viper
	datasetsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(datasetsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding datasets migrate flags", err)
	}
}
