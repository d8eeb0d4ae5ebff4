package cmd

import (
	"errors"

	"github.com/huangsam/gamepulse/core"
	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// datasetsCmd is the parent for dataset management subcommands.
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Manage the report datasets",
	Long:  `Inspect, export and migrate the datasets behind the reports.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// datasetsStatusCmd shows availability of every dataset.
var datasetsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show dataset availability and row counts",
	Long: `Display where each report dataset is read from, whether it is
available and how many rows it holds.

Examples:
  gamepulse datasets status
  gamepulse datasets status --source sql --source-backend sqlite`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSourceStatus(rootCtx, cfg, dataSource); err != nil {
			contract.LogFatal("Cannot get dataset status", err)
		}
	},
}

// datasetsExportCmd writes every dataset to Parquet.
var datasetsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the datasets to Parquet files",
	Long: `Read every available dataset from the configured source and write it
as <dataset>.parquet into the directory given by --output-file.

The exported directory can then be used with --source parquet.

Examples:
  # Convert the CSV extracts
  gamepulse datasets export --output-file exported

  # Present from the exported files
  gamepulse dashboard --source parquet --data-dir exported`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetup(rootCtx, cmd, args); err != nil {
			return err
		}
		if cfg.OutputFile == "" {
			return errors.New("datasets export requires --output-file")
		}
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDatasetExport(rootCtx, cfg, dataSource); err != nil {
			contract.LogFatal("Failed to export datasets", err)
		}
	},
}

// datasetsMigrateCmd manages the SQL dataset tables.
var datasetsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations for the dataset tables",
	Long: `Create or roll back the six dataset tables of a SQL source.

Tables are created empty; filling them is left to the export process that
produces the datasets.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  gamepulse datasets migrate --source-backend sqlite

  # Rollback to initial state
  gamepulse datasets migrate --target-version 0`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := configSetupWrapper(cmd, args); err != nil {
			return err
		}
		return contract.ValidateDatabaseConnectionString(cfg.SourceBackend, cfg.SourceDBConnect)
	},
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := core.ExecuteDatasetMigrate(rootCtx, cfg, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
