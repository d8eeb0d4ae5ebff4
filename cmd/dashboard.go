package cmd

import (
	"github.com/huangsam/gamepulse/core"
	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/spf13/cobra"
)

// dashboardCmd presents every report section in order.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Present all six report sections",
	Long: `Present retention, lose rate, players left, level duration, session
duration and gun popularity in one run.

Each section uses its own selection from the sections block of the config
file. Sections whose dataset is missing are skipped with a warning.

Examples:
  # Full dashboard in the terminal
  gamepulse dashboard

  # One CSV file per section: out/pulse_retention.csv, out/pulse_loserate.csv, ...
  gamepulse dashboard --output csv --output-file out/pulse.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDashboard(rootCtx, cfg, dataSource); err != nil {
			contract.LogFatal("Cannot present dashboard", err)
		}
	},
}
