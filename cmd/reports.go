package cmd

import (
	"github.com/huangsam/gamepulse/core"
	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/spf13/cobra"
)

// reportsCmd prints the report catalog.
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Describe the available reports",
	Long: `Show how each report is computed: its dataset, range and group keys,
summed and averaged measures, derived value formula and chart.`,
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReportCatalog(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display reports", err)
		}
	},
}
