package cmd

import (
	"fmt"

	"github.com/huangsam/gamepulse/core"
	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newReportCmd builds the command that presents one report section.
// Selection flags are read from the command itself, not from Viper.
func newReportCmd(report schema.ReportName) *cobra.Command {
	spec, err := core.SpecFor(report)
	if err != nil {
		contract.LogFatal("Unknown report command", err)
	}

	cmd := &cobra.Command{
		Use:   string(report),
		Short: fmt.Sprintf("Present the %s section", spec.Title),
		Long: fmt.Sprintf(`Present the %s section: summary table, charts and gauges.

Selection flags override the section block of the config file. Omitted
flags keep the configured selection, which defaults to all countries and
levels 1 through 10.

Examples:
  # Only two countries, levels 3 through 8
  gamepulse %s --country US,BR --min 3 --max 8

  # Machine-readable output
  gamepulse %s --output json`, spec.Title, report, report),
		PreRunE: sharedSetupWrapper,
		Run: func(cmd *cobra.Command, _ []string) {
			raw, err := sectionFromFlags(cmd.Flags())
			if err != nil {
				contract.LogFatal("Invalid selection flags", err)
			}
			if err := cfg.ApplySection(report, raw); err != nil {
				contract.LogFatal("Invalid selection flags", err)
			}
			if err := core.ExecuteReport(rootCtx, cfg, dataSource, report); err != nil {
				contract.LogFatal(fmt.Sprintf("Cannot present %s", report), err)
			}
		},
	}

	cmd.Flags().StringSlice("country", nil, "Country codes to include, or 'all' (repeatable, comma-separated)")
	cmd.Flags().Int("min", schema.MinRangeBound, fmt.Sprintf("Lowest level or session rank to include (%d-%d)", schema.MinRangeBound, schema.MaxRangeBound))
	cmd.Flags().Int("max", schema.MaxRangeBound, fmt.Sprintf("Highest level or session rank to include (%d-%d)", schema.MinRangeBound, schema.MaxRangeBound))
	if report == schema.GunPopularityReport {
		cmd.Flags().String("rating", schema.Top3.String(), "Guns shown per level: Top-1, Top-3, Top-5 or Top-10")
	}
	return cmd
}

// sectionFromFlags collects the selection flags the user actually set.
func sectionFromFlags(flags *pflag.FlagSet) (contract.SectionRawInput, error) {
	var raw contract.SectionRawInput
	if flags.Changed("country") {
		countries, err := flags.GetStringSlice("country")
		if err != nil {
			return raw, err
		}
		// --country "" still means an explicit, empty selection
		raw.Countries = append([]string{}, countries...)
	}
	if flags.Changed("min") {
		lo, err := flags.GetInt("min")
		if err != nil {
			return raw, err
		}
		raw.Min = &lo
	}
	if flags.Changed("max") {
		hi, err := flags.GetInt("max")
		if err != nil {
			return raw, err
		}
		raw.Max = &hi
	}
	if flags.Lookup("rating") != nil && flags.Changed("rating") {
		rating, err := flags.GetString("rating")
		if err != nil {
			return raw, err
		}
		raw.Rating = rating
	}
	return raw, nil
}
