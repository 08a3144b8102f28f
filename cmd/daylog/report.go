// ABOUTME: CLI command for the monthly report.
// ABOUTME: Renders one month as text, JSON or YAML.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/harperreed/daylog/internal/report"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:     "report [YYYY-MM]",
	Aliases: []string{"r"},
	Short:   "Show a monthly report",
	Long: `Aggregate one month of records, the current month by default.

The report contains the daily weight series (latest entry per day), daily
water totals, the sleep quality histogram, exercise and reading days, and
minutes read per book.

FORMATS:

  text   human-readable summary (default)
  json   full report including per-day series
  yaml   same as json, as YAML

EXAMPLES:

  daylog report
  daylog report 2024-02
  daylog report 2024-02 --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m := report.MonthOf(store.Now())
		if len(args) == 1 {
			var err error
			if m, err = report.ParseMonth(args[0]); err != nil {
				return err
			}
		}

		rep := report.Aggregate(store.ListAll(), m)
		out := cmd.OutOrStdout()

		switch reportFormat {
		case "text", "":
			return report.WriteText(out, rep)
		case "json":
			data, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			_, err = fmt.Fprintln(out, string(data))
			return err
		case "yaml":
			data, err := yaml.Marshal(rep)
			if err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			_, err = out.Write(data)
			return err
		default:
			return fmt.Errorf("unknown format: %s (use text, json, or yaml)", reportFormat)
		}
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "text", "output format: text, json, or yaml")
	rootCmd.AddCommand(reportCmd)
}
