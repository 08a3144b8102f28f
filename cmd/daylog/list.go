// ABOUTME: CLI commands for listing records and showing a day's summary.
// ABOUTME: Supports filtering by month and type and CJK-aware column alignment.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/daylog/internal/daily"
	"github.com/harperreed/daylog/internal/models"
	"github.com/harperreed/daylog/internal/report"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var (
	listMonth string
	listType  string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List records",
	Long: `List stored records in insertion order.

OUTPUT FORMAT:

  Each line shows: ID  DATE  TYPE  VALUE UNIT

FILTERING:

  --month YYYY-MM   only records dated in that month
  --type TYPE       weight, water, sleep, exercise, reading (or 體重, 飲水...)
  --limit N         keep only the last N matches (0 = all)

EXAMPLES:

  daylog list                         # Last 20 records
  daylog list --month 2024-03         # March 2024
  daylog list -t weight -n 0          # Every weight record`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if listMonth != "" {
			m, err := report.ParseMonth(listMonth)
			if err != nil {
				return err
			}
			prefix = m.Prefix()
		}

		var t models.RecordType
		if listType != "" {
			var err error
			if t, err = parseRecordType(listType); err != nil {
				return err
			}
		}

		records := daily.Filter(store.ListAll(), prefix, t)
		if listLimit > 0 && len(records) > listLimit {
			records = records[len(records)-listLimit:]
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No records found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range records {
			fmt.Fprintf(out, "%s %s %s %s\n",
				faint.Sprint(padRight(fmt.Sprint(r.ID), 5)),
				faint.Sprint(r.Date),
				padRight(r.Type.Label(), 6),
				truncate(fmt.Sprintf("%s %s", r.Value, r.Unit), 48))
		}
		return nil
	},
}

var dayCmd = &cobra.Command{
	Use:     "day [date]",
	Aliases: []string{"d", "today"},
	Short:   "Show a day's summary",
	Long: `Show the records for one day, today by default.

Only the latest weight and sleep entry of the day are shown; water,
exercise and reading entries are all listed in the order they were logged.

EXAMPLES:

  daylog day
  daylog day 2024-03-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := today()
		if len(args) == 1 {
			date = args[0]
		}
		if !isValidDate(date) {
			return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", date)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.New(color.Bold).Sprint(daily.Title(date)))

		lines := daily.Summary(store.ListAll(), date)
		if len(lines) == 0 {
			fmt.Fprintln(out, daily.EmptyDay)
			return nil
		}
		for _, line := range lines {
			fmt.Fprintf(out, "  %s\n", line)
		}
		return nil
	},
}

func today() string {
	return store.Now().Format(models.DateLayout)
}

func isValidDate(s string) bool {
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}

// truncate shortens s to maxLen display columns.
func truncate(s string, maxLen int) string {
	return runewidth.Truncate(s, maxLen, "...")
}

// padRight pads s with spaces to length display columns.
func padRight(s string, length int) string {
	return runewidth.FillRight(s, length)
}

func init() {
	listCmd.Flags().StringVarP(&listMonth, "month", "m", "", "filter by month (YYYY-MM)")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "filter by record type")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results (0 = all)")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dayCmd)
}
