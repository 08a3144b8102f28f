// ABOUTME: CLI commands for adding and editing daylog records.
// ABOUTME: Validates entry-form values per type before they reach the store.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/daylog/internal/daily"
	"github.com/harperreed/daylog/internal/models"
	"github.com/spf13/cobra"
)

var (
	addDate   string
	editDate  string
	editValue string
	editUnit  string
)

var addCmd = &cobra.Command{
	Use:     "add <type> <value...>",
	Aliases: []string{"a"},
	Short:   "Add a daily record",
	Long: `Add a record for today, or for --date.

The type may be given in English or as its label (體重, 飲水, 睡眠, 運動, 閱讀).

Examples:
  daylog add weight 70.5
  daylog add water 500 --date 2024-03-01
  daylog add sleep 很棒
  daylog add exercise 腿 有氧
  daylog add reading Deep Work 45`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseRecordType(args[0])
		if err != nil {
			return err
		}

		date := addDate
		if date == "" {
			date = today()
		}

		d, err := models.DraftFromInput(t, date, args[1:])
		if err != nil {
			return err
		}

		r := store.Create(d)
		color.Green("✓ Added %s", r.Type.Label())
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s\n",
			color.New(color.Faint).Sprint(r.ID),
			r.Date,
			daily.Line(r))
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a record",
	Long: `Change the date, value or unit of a record. The id and creation time are kept.

Values use the stored format of the record's type:
  weight 70.5, water 500, sleep 好, exercise "腿, 背", reading "書名 (30 分鐘)"

Examples:
  daylog edit 12 --value 69.8
  daylog edit 12 --date 2024-03-02`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		existing, ok := store.GetByID(id)
		if !ok {
			return fmt.Errorf("record not found: %d", id)
		}

		var p models.Patch
		if cmd.Flags().Changed("date") {
			if !isValidDate(editDate) {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", editDate)
			}
			p.Date = &editDate
		}
		if cmd.Flags().Changed("value") {
			if err := models.ValidateValue(existing.Type, editValue); err != nil {
				return err
			}
			p.Value = &editValue
		}
		if cmd.Flags().Changed("unit") {
			p.Unit = &editUnit
		}
		if p.IsEmpty() {
			return fmt.Errorf("nothing to update: use --date, --value or --unit")
		}

		r, _ := store.Update(id, p)
		color.Green("✓ Updated %s", r.Type.Label())
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s\n",
			color.New(color.Faint).Sprint(r.ID),
			r.Date,
			daily.Line(r))
		return nil
	},
}

// parseRecordType accepts an English type name or a localized label.
func parseRecordType(s string) (models.RecordType, error) {
	t := models.RecordType(strings.ToLower(s))
	if t.IsKnown() {
		return t, nil
	}
	if t := models.TypeFromLabel(s); t.IsKnown() {
		return t, nil
	}
	return "", fmt.Errorf("unknown record type: %s\nValid types: weight, water, sleep, exercise, reading", s)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id: %s", s)
	}
	return id, nil
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "record date (YYYY-MM-DD, default today)")
	editCmd.Flags().StringVar(&editDate, "date", "", "new date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editValue, "value", "", "new value")
	editCmd.Flags().StringVar(&editUnit, "unit", "", "new unit label")
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
}
