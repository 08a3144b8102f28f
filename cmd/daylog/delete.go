// ABOUTME: CLI command for deleting daylog records.
// ABOUTME: Deletes by numeric record id.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/daylog/internal/daily"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a record",
	Long: `Delete a record by its id.

The id is shown in the first column of 'daylog list' and 'daylog day' output.

CAUTION:

  This permanently deletes the record. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		r, ok := store.GetByID(id)
		if !ok {
			return fmt.Errorf("record not found: %d", id)
		}
		if !store.Delete(id) {
			return fmt.Errorf("record not found: %d", id)
		}

		color.Yellow("✗ Deleted %s", r.Type.Label())
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s\n",
			color.New(color.Faint).Sprint(r.ID),
			r.Date,
			daily.Line(r))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
