// ABOUTME: CLI commands for exporting and importing daylog data.
// ABOUTME: Supports monthly CSV files and full JSON/YAML snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/daylog/internal/csvcodec"
	"github.com/harperreed/daylog/internal/report"
	"github.com/harperreed/daylog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportMonth  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export daylog data",
	Long: `Export daylog data in various formats.

FORMATS:

  csv    One month of records, UTF-8 with BOM (opens cleanly in Excel)
  json   Full JSON snapshot (suitable for backup/restore)
  yaml   Full YAML snapshot (human-readable)

OPTIONS:

  --output, -o   Write to file instead of stdout ("-" forces stdout).
                 CSV defaults to 生活追蹤報表_<year>年<month>月.csv
  --month, -m    Month to export as CSV (YYYY-MM, default current month)

EXAMPLES:

  daylog export csv                       # This month, default file name
  daylog export csv -m 2024-03 -o -       # March 2024 to stdout
  daylog export json -o backup.json       # Full snapshot`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"csv", "json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		output := exportOutput

		var data []byte
		var err error

		switch format {
		case "csv":
			m := report.MonthOf(store.Now())
			if exportMonth != "" {
				if m, err = report.ParseMonth(exportMonth); err != nil {
					return err
				}
			}
			rep := report.Aggregate(store.ListAll(), m)
			if len(rep.Records) == 0 {
				color.Yellow("No records in %s, nothing to export.", m)
				return nil
			}
			data = []byte(csvcodec.Encode(rep.Records))
			if output == "" {
				output = csvcodec.FileName(m.Year, int(m.Month))
			}
		case "json":
			data, err = store.ExportJSON()
		case "yaml":
			data, err = store.ExportYAML()
		default:
			return fmt.Errorf("unknown format: %s (use csv, json, or yaml)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if output != "" && output != "-" {
			if err := os.WriteFile(output, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", output)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <format> <file>",
	Short: "Import daylog data",
	Long: `Import records from a file. Imported records are appended; existing
records are never changed.

FORMATS:

  csv    A CSV file in the export layout (ID,日期,類型,值,單位,時間戳).
         Rows with fewer than four columns or an invalid date are skipped.
         New ids and timestamps are assigned.
  json   A snapshot written by 'daylog export json' (YAML also accepted).
         Ids that collide with stored records are reassigned.

EXAMPLES:

  daylog import csv 生活追蹤報表_2024年3月.csv
  daylog import json backup.json`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"csv", "json"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, filename := args[0], args[1]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		switch format {
		case "csv":
			result := csvcodec.Parse(string(data), store.ListAll(), store.Now())
			imported := store.Import(result.Records)
			color.Green("✓ Imported %d records from %s", imported, filename)
			if result.Skipped > 0 {
				color.Yellow("  Skipped %d invalid rows", result.Skipped)
			}
		case "json", "yaml":
			export, err := storage.ParseExport(data)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			imported := store.ImportData(export)
			color.Green("✓ Imported %d records from %s", imported, filename)
		default:
			return fmt.Errorf("unknown format: %s (use csv or json)", format)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout, CSV: monthly file name)")
	exportCmd.Flags().StringVarP(&exportMonth, "month", "m", "", "month to export as CSV (YYYY-MM)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
