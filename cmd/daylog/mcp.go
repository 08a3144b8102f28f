// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/daylog/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read and log your daily records
through a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "daylog": {
        "command": "daylog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_record       Log a weight, water, sleep, exercise or reading record
  update_record    Change a record's date, value or unit
  delete_record    Delete a record by id
  list_records     List records by month and type
  get_day          One day's records and summary lines
  monthly_report   Aggregate a month
  import_csv       Import CSV text
  export_csv       Export a month as CSV text

AVAILABLE RESOURCES:

  daylog://today   Today's records
  daylog://month   This month's report`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
