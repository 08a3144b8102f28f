// ABOUTME: Root Cobra command for the daylog CLI.
// ABOUTME: Loads config, opens the storage backend and wires the backup reminder via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/harperreed/daylog/internal/backup"
	"github.com/harperreed/daylog/internal/config"
	"github.com/harperreed/daylog/internal/logging"
	"github.com/harperreed/daylog/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// skipStoreAnnotation marks commands that must not open the storage backend.
const skipStoreAnnotation = "daylog/skip-store"

var (
	cfg     *config.Config
	logger  *log.Logger
	backend storage.Backend
	store   *storage.Store

	flagBackend  string
	flagDataDir  string
	flagLogLevel string
	flagEnvFile  string
)

var rootCmd = &cobra.Command{
	Use:   "daylog",
	Short: "Daily wellness log",
	Long: `Daylog is a CLI tool for logging daily wellness records and viewing
them per day and as monthly reports.

WHAT IT TRACKS:

  weight     體重  body weight in kg (latest entry per day wins)
  water      飲水  water intake in ml (summed per day)
  sleep      睡眠  sleep quality: 差, 普通, 好, 很棒 (or poor, fair, good, great)
  exercise   運動  trained body parts or activities: 腿, 背, 胸, 肩, 有氧, 拉伸...
  reading    閱讀  book title and minutes read

QUICK START:

  $ daylog add weight 70.5              # Log your weight for today
  $ daylog add water 500                # Log a glass of water
  $ daylog add sleep 好 --date 2024-03-01
  $ daylog add exercise 腿 有氧
  $ daylog add reading 深度工作 45       # Title, then minutes
  $ daylog day                          # Today's summary
  $ daylog report                       # This month's report

IMPORT/EXPORT:

  $ daylog export csv --month 2024-03   # Monthly CSV (Excel friendly, BOM)
  $ daylog import csv records.csv       # Append records from a CSV file
  $ daylog backup                       # Snapshot everything (fs or S3)

STORAGE BACKENDS:

  sqlite   (default) ~/.local/share/daylog/daylog.db
  charm    Charm KV, synced across devices (see 'daylog sync')
  memory   in-process only, nothing is persisted

  Select with --backend, DAYLOG_BACKEND, or "backend" in
  ~/.config/daylog/config.json. A .env file in the working directory is
  loaded first.

MCP INTEGRATION:

  Run 'daylog mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.

  {
    "mcpServers": {
      "daylog": { "command": "daylog", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsStore(cmd) {
			return nil
		}
		return openStore(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func needsStore(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "completion", "__complete":
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipStoreAnnotation] == "true" {
			return false
		}
	}
	return true
}

// loadConfig reads .env, the config file and command-line overrides.
func loadConfig() error {
	if err := godotenv.Load(flagEnvFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load %s: %w", flagEnvFile, err)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	logger, err = logging.New(os.Stderr, cfg.LogLevel)
	return err
}

func openStore(cmd *cobra.Command) error {
	if err := loadConfig(); err != nil {
		return err
	}

	var err error
	backend, err = cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}
	logger.Debug("storage opened", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())

	store = storage.NewStore(backend, storage.WithLogger(logger))

	reminder := backup.NewReminder(store, func(month string) {
		fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("⚠ No backup yet for %s. Run 'daylog backup' to save a snapshot.", month))
	})
	store.OnCreate(reminder.Hook())
	return nil
}

func closeStore() error {
	if backend == nil {
		return nil
	}
	err := backend.Close()
	backend = nil
	store = nil
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite, charm, or memory")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/daylog)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file loaded before the config")
}
