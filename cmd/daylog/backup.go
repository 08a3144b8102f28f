// ABOUTME: CLI commands for snapshot backups.
// ABOUTME: Writes, lists and restores full snapshots on the configured sink (fs or S3).
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/daylog/internal/backup"
	"github.com/harperreed/daylog/internal/storage"
	"github.com/spf13/cobra"
)

var restoreYes bool

var backupCmd = &cobra.Command{
	Use:     "backup",
	Aliases: []string{"b"},
	Short:   "Back up all records",
	Long: `Write a full snapshot of every record to the backup sink.

SINKS:

  fs   (default) ~/.local/share/daylog/backups, or backup.dir in config
  s3   an S3 bucket (or S3-compatible store such as MinIO)

  Configure in ~/.config/daylog/config.json:

  {
    "backup": {
      "driver": "s3",
      "s3": { "bucket": "my-daylog", "region": "us-east-1", "prefix": "daylog" }
    }
  }

  or with DAYLOG_BACKUP_DRIVER, DAYLOG_BACKUP_S3_BUCKET and friends.
  AWS credentials come from the usual AWS environment and profiles.

REMINDER:

  The first record added in a month prints a backup reminder until a
  backup is taken that month.

EXAMPLES:

  daylog backup
  daylog backup list
  daylog backup restore                  # Latest snapshot
  daylog backup restore daylog-backup-20240301-090000-1a2b3c4d.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := backupService(cmd)
		if err != nil {
			return err
		}

		name, err := svc.Backup(cmd.Context())
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		store.SetSetting(storage.SettingLastReminded, backup.MonthKey(store.Now()))

		color.Green("✓ Backed up %d records", len(store.ListAll()))
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := backupService(cmd)
		if err != nil {
			return err
		}

		names, err := svc.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintln(out, "No backups found.")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [name]",
	Short: "Replace all records with a snapshot",
	Long: `Replace every stored record with the contents of a snapshot.

Without a name the most recent snapshot is restored. This is destructive:
records added since the snapshot are lost.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := backupService(cmd)
		if err != nil {
			return err
		}

		name := ""
		if len(args) == 1 {
			name = args[0]
		} else if name, err = svc.Latest(cmd.Context()); err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}
		if name == "" {
			return fmt.Errorf("no backups found")
		}

		if !restoreYes {
			fmt.Fprintf(cmd.OutOrStdout(), "This will REPLACE all %d stored records with %s.\n", len(store.ListAll()), name)
			ok, err := confirm(cmd, "Continue? [y/N]: ", "y", "yes")
			if err != nil || !ok {
				return err
			}
		}

		n, err := svc.Restore(cmd.Context(), name)
		if err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}

		color.Green("✓ Restored %d records from %s", n, name)
		return nil
	},
}

func backupService(cmd *cobra.Command) (*backup.Service, error) {
	sink, err := cfg.OpenBackupSink(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to open backup sink: %w", err)
	}
	return backup.NewService(store, sink, logger), nil
}

func init() {
	backupRestoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "skip confirmation prompt")
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}
