// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies records and settings, refusing to overwrite a non-empty destination.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/daylog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateForce  bool
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data between storage backends",
	Long: `Copy every record and setting from one storage backend to another.

BACKENDS:

  sqlite   ~/.local/share/daylog/daylog.db (or --data-dir)
  charm    Charm KV, synced across devices

IMPORTANT:

  - The destination must be empty unless --force is given
  - With --force the destination's records are replaced
  - Run with --dry-run first to see what would be migrated

USAGE:

  daylog migrate --from sqlite --to charm --dry-run
  daylog migrate --from sqlite --to charm

AFTER MIGRATION:

  Switch the default backend in ~/.config/daylog/config.json:
    { "backend": "charm" }`,
	Annotations: map[string]string{skipStoreAnnotation: "true"},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("--from and --to must differ")
		}
		if err := loadConfig(); err != nil {
			return err
		}

		src, err := openBackend(migrateFrom)
		if err != nil {
			return err
		}
		defer src.Close()

		dst, err := openBackend(migrateTo)
		if err != nil {
			return err
		}
		defer dst.Close()

		empty, err := storage.IsEmpty(dst)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", migrateTo, err)
		}
		if !empty && !migrateForce {
			return fmt.Errorf("destination %s already has records (use --force to replace them)", migrateTo)
		}

		if migrateDryRun {
			records, err := src.Load()
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", migrateFrom, err)
			}
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Fprintf(cmd.OutOrStdout(), "  Would migrate %d records from %s to %s\n", len(records), migrateFrom, migrateTo)
			return nil
		}

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s → %s", migrateFrom, migrateTo)
		fmt.Fprintf(cmd.OutOrStdout(), "  Records: %d\n", summary.Records)
		fmt.Fprintf(cmd.OutOrStdout(), "  Settings: %d\n", summary.Settings)
		return nil
	},
}

// openBackend opens the named backend with the loaded config's data directory.
func openBackend(name string) (storage.Backend, error) {
	c := *cfg
	c.Backend = name
	b, err := c.OpenStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", name, err)
	}
	return b, nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "sqlite", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "charm", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "replace records in a non-empty destination")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
