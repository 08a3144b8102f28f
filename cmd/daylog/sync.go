// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Links devices and maintains the local Charm KV copy (status, repair, reset, wipe).
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/daylog/internal/charm"
	"github.com/spf13/cobra"
)

var syncRepairForce bool

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync records across devices with Charm",
	Long: `Keep daylog records in sync across machines through Charm Cloud.

Records are encrypted with your SSH key before they leave the machine.
Sync only applies when the charm backend is selected:

  daylog migrate --from sqlite --to charm
  echo '{"backend":"charm"}' > ~/.config/daylog/config.json
  daylog sync link

With the charm backend every write is pushed automatically.`,
	Annotations: map[string]string{skipStoreAnnotation: "true"},
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to your Charm account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm(cmd, "link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nInstall the charm CLI with: go install github.com/charmbracelet/charm@latest", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Device linked"))

		client, err := charm.InitClient()
		if err != nil {
			fmt.Fprintln(out, color.YellowString("⚠ Skipped first pull: %v", err))
			return nil
		}
		defer client.Close()

		if err := client.Sync(); err != nil {
			fmt.Fprintln(out, color.YellowString("⚠ First pull failed: %v", err))
			return nil
		}
		fmt.Fprintln(out, color.GreenString("✓ Pulled records from Charm Cloud"))
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect this device from Charm",
	Long:  "Disconnect this device from Charm. Local records stay where they are.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm(cmd, "unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Device unlinked, local records kept"))
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show Charm account and local record count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if err := loadConfig(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Backend: %s\n", cfg.GetBackend())

		client, err := charm.InitClient()
		if err != nil {
			fmt.Fprintln(out, color.YellowString("Charm unavailable: %v", err))
			fmt.Fprintln(out, "Run 'daylog sync link' to connect.")
			return nil
		}
		defer client.Close()

		id, err := client.ID()
		if err != nil {
			fmt.Fprintln(out, color.YellowString("Not linked to Charm"))
			fmt.Fprintln(out, "Run 'daylog sync link' to connect.")
			return nil
		}

		records, err := client.Load()
		if err != nil {
			return fmt.Errorf("failed to read charm records: %w", err)
		}

		fmt.Fprintf(out, "Charm ID: %s\n", id)
		fmt.Fprintf(out, "Server:   %s\n", os.Getenv("CHARM_HOST"))
		fmt.Fprintf(out, "Records:  %d\n", len(records))
		if client.IsReadOnly() {
			fmt.Fprintln(out, color.YellowString("Read-only: another daylog process holds the database"))
		}
		if cfg.GetBackend() != "charm" {
			fmt.Fprintln(out, color.YellowString("The active backend is %s, so new records are not synced.", cfg.GetBackend()))
		}
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair the local Charm database",
	Long: `Checkpoint the write-ahead log, drop a stale shared-memory file, run an
integrity check and vacuum the local Charm database.

Use after lock errors or a crash. --force continues past a failed
integrity check.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		result, err := kv.Repair(charm.DBName, syncRepairForce)

		steps := []struct {
			done  bool
			label string
		}{
			{result.WalCheckpointed, "WAL checkpointed"},
			{result.ShmRemoved, "SHM file removed"},
			{result.IntegrityOK, "integrity check passed"},
			{result.Vacuumed, "database vacuumed"},
		}
		for _, s := range steps {
			if s.done {
				fmt.Fprintln(out, color.GreenString("  ✓ %s", s.label))
			}
		}
		if !result.IntegrityOK {
			fmt.Fprintln(out, color.RedString("  ✗ integrity check failed"))
		}

		if err != nil {
			if !syncRepairForce {
				fmt.Fprintln(out, color.YellowString("Retry with --force to attempt recovery."))
			}
			return fmt.Errorf("repair failed: %w", err)
		}
		fmt.Fprintln(out, color.GreenString("✓ Repair complete"))
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace local Charm data with the cloud copy",
	Long:  "Delete the local Charm database and pull it again from Charm Cloud. Unsynced local changes are lost.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirm(cmd, "Delete local daylog data and pull from the cloud? [y/N]: ", "y", "yes")
		if err != nil || !ok {
			return err
		}

		if err := kv.Reset(charm.DBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Local data replaced with the cloud copy"))
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all daylog data locally and in the cloud",
	Long:  "Permanently delete the Charm cloud backups and the local Charm database. There is no undo.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirm(cmd, "Type 'wipe' to delete all cloud and local daylog data: ", "wipe")
		if err != nil || !ok {
			return err
		}

		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Wiped"))
		fmt.Fprintf(out, "  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Fprintf(out, "  Local files deleted:   %d\n", result.LocalFilesDeleted)
		return nil
	},
}

// runCharm runs the charm CLI attached to the command's streams.
func runCharm(cmd *cobra.Command, args ...string) error {
	c := exec.Command("charm", args...)
	c.Stdin = cmd.InOrStdin()
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	return c.Run()
}

// confirm prints prompt and reports whether the answer matches one of accept, case-insensitively.
func confirm(cmd *cobra.Command, prompt string, accept ...string) (bool, error) {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, prompt)

	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	answer = strings.TrimSpace(answer)
	for _, a := range accept {
		if strings.EqualFold(answer, a) {
			return true, nil
		}
	}
	fmt.Fprintln(out, "Canceled.")
	return false, nil
}

func init() {
	syncRepairCmd.Flags().BoolVar(&syncRepairForce, "force", false, "continue past a failed integrity check")

	syncCmd.AddCommand(syncLinkCmd, syncUnlinkCmd, syncStatusCmd, syncRepairCmd, syncResetCmd, syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
