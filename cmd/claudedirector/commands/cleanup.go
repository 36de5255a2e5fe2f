// ABOUTME: CLI command for retention cleanup
// ABOUTME: Deletes aged metrics and poorly rated aged sessions after confirmation
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cleanupRetentionDays int
	cleanupYes           bool
)

// NewCleanupCmd creates the cleanup command
func NewCleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete memory older than the retention window",
		Long: `Delete memory older than the retention window.

Removes platform metrics measured before the window, and executive sessions
held before the window with an outcome rating below 4. Sessions rated 4 or 5
are kept regardless of age. Deletion is permanent, so --yes is required.

Examples:
  claudedirector cleanup --yes
  claudedirector cleanup --retention-days 180 --yes`,
		Args: cobra.NoArgs,
		RunE: runCleanup,
	}

	cmd.Flags().IntVar(&cleanupRetentionDays, "retention-days", 0, "Retention window in days (default: CLAUDEDIRECTOR_RETENTION_DAYS)")
	cmd.Flags().BoolVar(&cleanupYes, "yes", false, "Confirm permanent deletion")

	return cmd
}

func runCleanup(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("retention-days") && cleanupRetentionDays <= 0 {
		return fmt.Errorf("--retention-days must be positive, got %d", cleanupRetentionDays)
	}
	if !cleanupYes {
		return fmt.Errorf("cleanup permanently deletes data; re-run with --yes to confirm")
	}

	store, cfg, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	days := cleanupRetentionDays
	if days <= 0 {
		days = cfg.RetentionDays
	}

	result, err := store.CleanupMemory(days)
	if err != nil {
		return storageError("cleaning up", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d session(s) and %d metric(s) older than %d days\n",
			result.ExecutiveSessions, result.PlatformIntelligence, result.RetentionDays)
	}
	return nil
}
