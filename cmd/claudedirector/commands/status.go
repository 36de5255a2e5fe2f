// ABOUTME: CLI commands reporting database health and memory statistics
// ABOUTME: status never creates the database; stats reports row counts
package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show database health",
		Long: `Show database health: path, schema version, and a row count for every
table. A missing table is reported without failing the whole check, and the
database file is never created by this command.`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show memory statistics",
		Long:  `Show row counts, sessions in the last 7 days, and active initiatives.`,
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	status, err := store.GetDatabaseStatus()
	if err != nil {
		return storageError("checking status", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), status)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database: %s\n", status.Path)
	fmt.Fprintf(out, "Status:   %s\n", status.Status)
	if !status.Exists {
		return nil
	}
	fmt.Fprintf(out, "Schema:   v%d\n\n", status.SchemaVersion)

	tables := make([]string, 0, len(status.Tables))
	for name := range status.Tables {
		tables = append(tables, name)
	}
	sort.Strings(tables)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TABLE\tROWS\tSTATE\n")
	fmt.Fprintf(w, "-----\t----\t-----\n")
	for _, name := range tables {
		ts := status.Tables[name]
		if ts.Available {
			fmt.Fprintf(w, "%s\t%d\tok\n", name, ts.Count)
		} else {
			fmt.Fprintf(w, "%s\t-\t%s\n", name, ts.Error)
		}
	}
	return w.Flush()
}

func runStats(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stats, err := store.GetMemoryStats()
	if err != nil {
		return storageError("getting stats", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), stats)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "METRIC\tCOUNT\n")
	fmt.Fprintf(w, "------\t-----\n")
	fmt.Fprintf(w, "Executive sessions\t%d\n", stats.ExecutiveSessions)
	fmt.Fprintf(w, "  last 7 days\t%d\n", stats.RecentSessionsLast7d)
	fmt.Fprintf(w, "Strategic initiatives\t%d\n", stats.StrategicInitiatives)
	fmt.Fprintf(w, "  active\t%d\n", stats.ActiveInitiatives)
	fmt.Fprintf(w, "Stakeholder profiles\t%d\n", stats.StakeholderProfiles)
	fmt.Fprintf(w, "Platform metrics\t%d\n", stats.PlatformIntelligence)
	return w.Flush()
}
