// ABOUTME: CLI commands rendering Markdown briefings from memory
// ABOUTME: brief preps a stakeholder meeting; portfolio summarizes initiatives
package commands

import (
	"github.com/spf13/cobra"

	"github.com/claudedirector/claudedirector/internal/report"
)

var (
	briefDays         int
	portfolioAssignee string
)

// NewBriefCmd creates the brief command
func NewBriefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brief <stakeholder>",
		Short: "Meeting prep briefing for a stakeholder",
		Long: `Render a Markdown briefing for a stakeholder: their profile, recent
sessions, decisions, and open action items.

Examples:
  claudedirector brief cto
  claudedirector brief cto --days 30 > cto-prep.md`,
		Args: cobra.ExactArgs(1),
		RunE: runBrief,
	}
	cmd.Flags().IntVar(&briefDays, "days", 0, "Session window in days (default: CLAUDEDIRECTOR_RECALL_DAYS)")
	return cmd
}

// NewPortfolioCmd creates the portfolio command
func NewPortfolioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Initiative portfolio summary",
		Long: `Render a Markdown summary of initiatives grouped by status, with
at-risk and blocked initiatives called out first.`,
		Args: cobra.NoArgs,
		RunE: runPortfolio,
	}
	cmd.Flags().StringVar(&portfolioAssignee, "assignee", "", "Only initiatives with this assignee")
	return cmd
}

func runBrief(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	days := briefDays
	if days <= 0 {
		days = cfg.RecallDays
	}

	ctx, err := store.GetStakeholderContext(args[0], days)
	if err != nil {
		return storageError("getting stakeholder context", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), ctx)
	}
	return report.WriteStakeholderBriefing(cmd.OutOrStdout(), ctx)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	initiatives, err := store.RecallStrategicInitiatives("", portfolioAssignee)
	if err != nil {
		return storageError("listing initiatives", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), initiatives)
	}
	return report.WriteInitiativePortfolio(cmd.OutOrStdout(), initiatives)
}
