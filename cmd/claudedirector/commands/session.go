// ABOUTME: CLI commands to record and list executive sessions
// ABOUTME: session add writes one meeting; list recalls a window; show prints one
package commands

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/claudedirector/claudedirector/internal/models"
	"github.com/claudedirector/claudedirector/internal/report"
)

var (
	sessionStakeholder string
	sessionType        string
	sessionDate        string
	sessionAgenda      []string
	sessionDecisions   []string
	sessionActions     []string
	sessionImpact      string
	sessionNextPrep    string
	sessionPersona     string
	sessionRating      int
	sessionFollowUp    bool
	sessionDays        int
)

// NewSessionCmd creates the session command
func NewSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Record and recall executive sessions",
		Long: `Record and recall executive sessions.

Sessions are append-only meeting records with agenda topics, decisions,
and action items.`,
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record an executive session",
		Long: `Record an executive session.

Decisions and action items may be plain text or JSON objects.

Examples:
  claudedirector session add --stakeholder cto --type 1on1 \
    --agenda "Q4 roadmap" --agenda "Headcount" \
    --decision "Freeze hiring until January" \
    --action '{"item": "Draft plan", "owner": "me", "due": "2026-11-01"}' \
    --rating 4`,
		Args: cobra.NoArgs,
		RunE: runSessionAdd,
	}
	addCmd.Flags().StringVar(&sessionStakeholder, "stakeholder", "", "Stakeholder key")
	addCmd.Flags().StringVar(&sessionType, "type", "", "Session type (e.g. 1on1, staff, qbr)")
	addCmd.Flags().StringVar(&sessionDate, "date", "", "Meeting date, YYYY-MM-DD (default: now)")
	addCmd.Flags().StringArrayVar(&sessionAgenda, "agenda", nil, "Agenda topic (can be repeated)")
	addCmd.Flags().StringArrayVar(&sessionDecisions, "decision", nil, "Decision made (can be repeated)")
	addCmd.Flags().StringArrayVar(&sessionActions, "action", nil, "Action item (can be repeated)")
	addCmd.Flags().StringVar(&sessionImpact, "impact", "", "Business impact")
	addCmd.Flags().StringVar(&sessionNextPrep, "next-prep", "", "Prep notes for the next session")
	addCmd.Flags().StringVar(&sessionPersona, "persona", "", "Advisory persona used")
	addCmd.Flags().IntVar(&sessionRating, "rating", 0, "Outcome rating 1-5 (default: 3)")
	addCmd.Flags().BoolVar(&sessionFollowUp, "follow-up", false, "Flag the session for follow-up")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent executive sessions",
		Long: `List executive sessions from a recent window, newest first.

Examples:
  claudedirector session list
  claudedirector session list --stakeholder cto --days 30
  claudedirector session list --format json`,
		Args: cobra.NoArgs,
		RunE: runSessionList,
	}
	listCmd.Flags().StringVar(&sessionStakeholder, "stakeholder", "", "Only sessions with this stakeholder")
	listCmd.Flags().IntVar(&sessionDays, "days", 0, "Window in days (default: CLAUDEDIRECTOR_RECALL_DAYS)")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one executive session",
		Args:  cobra.ExactArgs(1),
		RunE:  runSessionShow,
	}

	cmd.AddCommand(addCmd, listCmd, showCmd)
	return cmd
}

func runSessionAdd(cmd *cobra.Command, args []string) error {
	meetingDate, err := parseDate(sessionDate)
	if err != nil {
		return err
	}
	decisions, err := parseObjects(sessionDecisions, "decision")
	if err != nil {
		return fmt.Errorf("--decision: %w", err)
	}
	actions, err := parseObjects(sessionActions, "item")
	if err != nil {
		return fmt.Errorf("--action: %w", err)
	}

	session := &models.ExecutiveSession{
		SessionType:      sessionType,
		StakeholderKey:   sessionStakeholder,
		MeetingDate:      meetingDate,
		AgendaTopics:     sessionAgenda,
		DecisionsMade:    decisions,
		ActionItems:      actions,
		BusinessImpact:   sessionImpact,
		NextSessionPrep:  sessionNextPrep,
		PersonaActivated: sessionPersona,
		OutcomeRating:    sessionRating,
		FollowUpRequired: sessionFollowUp,
	}
	if err := session.Validate(); err != nil {
		return err
	}

	store, _, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id, err := store.StoreExecutiveSession(session)
	if err != nil {
		return storageError("storing session", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"session_id": id})
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded session %d", id)
		if session.StakeholderKey != "" {
			fmt.Fprintf(cmd.OutOrStdout(), " with %s", session.StakeholderKey)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}

func runSessionList(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	days := sessionDays
	if days <= 0 {
		days = cfg.RecallDays
	}

	sessions, err := store.RecallExecutiveSessions(sessionStakeholder, days)
	if err != nil {
		return storageError("recalling sessions", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), sessions)
	}

	if len(sessions) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No sessions in the last %d days\n", days)
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tDATE\tSTAKEHOLDER\tTYPE\tRATING\tFOLLOW-UP\tAGENDA\n")
	fmt.Fprintf(w, "--\t----\t-----------\t----\t------\t---------\t------\n")
	for _, s := range sessions {
		followUp := ""
		if s.FollowUpRequired {
			followUp = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			s.ID,
			s.MeetingDate.Format("2006-01-02"),
			orDash(s.StakeholderKey),
			orDash(s.SessionType),
			s.OutcomeRating,
			orDash(followUp),
			truncate(strings.Join(s.AgendaTopics, ", "), 40))
	}
	_ = w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d session(s)\n", len(sessions))
	}
	return nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid session id %q", args[0])
	}

	store, _, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	session, err := store.GetExecutiveSession(id)
	if err != nil {
		return storageError("getting session", err)
	}
	if session == nil {
		return fmt.Errorf("session %d not found", id)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), session)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %d: %s with %s\n", session.ID, orDash(session.SessionType), orDash(session.StakeholderKey))
	fmt.Fprintf(out, "Date:      %s\n", session.MeetingDate.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "Rating:    %d/5\n", session.OutcomeRating)
	if session.FollowUpRequired {
		fmt.Fprintln(out, "Follow-up: required")
	}
	if session.PersonaActivated != "" {
		fmt.Fprintf(out, "Persona:   %s\n", session.PersonaActivated)
	}
	if len(session.AgendaTopics) > 0 {
		fmt.Fprintln(out, "\nAgenda:")
		for _, topic := range session.AgendaTopics {
			fmt.Fprintf(out, "  - %s\n", topic)
		}
	}
	if len(session.DecisionsMade) > 0 {
		fmt.Fprintln(out, "\nDecisions:")
		for _, d := range session.DecisionsMade {
			fmt.Fprintf(out, "  - %s\n", report.Describe(d, "decision"))
		}
	}
	if len(session.ActionItems) > 0 {
		fmt.Fprintln(out, "\nAction items:")
		for _, a := range session.ActionItems {
			fmt.Fprintf(out, "  - %s\n", report.Describe(a, "item"))
		}
	}
	if session.BusinessImpact != "" {
		fmt.Fprintf(out, "\nImpact: %s\n", session.BusinessImpact)
	}
	if session.NextSessionPrep != "" {
		fmt.Fprintf(out, "Next session prep: %s\n", session.NextSessionPrep)
	}
	return nil
}
