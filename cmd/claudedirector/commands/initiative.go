// ABOUTME: CLI commands to track strategic initiatives
// ABOUTME: set upserts by key; list filters by status and assignee; show prints one
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/claudedirector/claudedirector/internal/models"
)

var (
	initiativeName        string
	initiativeAssignee    string
	initiativeStatus      string
	initiativePriority    string
	initiativeValue       string
	initiativeRisk        string
	initiativeParent      string
	initiativeProbability float64
	initiativeBudget      float64
)

// NewInitiativeCmd creates the initiative command
func NewInitiativeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initiative",
		Short: "Track strategic initiatives",
		Long: `Track strategic initiatives.

Initiatives are keyed by a natural key such as PROJ-1. Setting an existing
key updates it in place.`,
	}

	setCmd := &cobra.Command{
		Use:   "set <key>",
		Short: "Create or update an initiative",
		Long: `Create or update an initiative.

Every flag describes the full new state: omitted optional fields are cleared.
The parent initiative is recorded only when the key is first created.

Examples:
  claudedirector initiative set PROJ-1 --name "Design System Rollout" \
    --assignee dkim --status in_progress --priority high
  claudedirector initiative set PROJ-1 --status at_risk --risk red --probability 0.4`,
		Args: cobra.ExactArgs(1),
		RunE: runInitiativeSet,
	}
	setCmd.Flags().StringVar(&initiativeName, "name", "", "Initiative name")
	setCmd.Flags().StringVar(&initiativeAssignee, "assignee", "", "Owner")
	setCmd.Flags().StringVar(&initiativeStatus, "status", "", "Status (default: new)")
	setCmd.Flags().StringVar(&initiativePriority, "priority", "", "Priority")
	setCmd.Flags().StringVar(&initiativeValue, "value", "", "Business value")
	setCmd.Flags().StringVar(&initiativeRisk, "risk", "", "Risk level (default: green)")
	setCmd.Flags().StringVar(&initiativeParent, "parent", "", "Parent initiative key")
	setCmd.Flags().Float64Var(&initiativeProbability, "probability", 0, "Completion probability 0.0-1.0")
	setCmd.Flags().Float64Var(&initiativeBudget, "budget", 0, "Budget impact")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List initiatives",
		Long: `List initiatives, most recently updated first.

Examples:
  claudedirector initiative list
  claudedirector initiative list --status in_progress --assignee dkim`,
		Args: cobra.NoArgs,
		RunE: runInitiativeList,
	}
	listCmd.Flags().StringVar(&initiativeStatus, "status", "", "Only this status")
	listCmd.Flags().StringVar(&initiativeAssignee, "assignee", "", "Only this assignee")

	showCmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Show one initiative",
		Args:  cobra.ExactArgs(1),
		RunE:  runInitiativeShow,
	}

	cmd.AddCommand(setCmd, listCmd, showCmd)
	return cmd
}

func runInitiativeSet(cmd *cobra.Command, args []string) error {
	initiative := &models.StrategicInitiative{
		InitiativeKey:         args[0],
		InitiativeName:        initiativeName,
		Assignee:              initiativeAssignee,
		Status:                initiativeStatus,
		Priority:              initiativePriority,
		BusinessValue:         initiativeValue,
		RiskLevel:             initiativeRisk,
		ParentInitiative:      initiativeParent,
		CompletionProbability: initiativeProbability,
	}
	if cmd.Flags().Changed("budget") {
		budget := initiativeBudget
		initiative.BudgetImpact = &budget
	}
	if err := initiative.Validate(); err != nil {
		return err
	}

	store, _, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id, err := store.StoreInitiative(initiative)
	if err != nil {
		return storageError("storing initiative", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"initiative_id": id, "initiative_key": initiative.InitiativeKey})
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved initiative %s (id %d, status %s)\n", initiative.InitiativeKey, id, initiative.Status)
	}
	return nil
}

func runInitiativeList(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	initiatives, err := store.RecallStrategicInitiatives(initiativeStatus, initiativeAssignee)
	if err != nil {
		return storageError("listing initiatives", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), initiatives)
	}

	if len(initiatives) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No initiatives found\n")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "KEY\tNAME\tSTATUS\tASSIGNEE\tRISK\tCOMPLETION\tUPDATED\n")
	fmt.Fprintf(w, "---\t----\t------\t--------\t----\t----------\t-------\n")
	for _, i := range initiatives {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.0f%%\t%s\n",
			i.InitiativeKey,
			truncate(orDash(i.InitiativeName), 30),
			i.Status,
			orDash(i.Assignee),
			i.RiskLevel,
			i.CompletionProbability*100,
			formatTime(i.UpdatedAt))
	}
	_ = w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d initiative(s)\n", len(initiatives))
	}
	return nil
}

func runInitiativeShow(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	initiative, err := store.GetInitiativeContext(args[0])
	if err != nil {
		return storageError("getting initiative", err)
	}
	if initiative == nil {
		return fmt.Errorf("initiative %q not found", args[0])
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), initiative)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FIELD\tVALUE\n")
	fmt.Fprintf(w, "-----\t-----\n")
	fmt.Fprintf(w, "Key\t%s\n", initiative.InitiativeKey)
	fmt.Fprintf(w, "Name\t%s\n", orDash(initiative.InitiativeName))
	fmt.Fprintf(w, "Status\t%s\n", initiative.Status)
	fmt.Fprintf(w, "Assignee\t%s\n", orDash(initiative.Assignee))
	fmt.Fprintf(w, "Priority\t%s\n", orDash(initiative.Priority))
	fmt.Fprintf(w, "Risk\t%s\n", initiative.RiskLevel)
	fmt.Fprintf(w, "Completion\t%.0f%%\n", initiative.CompletionProbability*100)
	if initiative.BudgetImpact != nil {
		fmt.Fprintf(w, "Budget impact\t%.2f\n", *initiative.BudgetImpact)
	}
	fmt.Fprintf(w, "Parent\t%s\n", orDash(initiative.ParentInitiative))
	fmt.Fprintf(w, "Business value\t%s\n", truncate(orDash(initiative.BusinessValue), 60))
	fmt.Fprintf(w, "Created\t%s\n", initiative.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Updated\t%s\n", formatTime(initiative.UpdatedAt))
	return w.Flush()
}
