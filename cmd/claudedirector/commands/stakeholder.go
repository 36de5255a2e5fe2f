// ABOUTME: CLI commands to manage stakeholder profiles
// ABOUTME: set upserts by key; list and show read profiles back
package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/claudedirector/claudedirector/internal/models"
)

var (
	stakeholderName     string
	stakeholderRole     string
	stakeholderDept     string
	stakeholderStyle    string
	stakeholderCriteria []string
	stakeholderPersonas []string
	stakeholderStrength int
)

// NewStakeholderCmd creates the stakeholder command
func NewStakeholderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stakeholder",
		Short: "Manage stakeholder profiles",
		Long: `Manage stakeholder profiles.

Profiles are keyed by a stakeholder key such as "cto". Setting an existing
key updates it in place.`,
	}

	setCmd := &cobra.Command{
		Use:   "set <key>",
		Short: "Create or update a stakeholder profile",
		Long: `Create or update a stakeholder profile.

Examples:
  claudedirector stakeholder set cto --name "Avery Chen" --role CTO \
    --criteria "cost" --criteria "delivery risk" --strength 4`,
		Args: cobra.ExactArgs(1),
		RunE: runStakeholderSet,
	}
	setCmd.Flags().StringVar(&stakeholderName, "name", "", "Display name")
	setCmd.Flags().StringVar(&stakeholderRole, "role", "", "Role title")
	setCmd.Flags().StringVar(&stakeholderDept, "department", "", "Department")
	setCmd.Flags().StringVar(&stakeholderStyle, "style", "", "Communication style")
	setCmd.Flags().StringArrayVar(&stakeholderCriteria, "criteria", nil, "Decision criterion (can be repeated)")
	setCmd.Flags().StringArrayVar(&stakeholderPersonas, "persona", nil, "Preferred persona (can be repeated)")
	setCmd.Flags().IntVar(&stakeholderStrength, "strength", 0, "Relationship strength 1-5 (default: 3)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stakeholder profiles",
		Args:  cobra.NoArgs,
		RunE:  runStakeholderList,
	}

	showCmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Show one stakeholder profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runStakeholderShow,
	}

	cmd.AddCommand(setCmd, listCmd, showCmd)
	return cmd
}

func runStakeholderSet(cmd *cobra.Command, args []string) error {
	profile := &models.StakeholderProfile{
		StakeholderKey:       args[0],
		DisplayName:          stakeholderName,
		RoleTitle:            stakeholderRole,
		Department:           stakeholderDept,
		CommunicationStyle:   stakeholderStyle,
		DecisionCriteria:     stakeholderCriteria,
		PreferredPersonas:    stakeholderPersonas,
		RelationshipStrength: stakeholderStrength,
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	store, _, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id, err := store.StoreStakeholderProfile(profile)
	if err != nil {
		return storageError("storing stakeholder profile", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"stakeholder_id": id, "stakeholder_key": profile.StakeholderKey})
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved stakeholder %s (id %d)\n", profile.StakeholderKey, id)
	}
	return nil
}

func runStakeholderList(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profiles, err := store.ListStakeholderProfiles()
	if err != nil {
		return storageError("listing stakeholders", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), profiles)
	}

	if len(profiles) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No stakeholders found. Create one with: claudedirector stakeholder set <key> --name \"Name\"\n")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "KEY\tNAME\tROLE\tDEPARTMENT\tSTRENGTH\n")
	fmt.Fprintf(w, "---\t----\t----\t----------\t--------\n")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/5\n",
			p.StakeholderKey,
			truncate(orDash(p.DisplayName), 25),
			truncate(orDash(p.RoleTitle), 25),
			orDash(p.Department),
			p.RelationshipStrength)
	}
	_ = w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d stakeholder(s)\n", len(profiles))
	}
	return nil
}

func runStakeholderShow(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profile, err := store.GetStakeholderProfile(args[0])
	if err != nil {
		return storageError("getting stakeholder", err)
	}
	if profile == nil {
		return fmt.Errorf("stakeholder %q not found", args[0])
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), profile)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FIELD\tVALUE\n")
	fmt.Fprintf(w, "-----\t-----\n")
	fmt.Fprintf(w, "Key\t%s\n", profile.StakeholderKey)
	fmt.Fprintf(w, "Name\t%s\n", orDash(profile.DisplayName))
	fmt.Fprintf(w, "Role\t%s\n", orDash(profile.RoleTitle))
	fmt.Fprintf(w, "Department\t%s\n", orDash(profile.Department))
	fmt.Fprintf(w, "Style\t%s\n", orDash(profile.CommunicationStyle))
	fmt.Fprintf(w, "Decision criteria\t%s\n", orDash(strings.Join(profile.DecisionCriteria, ", ")))
	fmt.Fprintf(w, "Preferred personas\t%s\n", orDash(strings.Join(profile.PreferredPersonas, ", ")))
	fmt.Fprintf(w, "Relationship\t%d/5\n", profile.RelationshipStrength)
	fmt.Fprintf(w, "Last Updated\t%s\n", formatTime(profile.UpdatedAt))
	return w.Flush()
}
