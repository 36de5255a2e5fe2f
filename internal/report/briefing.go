// ABOUTME: Markdown briefings rendered from strategic memory
// ABOUTME: Stakeholder meeting prep and initiative portfolio summaries
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/claudedirector/claudedirector/internal/models"
)

const dateLayout = "2006-01-02"

// maxOpenActions caps the action items listed in a briefing
const maxOpenActions = 10

// WriteStakeholderBriefing renders meeting prep for one stakeholder: their
// profile, the recent sessions, and the open action items from those sessions.
func WriteStakeholderBriefing(w io.Writer, ctx *models.StakeholderContext) error {
	if ctx == nil {
		return fmt.Errorf("stakeholder context is nil")
	}

	title := ctx.StakeholderKey
	if ctx.Profile != nil && ctx.Profile.DisplayName != "" {
		title = fmt.Sprintf("%s (%s)", ctx.Profile.DisplayName, ctx.StakeholderKey)
	}
	if _, err := fmt.Fprintf(w, "# Briefing: %s\n\n", title); err != nil {
		return err
	}

	if p := ctx.Profile; p != nil {
		_, _ = fmt.Fprintln(w, "## Profile")
		_, _ = fmt.Fprintln(w)
		writeField(w, "Role", p.RoleTitle)
		writeField(w, "Department", p.Department)
		writeField(w, "Communication style", p.CommunicationStyle)
		writeField(w, "Decision criteria", strings.Join(p.DecisionCriteria, ", "))
		writeField(w, "Preferred personas", strings.Join(p.PreferredPersonas, ", "))
		_, _ = fmt.Fprintf(w, "- **Relationship strength:** %d/5\n\n", p.RelationshipStrength)
	} else {
		_, _ = fmt.Fprintln(w, "_No stored profile._")
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintf(w, "## Recent Sessions (%d)\n\n", ctx.SessionCount)
	if len(ctx.RecentSessions) == 0 {
		_, _ = fmt.Fprintln(w, "_No sessions in this window._")
		_, _ = fmt.Fprintln(w)
	}

	var (
		actions  []string
		followUp int
	)
	for _, s := range ctx.RecentSessions {
		label := s.SessionType
		if label == "" {
			label = "session"
		}
		_, _ = fmt.Fprintf(w, "### %s: %s (outcome %d/5)\n\n", s.MeetingDate.Format(dateLayout), label, s.OutcomeRating)
		if len(s.AgendaTopics) > 0 {
			_, _ = fmt.Fprintf(w, "- **Agenda:** %s\n", strings.Join(s.AgendaTopics, ", "))
		}
		for _, d := range s.DecisionsMade {
			_, _ = fmt.Fprintf(w, "- **Decision:** %s\n", Describe(d, "decision"))
		}
		writeField(w, "Impact", s.BusinessImpact)
		writeField(w, "Prep for next", s.NextSessionPrep)
		_, _ = fmt.Fprintln(w)

		if s.FollowUpRequired {
			followUp++
		}
		for _, a := range s.ActionItems {
			actions = append(actions, Describe(a, "item"))
		}
	}

	if len(actions) > 0 {
		_, _ = fmt.Fprintln(w, "## Action Items")
		_, _ = fmt.Fprintln(w)
		for i, a := range actions {
			if i == maxOpenActions {
				_, _ = fmt.Fprintf(w, "- ...and %d more\n", len(actions)-maxOpenActions)
				break
			}
			_, _ = fmt.Fprintf(w, "- [ ] %s\n", a)
		}
		_, _ = fmt.Fprintln(w)
	}

	if followUp > 0 {
		_, err := fmt.Fprintf(w, "**%d session(s) flagged for follow-up.**\n", followUp)
		return err
	}
	return nil
}

// WriteInitiativePortfolio renders initiatives grouped by status, with an
// at-risk callout for anything at_risk, blocked, or rated red.
func WriteInitiativePortfolio(w io.Writer, initiatives []models.StrategicInitiative) error {
	active := 0
	for _, i := range initiatives {
		if i.IsActive() {
			active++
		}
	}
	if _, err := fmt.Fprintf(w, "# Initiative Portfolio (%d, %d active)\n\n", len(initiatives), active); err != nil {
		return err
	}
	if len(initiatives) == 0 {
		_, err := fmt.Fprintln(w, "_No initiatives tracked._")
		return err
	}

	var atRisk []models.StrategicInitiative
	groups := map[string][]models.StrategicInitiative{}
	for _, i := range initiatives {
		groups[i.Status] = append(groups[i.Status], i)
		if needsAttention(i) {
			atRisk = append(atRisk, i)
		}
	}

	if len(atRisk) > 0 {
		_, _ = fmt.Fprintln(w, "## Needs Attention")
		_, _ = fmt.Fprintln(w)
		for _, i := range atRisk {
			_, _ = fmt.Fprintf(w, "- **%s** %s: %s, risk %s", i.InitiativeKey, i.InitiativeName, i.Status, i.RiskLevel)
			if i.Assignee != "" {
				_, _ = fmt.Fprintf(w, " (%s)", i.Assignee)
			}
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintln(w)
	}

	for _, status := range statusOrder(groups) {
		_, _ = fmt.Fprintf(w, "## %s (%d)\n\n", status, len(groups[status]))
		_, _ = fmt.Fprintln(w, "| Key | Name | Assignee | Priority | Risk | Completion |")
		_, _ = fmt.Fprintln(w, "|-----|------|----------|----------|------|------------|")
		for _, i := range groups[status] {
			_, _ = fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %.0f%% |\n",
				i.InitiativeKey, i.InitiativeName, i.Assignee, i.Priority, i.RiskLevel, i.CompletionProbability*100)
		}
		_, _ = fmt.Fprintln(w)
	}
	return nil
}

func needsAttention(i models.StrategicInitiative) bool {
	return i.Status == models.InitiativeStatusAtRisk ||
		i.Status == models.InitiativeStatusBlocked ||
		strings.EqualFold(i.RiskLevel, "red")
}

// statusOrder lists active statuses first in their canonical order, then the
// rest alphabetically.
func statusOrder(groups map[string][]models.StrategicInitiative) []string {
	var ordered []string
	seen := map[string]bool{}
	for _, s := range models.ActiveInitiativeStatuses {
		if _, ok := groups[s]; ok {
			ordered = append(ordered, s)
			seen[s] = true
		}
	}
	var rest []string
	for s := range groups {
		if !seen[s] {
			rest = append(rest, s)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

func writeField(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	_, _ = fmt.Fprintf(w, "- **%s:** %s\n", label, value)
}

// Describe renders a free-form decision or action object. The primary key is
// shown first, then owner and due when present.
func Describe(obj map[string]any, primary string) string {
	text, _ := obj[primary].(string)
	if text == "" {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, obj[k]))
		}
		return strings.Join(parts, ", ")
	}
	if owner, ok := obj["owner"].(string); ok && owner != "" {
		text += fmt.Sprintf(" (@%s)", owner)
	}
	if due, ok := obj["due"].(string); ok && due != "" {
		text += fmt.Sprintf(" due %s", due)
	}
	return text
}
