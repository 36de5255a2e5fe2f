// ABOUTME: Export functionality for strategic memory data
// ABOUTME: Supports YAML, JSON, and Markdown export formats
package sqlite

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/claudedirector/claudedirector/internal/models"
)

// ExportData represents the complete exportable data structure
type ExportData struct {
	ExportID      string                        `yaml:"export_id" json:"export_id"`
	SchemaVersion int                           `yaml:"schema_version" json:"schema_version"`
	ExportedAt    string                        `yaml:"exported_at" json:"exported_at"`
	Tool          string                        `yaml:"tool" json:"tool"`
	Sessions      []models.ExecutiveSession     `yaml:"executive_sessions" json:"executive_sessions"`
	Initiatives   []models.StrategicInitiative  `yaml:"strategic_initiatives" json:"strategic_initiatives"`
	Stakeholders  []models.StakeholderProfile   `yaml:"stakeholder_profiles" json:"stakeholder_profiles"`
	Intelligence  []models.PlatformIntelligence `yaml:"platform_intelligence" json:"platform_intelligence"`
}

// Export reads every record from storage
func (s *Storage) Export() (*ExportData, error) {
	db, err := s.ensure()
	if err != nil {
		return nil, err
	}

	version, err := db.SchemaVersion()
	if err != nil {
		return nil, queryError("read schema version", err)
	}

	data := &ExportData{
		ExportID:      uuid.New().String(),
		SchemaVersion: version,
		ExportedAt:    s.now().Format(time.RFC3339),
		Tool:          "claudedirector",
	}

	if data.Sessions, err = s.sessions.ListAll(); err != nil {
		return nil, queryError("export executive sessions", err)
	}
	if data.Initiatives, err = s.initiatives.List("", ""); err != nil {
		return nil, queryError("export strategic initiatives", err)
	}
	if data.Stakeholders, err = s.stakeholders.List(); err != nil {
		return nil, queryError("export stakeholder profiles", err)
	}
	if data.Intelligence, err = s.intelligence.ListAll(); err != nil {
		return nil, queryError("export platform intelligence", err)
	}

	return data, nil
}

// ExportToYAML exports data to a YAML file
func (s *Storage) ExportToYAML(outputPath string) error {
	return s.exportToFile(outputPath, func(w io.Writer, data *ExportData) error {
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	})
}

// ExportToJSON exports data to a JSON file
func (s *Storage) ExportToJSON(outputPath string) error {
	return s.exportToFile(outputPath, func(w io.Writer, data *ExportData) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	})
}

// ExportToMarkdown exports data to a Markdown file
func (s *Storage) ExportToMarkdown(outputPath string) error {
	return s.exportToFile(outputPath, writeMarkdown)
}

func (s *Storage) exportToFile(outputPath string, encode func(io.Writer, *ExportData) error) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := encode(file, data); err != nil {
		return err
	}
	return file.Close()
}

func writeMarkdown(w io.Writer, data *ExportData) error {
	_, _ = fmt.Fprintf(w, "# Strategic Memory Export - %s\n\n", data.ExportedAt[:10])
	_, _ = fmt.Fprintf(w, "Generated: %s (export %s, schema v%d)\n\n", data.ExportedAt, data.ExportID, data.SchemaVersion)

	if len(data.Stakeholders) > 0 {
		_, _ = fmt.Fprintln(w, "## Stakeholders")
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "| Key | Name | Role | Department | Strength |")
		_, _ = fmt.Fprintln(w, "|-----|------|------|------------|----------|")
		for _, p := range data.Stakeholders {
			_, _ = fmt.Fprintf(w, "| %s | %s | %s | %s | %d |\n",
				p.StakeholderKey, p.DisplayName, p.RoleTitle, p.Department, p.RelationshipStrength)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(data.Initiatives) > 0 {
		_, _ = fmt.Fprintln(w, "## Initiatives")
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "| Key | Name | Status | Assignee | Risk | Completion |")
		_, _ = fmt.Fprintln(w, "|-----|------|--------|----------|------|------------|")
		for _, i := range data.Initiatives {
			_, _ = fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %.0f%% |\n",
				i.InitiativeKey, i.InitiativeName, i.Status, i.Assignee, i.RiskLevel, i.CompletionProbability*100)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(data.Sessions) > 0 {
		_, _ = fmt.Fprintln(w, "## Executive Sessions")
		_, _ = fmt.Fprintln(w)
		for _, session := range data.Sessions {
			_, _ = fmt.Fprintf(w, "### %s with %s (%s)\n\n",
				session.MeetingDate.Format("2006-01-02"), session.StakeholderKey, session.SessionType)
			if len(session.AgendaTopics) > 0 {
				_, _ = fmt.Fprintf(w, "*Agenda: %s*\n\n", strings.Join(session.AgendaTopics, ", "))
			}
			if session.BusinessImpact != "" {
				_, _ = fmt.Fprintf(w, "**Impact:** %s\n\n", session.BusinessImpact)
			}
			_, _ = fmt.Fprintf(w, "**Outcome:** %d/5\n\n", session.OutcomeRating)
			_, _ = fmt.Fprintln(w, "---")
			_, _ = fmt.Fprintln(w)
		}
	}

	if len(data.Intelligence) > 0 {
		_, _ = fmt.Fprintln(w, "## Platform Intelligence")
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "| Date | Category | Metric | Value | Trend |")
		_, _ = fmt.Fprintln(w, "|------|----------|--------|-------|-------|")
		for _, m := range data.Intelligence {
			_, _ = fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
				m.MeasurementDate.Format("2006-01-02"), m.Category, m.MetricName, FormatMetricValue(m), m.TrendDirection)
		}
		_, _ = fmt.Fprintln(w)
	}

	return nil
}

// FormatMetricValue renders a metric's numeric or text value with its unit
func FormatMetricValue(m models.PlatformIntelligence) string {
	var value string
	switch {
	case m.ValueNumeric != nil:
		value = fmt.Sprintf("%g", *m.ValueNumeric)
	case m.ValueText != nil:
		value = *m.ValueText
	default:
		return "-"
	}
	if m.Unit != "" {
		value += " " + m.Unit
	}
	return value
}
