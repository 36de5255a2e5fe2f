// ABOUTME: Tests for strategic memory model defaults and validation
// ABOUTME: Verifies ApplyDefaults and opt-in range checks for each entity
package models

import (
	"strings"
	"testing"
	"time"
)

func TestExecutiveSessionApplyDefaults(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)

	s := &ExecutiveSession{StakeholderKey: "jsmith"}
	s.ApplyDefaults(now)

	if s.OutcomeRating != DefaultOutcomeRating {
		t.Errorf("OutcomeRating = %d, want %d", s.OutcomeRating, DefaultOutcomeRating)
	}
	if !s.MeetingDate.Equal(now) {
		t.Errorf("MeetingDate = %v, want %v", s.MeetingDate, now)
	}

	rated := &ExecutiveSession{OutcomeRating: 5, MeetingDate: now.AddDate(0, 0, -3)}
	rated.ApplyDefaults(now)
	if rated.OutcomeRating != 5 {
		t.Errorf("OutcomeRating = %d, want 5", rated.OutcomeRating)
	}
	if !rated.MeetingDate.Equal(now.AddDate(0, 0, -3)) {
		t.Error("ApplyDefaults should not overwrite a supplied MeetingDate")
	}
}

func TestExecutiveSessionValidate(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		wantErr bool
	}{
		{"omitted rating", 0, false},
		{"lowest", 1, false},
		{"highest", 5, false},
		{"too high", 6, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&ExecutiveSession{OutcomeRating: tt.rating}).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStrategicInitiativeDefaultsAndValidate(t *testing.T) {
	i := &StrategicInitiative{InitiativeKey: "PROJ-1"}
	i.ApplyDefaults()

	if i.Status != InitiativeStatusNew {
		t.Errorf("Status = %q, want %q", i.Status, InitiativeStatusNew)
	}
	if i.RiskLevel != DefaultRiskLevel {
		t.Errorf("RiskLevel = %q, want %q", i.RiskLevel, DefaultRiskLevel)
	}
	if err := i.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	i.CompletionProbability = 1.5
	err := i.Validate()
	if err == nil || !strings.Contains(err.Error(), "completion_probability") {
		t.Errorf("Validate() error = %v, want completion_probability error", err)
	}

	if err := (&StrategicInitiative{}).Validate(); err == nil {
		t.Error("Validate() should reject an empty initiative_key")
	}
}

func TestStrategicInitiativeIsActive(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{InitiativeStatusInProgress, true},
		{InitiativeStatusAtRisk, true},
		{InitiativeStatusBlocked, true},
		{InitiativeStatusActive, true},
		{InitiativeStatusNew, false},
		{InitiativeStatusDone, false},
		{"cancelled", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			i := &StrategicInitiative{Status: tt.status}
			if got := i.IsActive(); got != tt.want {
				t.Errorf("IsActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStakeholderProfileDefaultsAndValidate(t *testing.T) {
	p := &StakeholderProfile{StakeholderKey: "cto"}
	p.ApplyDefaults()
	if p.RelationshipStrength != DefaultRelationshipStrength {
		t.Errorf("RelationshipStrength = %d, want %d", p.RelationshipStrength, DefaultRelationshipStrength)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	p.RelationshipStrength = 9
	if err := p.Validate(); err == nil {
		t.Error("Validate() should reject relationship_strength 9")
	}

	if err := (&StakeholderProfile{StakeholderKey: "  "}).Validate(); err == nil {
		t.Error("Validate() should reject a blank stakeholder_key")
	}
}

func TestPlatformIntelligenceApplyDefaults(t *testing.T) {
	now := time.Date(2026, 3, 14, 17, 45, 12, 0, time.Local)

	p := &PlatformIntelligence{MetricName: "adoption_rate"}
	p.ApplyDefaults(now)

	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	if !p.MeasurementDate.Equal(want) {
		t.Errorf("MeasurementDate = %v, want %v", p.MeasurementDate, want)
	}
	if p.TrendDirection != DefaultTrendDirection {
		t.Errorf("TrendDirection = %q, want %q", p.TrendDirection, DefaultTrendDirection)
	}
	if p.ConfidenceLevel != DefaultConfidenceLevel {
		t.Errorf("ConfidenceLevel = %q, want %q", p.ConfidenceLevel, DefaultConfidenceLevel)
	}

	if err := (&PlatformIntelligence{}).Validate(); err == nil {
		t.Error("Validate() should reject an empty metric_name")
	}
}

func TestCleanupResultTotal(t *testing.T) {
	r := &CleanupResult{ExecutiveSessions: 2, PlatformIntelligence: 5}
	if r.Total() != 7 {
		t.Errorf("Total() = %d, want 7", r.Total())
	}
}
