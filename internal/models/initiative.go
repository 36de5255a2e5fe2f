// ABOUTME: StrategicInitiative represents a tracked initiative keyed by its natural key
// ABOUTME: Upserted on initiative_key; resource allocation is JSON-encoded
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Initiative status values observed in practice. Status is free text; these
// are not enforced.
const (
	InitiativeStatusNew        = "new"
	InitiativeStatusInProgress = "in_progress"
	InitiativeStatusActive     = "active"
	InitiativeStatusAtRisk     = "at_risk"
	InitiativeStatusBlocked    = "blocked"
	InitiativeStatusCommitted  = "committed"
	InitiativeStatusDone       = "done"
)

// DefaultRiskLevel is applied when an initiative is stored without a risk level
const DefaultRiskLevel = "green"

// ActiveInitiativeStatuses counts toward the "active initiatives" statistic
var ActiveInitiativeStatuses = []string{
	InitiativeStatusInProgress,
	InitiativeStatusActive,
	InitiativeStatusAtRisk,
	InitiativeStatusBlocked,
}

// StrategicInitiative represents a strategic initiative
type StrategicInitiative struct {
	ID                    int64            `json:"id" yaml:"id"`
	InitiativeKey         string           `json:"initiative_key" yaml:"initiative_key"`
	InitiativeName        string           `json:"initiative_name" yaml:"initiative_name"`
	Assignee              string           `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Status                string           `json:"status" yaml:"status"`
	Priority              string           `json:"priority,omitempty" yaml:"priority,omitempty"`
	BusinessValue         string           `json:"business_value,omitempty" yaml:"business_value,omitempty"`
	RiskLevel             string           `json:"risk_level" yaml:"risk_level"`
	ParentInitiative      string           `json:"parent_initiative,omitempty" yaml:"parent_initiative,omitempty"`
	ResourceAllocation    []map[string]any `json:"resource_allocation" yaml:"resource_allocation"`
	CompletionProbability float64          `json:"completion_probability" yaml:"completion_probability"`
	BudgetImpact          *float64         `json:"budget_impact,omitempty" yaml:"budget_impact,omitempty"`
	CreatedAt             time.Time        `json:"created_at" yaml:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at" yaml:"updated_at"`
}

// ApplyDefaults fills omitted fields with their stored defaults
func (i *StrategicInitiative) ApplyDefaults() {
	if i.Status == "" {
		i.Status = InitiativeStatusNew
	}
	if i.RiskLevel == "" {
		i.RiskLevel = DefaultRiskLevel
	}
}

// IsActive reports whether the initiative counts as in flight
func (i *StrategicInitiative) IsActive() bool {
	for _, s := range ActiveInitiativeStatuses {
		if i.Status == s {
			return true
		}
	}
	return false
}

// Validate checks the natural key and documented numeric ranges
func (i *StrategicInitiative) Validate() error {
	if strings.TrimSpace(i.InitiativeKey) == "" {
		return errors.New("initiative_key cannot be empty")
	}
	if i.CompletionProbability < 0 || i.CompletionProbability > 1 {
		return fmt.Errorf("completion_probability must be 0.0-1.0, got %g", i.CompletionProbability)
	}
	return nil
}
