// ABOUTME: StakeholderProfile represents a person the director works with
// ABOUTME: Upserted on stakeholder_key; list fields are JSON-encoded
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultRelationshipStrength is applied when a profile is stored without one
const DefaultRelationshipStrength = 3

// StakeholderProfile represents a stakeholder
type StakeholderProfile struct {
	ID                   int64     `json:"id" yaml:"id"`
	StakeholderKey       string    `json:"stakeholder_key" yaml:"stakeholder_key"`
	DisplayName          string    `json:"display_name" yaml:"display_name"`
	RoleTitle            string    `json:"role_title,omitempty" yaml:"role_title,omitempty"`
	Department           string    `json:"department,omitempty" yaml:"department,omitempty"`
	CommunicationStyle   string    `json:"communication_style,omitempty" yaml:"communication_style,omitempty"`
	DecisionCriteria     []string  `json:"decision_criteria" yaml:"decision_criteria"`
	PreferredPersonas    []string  `json:"preferred_personas" yaml:"preferred_personas"`
	RelationshipStrength int       `json:"relationship_strength" yaml:"relationship_strength"`
	CreatedAt            time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" yaml:"updated_at"`
}

// ApplyDefaults fills omitted fields with their stored defaults
func (p *StakeholderProfile) ApplyDefaults() {
	if p.RelationshipStrength == 0 {
		p.RelationshipStrength = DefaultRelationshipStrength
	}
}

// Validate checks the natural key and the documented strength range
func (p *StakeholderProfile) Validate() error {
	if strings.TrimSpace(p.StakeholderKey) == "" {
		return errors.New("stakeholder_key cannot be empty")
	}
	if p.RelationshipStrength < 0 || p.RelationshipStrength > 5 {
		return fmt.Errorf("relationship_strength must be 1-5, got %d", p.RelationshipStrength)
	}
	return nil
}

// StakeholderContext joins a stakeholder's profile with their recent sessions.
// Profile is nil when the stakeholder has sessions but no stored profile.
type StakeholderContext struct {
	StakeholderKey string              `json:"stakeholder_key"`
	Profile        *StakeholderProfile `json:"profile"`
	RecentSessions []ExecutiveSession  `json:"recent_sessions"`
	SessionCount   int                 `json:"session_count"`
}
