// ABOUTME: ExecutiveSession represents a recorded meeting with a stakeholder
// ABOUTME: Append-only record with JSON-encoded agenda, decisions, and action items
package models

import (
	"fmt"
	"time"
)

// DefaultOutcomeRating is applied when a session is stored without a rating
const DefaultOutcomeRating = 3

// RetainedOutcomeRating is the rating at or above which sessions survive cleanup
const RetainedOutcomeRating = 4

// ExecutiveSession represents a single executive meeting
type ExecutiveSession struct {
	ID               int64            `json:"id" yaml:"id"`
	SessionType      string           `json:"session_type" yaml:"session_type"`
	StakeholderKey   string           `json:"stakeholder_key" yaml:"stakeholder_key"`
	MeetingDate      time.Time        `json:"meeting_date" yaml:"meeting_date"`
	AgendaTopics     []string         `json:"agenda_topics" yaml:"agenda_topics"`
	DecisionsMade    []map[string]any `json:"decisions_made" yaml:"decisions_made"`
	ActionItems      []map[string]any `json:"action_items" yaml:"action_items"`
	BusinessImpact   string           `json:"business_impact,omitempty" yaml:"business_impact,omitempty"`
	NextSessionPrep  string           `json:"next_session_prep,omitempty" yaml:"next_session_prep,omitempty"`
	PersonaActivated string           `json:"persona_activated,omitempty" yaml:"persona_activated,omitempty"`
	OutcomeRating    int              `json:"outcome_rating" yaml:"outcome_rating"`
	FollowUpRequired bool             `json:"follow_up_required" yaml:"follow_up_required"`
	CreatedAt        time.Time        `json:"created_at" yaml:"created_at"`
}

// ApplyDefaults fills omitted fields with their stored defaults
func (s *ExecutiveSession) ApplyDefaults(now time.Time) {
	if s.OutcomeRating == 0 {
		s.OutcomeRating = DefaultOutcomeRating
	}
	if s.MeetingDate.IsZero() {
		s.MeetingDate = now
	}
}

// Validate checks the documented rating range. The store does not call this;
// callers that want strict input opt in.
func (s *ExecutiveSession) Validate() error {
	if s.OutcomeRating < 0 || s.OutcomeRating > 5 {
		return fmt.Errorf("outcome_rating must be 1-5, got %d", s.OutcomeRating)
	}
	return nil
}
