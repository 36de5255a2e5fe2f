// ABOUTME: MCP tool handler implementations for the strategic memory server
// ABOUTME: Decodes tool arguments into models and returns JSON text results
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claudedirector/claudedirector/internal/models"
	"github.com/claudedirector/claudedirector/internal/storage/sqlite"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	storage    *sqlite.Storage
	recallDays int
	logger     *log.Logger
}

// NewHandlers creates handlers over store. recallDays is the window used when
// a recall call omits days.
func NewHandlers(store *sqlite.Storage, recallDays int, logger *log.Logger) *Handlers {
	if recallDays <= 0 {
		recallDays = sqlite.DefaultRecallDays
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handlers{storage: store, recallDays: recallDays, logger: logger}
}

// StoreExecutiveSession handles the store_executive_session tool
func (h *Handlers) StoreExecutiveSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meetingDate, err := dateArg(request, "meeting_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	session := &models.ExecutiveSession{
		SessionType:      request.GetString("session_type", ""),
		StakeholderKey:   request.GetString("stakeholder_key", ""),
		MeetingDate:      meetingDate,
		AgendaTopics:     request.GetStringSlice("agenda_topics", nil),
		DecisionsMade:    objectListArg(request, "decisions_made"),
		ActionItems:      objectListArg(request, "action_items"),
		BusinessImpact:   request.GetString("business_impact", ""),
		NextSessionPrep:  request.GetString("next_session_prep", ""),
		PersonaActivated: request.GetString("persona_activated", ""),
		OutcomeRating:    request.GetInt("outcome_rating", 0),
		FollowUpRequired: request.GetBool("follow_up_required", false),
	}
	if err := session.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := h.storage.StoreExecutiveSession(session)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store session: %v", err)), nil
	}
	h.logger.Debug("stored executive session", "id", id, "stakeholder", session.StakeholderKey)

	return jsonResult(map[string]any{
		"success":    true,
		"session_id": id,
	})
}

// StoreInitiative handles the store_initiative tool
func (h *Handlers) StoreInitiative(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("initiative_key")
	if err != nil {
		return mcp.NewToolResultError("initiative_key argument is required and must be a string"), nil
	}

	initiative := &models.StrategicInitiative{
		InitiativeKey:         key,
		InitiativeName:        request.GetString("initiative_name", ""),
		Assignee:              request.GetString("assignee", ""),
		Status:                request.GetString("status", ""),
		Priority:              request.GetString("priority", ""),
		BusinessValue:         request.GetString("business_value", ""),
		RiskLevel:             request.GetString("risk_level", ""),
		ParentInitiative:      request.GetString("parent_initiative", ""),
		ResourceAllocation:    objectListArg(request, "resource_allocation"),
		CompletionProbability: request.GetFloat("completion_probability", 0),
		BudgetImpact:          floatArg(request, "budget_impact"),
	}
	if err := initiative.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := h.storage.StoreInitiative(initiative)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store initiative: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"success":        true,
		"initiative_id":  id,
		"initiative_key": key,
	})
}

// StoreStakeholderProfile handles the store_stakeholder_profile tool
func (h *Handlers) StoreStakeholderProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("stakeholder_key")
	if err != nil {
		return mcp.NewToolResultError("stakeholder_key argument is required and must be a string"), nil
	}

	profile := &models.StakeholderProfile{
		StakeholderKey:       key,
		DisplayName:          request.GetString("display_name", ""),
		RoleTitle:            request.GetString("role_title", ""),
		Department:           request.GetString("department", ""),
		CommunicationStyle:   request.GetString("communication_style", ""),
		DecisionCriteria:     request.GetStringSlice("decision_criteria", nil),
		PreferredPersonas:    request.GetStringSlice("preferred_personas", nil),
		RelationshipStrength: request.GetInt("relationship_strength", 0),
	}
	if err := profile.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := h.storage.StoreStakeholderProfile(profile)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store stakeholder profile: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"success":         true,
		"stakeholder_id":  id,
		"stakeholder_key": key,
	})
}

// StorePlatformMetric handles the store_platform_metric tool
func (h *Handlers) StorePlatformMetric(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("metric_name")
	if err != nil {
		return mcp.NewToolResultError("metric_name argument is required and must be a string"), nil
	}
	measured, err := dateArg(request, "measurement_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	metric := &models.PlatformIntelligence{
		IntelligenceType: request.GetString("intelligence_type", ""),
		Category:         request.GetString("category", ""),
		MetricName:       name,
		ValueNumeric:     floatArg(request, "value_numeric"),
		Unit:             request.GetString("unit", ""),
		DataSource:       request.GetString("data_source", ""),
		MeasurementDate:  measured,
		TrendDirection:   request.GetString("trend_direction", ""),
		BusinessImpact:   request.GetString("business_impact", ""),
		ConfidenceLevel:  request.GetString("confidence_level", ""),
	}
	if text := request.GetString("value_text", ""); text != "" {
		metric.ValueText = &text
	}
	if err := metric.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := h.storage.StorePlatformMetric(metric)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store metric: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"success":   true,
		"metric_id": id,
	})
}

// RecallExecutiveSessions handles the recall_executive_sessions tool
func (h *Handlers) RecallExecutiveSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := request.GetInt("days", h.recallDays)
	sessions, err := h.storage.RecallExecutiveSessions(request.GetString("stakeholder_key", ""), days)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to recall sessions: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// RecallStrategicInitiatives handles the recall_strategic_initiatives tool
func (h *Handlers) RecallStrategicInitiatives(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	initiatives, err := h.storage.RecallStrategicInitiatives(
		request.GetString("status", ""),
		request.GetString("assignee", ""),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to recall initiatives: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"initiatives": initiatives,
		"count":       len(initiatives),
	})
}

// RecallPlatformIntelligence handles the recall_platform_intelligence tool
func (h *Handlers) RecallPlatformIntelligence(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metrics, err := h.storage.RecallPlatformIntelligence(
		request.GetString("category", ""),
		request.GetString("intelligence_type", ""),
		request.GetInt("days", h.recallDays),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to recall platform intelligence: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"metrics": metrics,
		"count":   len(metrics),
	})
}

// GetStakeholderContext handles the get_stakeholder_context tool
func (h *Handlers) GetStakeholderContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("stakeholder_key")
	if err != nil {
		return mcp.NewToolResultError("stakeholder_key argument is required and must be a string"), nil
	}

	stakeholder, err := h.storage.GetStakeholderContext(key, request.GetInt("days", h.recallDays))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get stakeholder context: %v", err)), nil
	}

	return jsonResult(stakeholder)
}

// GetInitiativeContext handles the get_initiative_context tool. An unknown
// key is a successful result with found set to false.
func (h *Handlers) GetInitiativeContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("initiative_key")
	if err != nil {
		return mcp.NewToolResultError("initiative_key argument is required and must be a string"), nil
	}

	initiative, err := h.storage.GetInitiativeContext(key)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get initiative: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"initiative_key": key,
		"found":          initiative != nil,
		"initiative":     initiative,
	})
}

// GetMemoryStats handles the get_memory_stats tool
func (h *Handlers) GetMemoryStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.storage.GetMemoryStats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get memory stats: %v", err)), nil
	}
	return jsonResult(stats)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// dateArg parses an optional date argument. An absent or empty value returns
// the zero time so the store applies its default.
func dateArg(request mcp.CallToolRequest, key string) (time.Time, error) {
	raw := request.GetString(key, "")
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD or RFC3339, got %q", key, raw)
}

// floatArg returns nil when key is absent so optional numeric columns stay NULL
func floatArg(request mcp.CallToolRequest, key string) *float64 {
	if _, ok := request.GetArguments()[key]; !ok {
		return nil
	}
	v := request.GetFloat(key, 0)
	return &v
}

// objectListArg extracts an array of JSON objects, skipping non-object items
func objectListArg(request mcp.CallToolRequest, key string) []map[string]any {
	raw, ok := request.GetArguments()[key].([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]any); ok {
			items = append(items, obj)
		}
	}
	return items
}
