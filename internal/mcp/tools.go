// ABOUTME: MCP tool definitions and registration for the strategic memory server
// ABOUTME: Declares JSON schemas for the store, recall, context, and stats tools
package mcp

import (
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claudedirector/claudedirector/internal/storage/sqlite"
)

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func numberProp(description string) map[string]any {
	return map[string]any{"type": "number", "description": description}
}

func stringListProp(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

func objectListProp(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "object"},
		"description": description,
	}
}

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *sqlite.Storage, recallDays int, logger *log.Logger) *Handlers {
	handlers := NewHandlers(store, recallDays, logger)

	// Writes
	server.AddTool(mcp.Tool{
		Name:        "store_executive_session",
		Description: "Record an executive meeting with a stakeholder, including agenda, decisions, and action items.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_type":       stringProp("Kind of meeting (e.g. '1on1', 'staff', 'quarterly_review')"),
				"stakeholder_key":    stringProp("Stakeholder the meeting was with"),
				"meeting_date":       stringProp("Meeting date, YYYY-MM-DD or RFC3339 (default: now)"),
				"agenda_topics":      stringListProp("Topics on the agenda"),
				"decisions_made":     objectListProp("Decisions, each an object such as {\"decision\": ..., \"owner\": ...}"),
				"action_items":       objectListProp("Action items, each an object such as {\"item\": ..., \"owner\": ..., \"due\": ...}"),
				"business_impact":    stringProp("Business impact of the meeting"),
				"next_session_prep":  stringProp("Notes to prepare for the next meeting"),
				"persona_activated":  stringProp("Advisory persona used during the meeting"),
				"outcome_rating":     numberProp("Meeting outcome, 1-5 (default: 3)"),
				"follow_up_required": map[string]any{"type": "boolean", "description": "Whether a follow-up is required"},
			},
		},
	}, handlers.StoreExecutiveSession)

	server.AddTool(mcp.Tool{
		Name:        "store_initiative",
		Description: "Create or update a strategic initiative by its key. Repeated calls with the same key update the same record.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"initiative_key":         stringProp("Natural key, e.g. 'PROJ-1'"),
				"initiative_name":        stringProp("Human readable name"),
				"assignee":               stringProp("Owner of the initiative"),
				"status":                 stringProp("Status, e.g. new, in_progress, at_risk, blocked, done (default: new)"),
				"priority":               stringProp("Priority label"),
				"business_value":         stringProp("Expected business value"),
				"risk_level":             stringProp("Risk level, e.g. green, yellow, red (default: green)"),
				"parent_initiative":      stringProp("Key of the parent initiative, set on creation only"),
				"resource_allocation":    objectListProp("Resource allocation entries"),
				"completion_probability": numberProp("Probability of completion, 0.0-1.0"),
				"budget_impact":          numberProp("Budget impact"),
			},
			Required: []string{"initiative_key"},
		},
	}, handlers.StoreInitiative)

	server.AddTool(mcp.Tool{
		Name:        "store_stakeholder_profile",
		Description: "Create or update a stakeholder profile by its key.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"stakeholder_key":       stringProp("Natural key, e.g. 'cto'"),
				"display_name":          stringProp("Display name"),
				"role_title":            stringProp("Role title"),
				"department":            stringProp("Department"),
				"communication_style":   stringProp("Preferred communication style"),
				"decision_criteria":     stringListProp("What this stakeholder weighs when deciding"),
				"preferred_personas":    stringListProp("Advisory personas that work well with this stakeholder"),
				"relationship_strength": numberProp("Relationship strength, 1-5 (default: 3)"),
			},
			Required: []string{"stakeholder_key"},
		},
	}, handlers.StoreStakeholderProfile)

	server.AddTool(mcp.Tool{
		Name:        "store_platform_metric",
		Description: "Record one platform metric measurement. Repeated measurements of a metric form a time series.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"metric_name":       stringProp("Metric name"),
				"intelligence_type": stringProp("Kind of intelligence, e.g. adoption, velocity, health"),
				"category":          stringProp("Category, e.g. design_system"),
				"value_numeric":     numberProp("Numeric value"),
				"value_text":        stringProp("Text value, for non-numeric metrics"),
				"unit":              stringProp("Unit of the numeric value"),
				"data_source":       stringProp("Where the measurement came from"),
				"measurement_date":  stringProp("Measurement date, YYYY-MM-DD (default: today)"),
				"trend_direction":   stringProp("Trend, e.g. improving, stable, declining (default: stable)"),
				"business_impact":   stringProp("Business impact"),
				"confidence_level":  stringProp("Confidence, e.g. low, medium, high (default: medium)"),
			},
			Required: []string{"metric_name"},
		},
	}, handlers.StorePlatformMetric)

	// Reads
	server.AddTool(mcp.Tool{
		Name:        "recall_executive_sessions",
		Description: "Recall executive sessions from a recent window, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"stakeholder_key": stringProp("Only sessions with this stakeholder"),
				"days":            numberProp("Window in days (default: configured recall window)"),
			},
		},
	}, handlers.RecallExecutiveSessions)

	server.AddTool(mcp.Tool{
		Name:        "recall_strategic_initiatives",
		Description: "List strategic initiatives, most recently updated first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"status":   stringProp("Only initiatives with this status"),
				"assignee": stringProp("Only initiatives with this assignee"),
			},
		},
	}, handlers.RecallStrategicInitiatives)

	server.AddTool(mcp.Tool{
		Name:        "recall_platform_intelligence",
		Description: "Recall platform metric measurements from a recent window, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"category":          stringProp("Only this category"),
				"intelligence_type": stringProp("Only this intelligence type"),
				"days":              numberProp("Window in days (default: configured recall window)"),
			},
		},
	}, handlers.RecallPlatformIntelligence)

	server.AddTool(mcp.Tool{
		Name:        "get_stakeholder_context",
		Description: "Get a stakeholder's profile together with their recent sessions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"stakeholder_key": stringProp("Stakeholder key"),
				"days":            numberProp("Session window in days (default: configured recall window)"),
			},
			Required: []string{"stakeholder_key"},
		},
	}, handlers.GetStakeholderContext)

	server.AddTool(mcp.Tool{
		Name:        "get_initiative_context",
		Description: "Get a single strategic initiative by key.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"initiative_key": stringProp("Initiative key"),
			},
			Required: []string{"initiative_key"},
		},
	}, handlers.GetInitiativeContext)

	server.AddTool(mcp.Tool{
		Name:        "get_memory_stats",
		Description: "Get row counts, sessions in the last 7 days, and active initiative count.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, handlers.GetMemoryStats)

	return handlers
}
