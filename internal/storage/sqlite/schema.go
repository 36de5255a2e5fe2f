// ABOUTME: SQLite database schema for strategic memory storage
// ABOUTME: Creates all tables, indexes, the metadata sentinel, and forward migrations
package sqlite

// Table names
const (
	metadataTable     = "schema_metadata"
	sessionsTable     = "executive_sessions"
	initiativesTable  = "strategic_initiatives"
	stakeholdersTable = "stakeholder_profiles"
	intelligenceTable = "platform_intelligence"
)

// KnownTables lists the entity tables checked by status reporting, in display order
var KnownTables = []string{
	sessionsTable,
	initiativesTable,
	stakeholdersTable,
	intelligenceTable,
}

// Schema contains all SQL statements for database initialization at the
// current SchemaVersion.
const Schema = `
-- Sentinel: presence of this table means the schema has been applied
CREATE TABLE IF NOT EXISTS schema_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

-- Executive sessions (append-only)
CREATE TABLE IF NOT EXISTS executive_sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_type TEXT NOT NULL DEFAULT '',
    stakeholder_key TEXT,
    meeting_date TEXT NOT NULL,
    agenda_topics TEXT NOT NULL DEFAULT '[]',
    decisions_made TEXT NOT NULL DEFAULT '[]',
    action_items TEXT NOT NULL DEFAULT '[]',
    business_impact TEXT,
    next_session_prep TEXT,
    persona_activated TEXT,
    outcome_rating INTEGER NOT NULL DEFAULT 3,
    follow_up_required INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

-- Strategic initiatives (upsert on initiative_key)
CREATE TABLE IF NOT EXISTS strategic_initiatives (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    initiative_key TEXT NOT NULL UNIQUE,
    initiative_name TEXT NOT NULL DEFAULT '',
    assignee TEXT,
    status TEXT NOT NULL DEFAULT 'new',
    priority TEXT,
    business_value TEXT,
    risk_level TEXT NOT NULL DEFAULT 'green',
    parent_initiative TEXT,
    resource_allocation TEXT NOT NULL DEFAULT '[]',
    completion_probability REAL NOT NULL DEFAULT 0,
    budget_impact REAL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

-- Stakeholder profiles (upsert on stakeholder_key)
CREATE TABLE IF NOT EXISTS stakeholder_profiles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    stakeholder_key TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL DEFAULT '',
    role_title TEXT,
    department TEXT,
    communication_style TEXT,
    decision_criteria TEXT NOT NULL DEFAULT '[]',
    preferred_personas TEXT NOT NULL DEFAULT '[]',
    relationship_strength INTEGER NOT NULL DEFAULT 3,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

-- Platform intelligence (append-only time series)
CREATE TABLE IF NOT EXISTS platform_intelligence (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    intelligence_type TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    metric_name TEXT NOT NULL,
    value_numeric REAL,
    value_text TEXT,
    unit TEXT,
    data_source TEXT,
    measurement_date TEXT NOT NULL,
    trend_direction TEXT NOT NULL DEFAULT 'stable',
    business_impact TEXT,
    confidence_level TEXT NOT NULL DEFAULT 'medium',
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_stakeholder ON executive_sessions(stakeholder_key);
CREATE INDEX IF NOT EXISTS idx_initiatives_status ON strategic_initiatives(status);
CREATE INDEX IF NOT EXISTS idx_initiatives_assignee ON strategic_initiatives(assignee);
CREATE INDEX IF NOT EXISTS idx_intelligence_category ON platform_intelligence(category, intelligence_type);
CREATE INDEX IF NOT EXISTS idx_sessions_meeting_date ON executive_sessions(meeting_date DESC);
CREATE INDEX IF NOT EXISTS idx_intelligence_measured ON platform_intelligence(measurement_date DESC);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 2

// migrations upgrade a database stamped with version-1 to version. Fresh
// databases get Schema directly and skip these.
var migrations = map[int]string{
	2: `
CREATE INDEX IF NOT EXISTS idx_sessions_meeting_date ON executive_sessions(meeting_date DESC);
CREATE INDEX IF NOT EXISTS idx_intelligence_measured ON platform_intelligence(measurement_date DESC);
`,
}
