// ABOUTME: Status, statistics, and cleanup result types for the strategic memory store
// ABOUTME: Returned by introspection and maintenance operations
package models

// Overall database status values
const (
	StatusOperational    = "operational"
	StatusDegraded       = "degraded"
	StatusNotInitialized = "not_initialized"
)

// TableNotFound is the per-table error reported when a known table is missing
const TableNotFound = "table not found"

// TableStatus reports availability and row count for one table
type TableStatus struct {
	Available bool   `json:"available"`
	Count     int    `json:"count"`
	Error     string `json:"error,omitempty"`
}

// DatabaseStatus summarizes the database file and its tables
type DatabaseStatus struct {
	Path          string                 `json:"path"`
	Exists        bool                   `json:"exists"`
	SchemaVersion int                    `json:"schema_version"`
	Tables        map[string]TableStatus `json:"tables"`
	Status        string                 `json:"status"`
}

// MemoryStats holds row counts and derived aggregates
type MemoryStats struct {
	ExecutiveSessions    int `json:"executive_sessions"`
	StrategicInitiatives int `json:"strategic_initiatives"`
	StakeholderProfiles  int `json:"stakeholder_profiles"`
	PlatformIntelligence int `json:"platform_intelligence"`
	RecentSessionsLast7d int `json:"recent_sessions_last_7_days"`
	ActiveInitiatives    int `json:"active_initiatives"`
}

// CleanupResult holds rows deleted per table
type CleanupResult struct {
	RetentionDays        int   `json:"retention_days"`
	ExecutiveSessions    int64 `json:"executive_sessions"`
	PlatformIntelligence int64 `json:"platform_intelligence"`
}

// Total returns the number of rows deleted across tables
func (r *CleanupResult) Total() int64 {
	return r.ExecutiveSessions + r.PlatformIntelligence
}
