// ABOUTME: Strategic initiative storage operations for SQLite
// ABOUTME: Atomic upsert on initiative_key and filtered recall ordered by last update
package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/claudedirector/claudedirector/internal/models"
)

const initiativeColumns = `id, initiative_key, initiative_name, assignee, status, priority,
	business_value, risk_level, parent_initiative, resource_allocation,
	completion_probability, budget_impact, created_at, updated_at`

// InitiativeStore handles strategic initiative persistence
type InitiativeStore struct {
	db *DB
}

// NewInitiativeStore creates a new InitiativeStore
func NewInitiativeStore(db *DB) *InitiativeStore {
	return &InitiativeStore{db: db}
}

// Upsert inserts the initiative or, when initiative_key already exists,
// updates its mutable fields in place. It returns the row id, which is stable
// across updates. parent_initiative and created_at are set only on insert.
func (s *InitiativeStore) Upsert(initiative *models.StrategicInitiative, now time.Time) (int64, error) {
	allocation, err := encodeList(initiative.ResourceAllocation)
	if err != nil {
		return 0, err
	}

	ts := formatTimestamp(now)
	var id int64
	err = s.db.QueryRow(`
		INSERT INTO strategic_initiatives (
			initiative_key, initiative_name, assignee, status, priority,
			business_value, risk_level, parent_initiative, resource_allocation,
			completion_probability, budget_impact, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(initiative_key) DO UPDATE SET
			initiative_name = excluded.initiative_name,
			assignee = excluded.assignee,
			status = excluded.status,
			priority = excluded.priority,
			business_value = excluded.business_value,
			risk_level = excluded.risk_level,
			resource_allocation = excluded.resource_allocation,
			completion_probability = excluded.completion_probability,
			budget_impact = excluded.budget_impact,
			updated_at = excluded.updated_at
		RETURNING id
	`, initiative.InitiativeKey, initiative.InitiativeName, nullString(initiative.Assignee),
		initiative.Status, nullString(initiative.Priority), nullString(initiative.BusinessValue),
		initiative.RiskLevel, nullString(initiative.ParentInitiative), allocation,
		initiative.CompletionProbability, nullFloat(initiative.BudgetImpact), ts, ts).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Get retrieves an initiative by key, returning nil if not found
func (s *InitiativeStore) Get(initiativeKey string) (*models.StrategicInitiative, error) {
	row := s.db.QueryRow(`SELECT `+initiativeColumns+` FROM strategic_initiatives WHERE initiative_key = ?`, initiativeKey)
	initiative, err := scanInitiative(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return initiative, nil
}

// List returns initiatives matching every non-empty filter, most recently
// updated first.
func (s *InitiativeStore) List(status, assignee string) ([]models.StrategicInitiative, error) {
	var (
		conditions []string
		args       []any
	)
	if status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, status)
	}
	if assignee != "" {
		conditions = append(conditions, "assignee = ?")
		args = append(args, assignee)
	}

	query := `SELECT ` + initiativeColumns + ` FROM strategic_initiatives`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY updated_at DESC, id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	initiatives := []models.StrategicInitiative{}
	for rows.Next() {
		initiative, err := scanInitiative(rows)
		if err != nil {
			return nil, err
		}
		initiatives = append(initiatives, *initiative)
	}
	return initiatives, rows.Err()
}

// Count returns the number of initiatives
func (s *InitiativeStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM strategic_initiatives`).Scan(&n)
	return n, err
}

// CountByStatus returns the number of initiatives whose status is in statuses
func (s *InitiativeStore) CountByStatus(statuses []string) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(statuses)), ",")
	args := make([]any, len(statuses))
	for i, st := range statuses {
		args[i] = st
	}

	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM strategic_initiatives WHERE status IN (`+placeholders+`)`, args...).Scan(&n)
	return n, err
}

func scanInitiative(row rowScanner) (*models.StrategicInitiative, error) {
	var (
		initiative    models.StrategicInitiative
		assignee      sql.NullString
		priority      sql.NullString
		businessValue sql.NullString
		parent        sql.NullString
		allocation    sql.NullString
		budget        sql.NullFloat64
		createdAt     string
		updatedAt     string
	)

	err := row.Scan(&initiative.ID, &initiative.InitiativeKey, &initiative.InitiativeName,
		&assignee, &initiative.Status, &priority, &businessValue, &initiative.RiskLevel,
		&parent, &allocation, &initiative.CompletionProbability, &budget,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	initiative.Assignee = assignee.String
	initiative.Priority = priority.String
	initiative.BusinessValue = businessValue.String
	initiative.ParentInitiative = parent.String
	initiative.ResourceAllocation = decodeList[map[string]any](allocation)
	initiative.BudgetImpact = floatPtr(budget)
	initiative.CreatedAt = parseTimestamp(createdAt)
	initiative.UpdatedAt = parseTimestamp(updatedAt)

	return &initiative, nil
}
