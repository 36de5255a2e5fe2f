// ABOUTME: Stakeholder profile storage operations for SQLite
// ABOUTME: Atomic upsert on stakeholder_key with JSON array serialization
package sqlite

import (
	"database/sql"
	"time"

	"github.com/claudedirector/claudedirector/internal/models"
)

const stakeholderColumns = `id, stakeholder_key, display_name, role_title, department,
	communication_style, decision_criteria, preferred_personas,
	relationship_strength, created_at, updated_at`

// StakeholderStore handles stakeholder profile persistence
type StakeholderStore struct {
	db *DB
}

// NewStakeholderStore creates a new StakeholderStore
func NewStakeholderStore(db *DB) *StakeholderStore {
	return &StakeholderStore{db: db}
}

// Upsert saves or updates a profile keyed on stakeholder_key and returns the
// row id.
func (s *StakeholderStore) Upsert(profile *models.StakeholderProfile, now time.Time) (int64, error) {
	criteria, err := encodeList(profile.DecisionCriteria)
	if err != nil {
		return 0, err
	}
	personas, err := encodeList(profile.PreferredPersonas)
	if err != nil {
		return 0, err
	}

	ts := formatTimestamp(now)
	var id int64
	err = s.db.QueryRow(`
		INSERT INTO stakeholder_profiles (
			stakeholder_key, display_name, role_title, department,
			communication_style, decision_criteria, preferred_personas,
			relationship_strength, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(stakeholder_key) DO UPDATE SET
			display_name = excluded.display_name,
			role_title = excluded.role_title,
			department = excluded.department,
			communication_style = excluded.communication_style,
			decision_criteria = excluded.decision_criteria,
			preferred_personas = excluded.preferred_personas,
			relationship_strength = excluded.relationship_strength,
			updated_at = excluded.updated_at
		RETURNING id
	`, profile.StakeholderKey, profile.DisplayName, nullString(profile.RoleTitle),
		nullString(profile.Department), nullString(profile.CommunicationStyle),
		criteria, personas, profile.RelationshipStrength, ts, ts).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Get retrieves a profile by key, returning nil if not found
func (s *StakeholderStore) Get(stakeholderKey string) (*models.StakeholderProfile, error) {
	row := s.db.QueryRow(`SELECT `+stakeholderColumns+` FROM stakeholder_profiles WHERE stakeholder_key = ?`, stakeholderKey)
	profile, err := scanStakeholder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// List returns all profiles ordered by display name
func (s *StakeholderStore) List() ([]models.StakeholderProfile, error) {
	rows, err := s.db.Query(`SELECT ` + stakeholderColumns + ` FROM stakeholder_profiles ORDER BY display_name, stakeholder_key`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	profiles := []models.StakeholderProfile{}
	for rows.Next() {
		profile, err := scanStakeholder(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

// Count returns the number of profiles
func (s *StakeholderStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM stakeholder_profiles`).Scan(&n)
	return n, err
}

func scanStakeholder(row rowScanner) (*models.StakeholderProfile, error) {
	var (
		profile   models.StakeholderProfile
		role      sql.NullString
		dept      sql.NullString
		style     sql.NullString
		criteria  sql.NullString
		personas  sql.NullString
		createdAt string
		updatedAt string
	)

	err := row.Scan(&profile.ID, &profile.StakeholderKey, &profile.DisplayName, &role, &dept,
		&style, &criteria, &personas, &profile.RelationshipStrength, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	profile.RoleTitle = role.String
	profile.Department = dept.String
	profile.CommunicationStyle = style.String
	profile.DecisionCriteria = decodeList[string](criteria)
	profile.PreferredPersonas = decodeList[string](personas)
	profile.CreatedAt = parseTimestamp(createdAt)
	profile.UpdatedAt = parseTimestamp(updatedAt)

	return &profile, nil
}
