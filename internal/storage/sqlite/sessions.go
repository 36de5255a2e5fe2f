// ABOUTME: Executive session storage operations for SQLite
// ABOUTME: Append-only inserts and time-windowed recall with JSON list columns
package sqlite

import (
	"database/sql"
	"time"

	"github.com/claudedirector/claudedirector/internal/models"
)

const sessionColumns = `id, session_type, stakeholder_key, meeting_date, agenda_topics,
	decisions_made, action_items, business_impact, next_session_prep,
	persona_activated, outcome_rating, follow_up_required, created_at`

// SessionStore handles executive session persistence
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Save inserts a session and returns its new id. Defaults must already be
// applied by the caller.
func (s *SessionStore) Save(session *models.ExecutiveSession, now time.Time) (int64, error) {
	agenda, err := encodeList(session.AgendaTopics)
	if err != nil {
		return 0, err
	}
	decisions, err := encodeList(session.DecisionsMade)
	if err != nil {
		return 0, err
	}
	actions, err := encodeList(session.ActionItems)
	if err != nil {
		return 0, err
	}

	result, err := s.db.Exec(`
		INSERT INTO executive_sessions (
			session_type, stakeholder_key, meeting_date, agenda_topics,
			decisions_made, action_items, business_impact, next_session_prep,
			persona_activated, outcome_rating, follow_up_required, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, session.SessionType, nullString(session.StakeholderKey), formatTimestamp(session.MeetingDate),
		agenda, decisions, actions, nullString(session.BusinessImpact),
		nullString(session.NextSessionPrep), nullString(session.PersonaActivated),
		session.OutcomeRating, boolToInt(session.FollowUpRequired), formatTimestamp(now))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetByID retrieves a session, returning nil if not found
func (s *SessionStore) GetByID(id int64) (*models.ExecutiveSession, error) {
	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM executive_sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Recall returns sessions with meeting_date on or after since, newest first,
// optionally narrowed to one stakeholder.
func (s *SessionStore) Recall(stakeholderKey string, since time.Time) ([]models.ExecutiveSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM executive_sessions WHERE meeting_date >= ?`
	args := []any{formatTimestamp(since)}
	if stakeholderKey != "" {
		query += ` AND stakeholder_key = ?`
		args = append(args, stakeholderKey)
	}
	query += ` ORDER BY meeting_date DESC, id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	sessions := []models.ExecutiveSession{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

// ListAll returns every session ordered by meeting date
func (s *SessionStore) ListAll() ([]models.ExecutiveSession, error) {
	return s.Recall("", time.Time{})
}

// Count returns the number of sessions
func (s *SessionStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM executive_sessions`).Scan(&n)
	return n, err
}

// CountSince returns the number of sessions with meeting_date on or after since
func (s *SessionStore) CountSince(since time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM executive_sessions WHERE meeting_date >= ?`,
		formatTimestamp(since)).Scan(&n)
	return n, err
}

func scanSession(row rowScanner) (*models.ExecutiveSession, error) {
	var (
		session        models.ExecutiveSession
		stakeholderKey sql.NullString
		meetingDate    string
		agenda         sql.NullString
		decisions      sql.NullString
		actions        sql.NullString
		impact         sql.NullString
		prep           sql.NullString
		persona        sql.NullString
		followUp       int
		createdAt      string
	)

	err := row.Scan(&session.ID, &session.SessionType, &stakeholderKey, &meetingDate,
		&agenda, &decisions, &actions, &impact, &prep, &persona,
		&session.OutcomeRating, &followUp, &createdAt)
	if err != nil {
		return nil, err
	}

	session.StakeholderKey = stakeholderKey.String
	session.MeetingDate = parseTimestamp(meetingDate)
	session.AgendaTopics = decodeList[string](agenda)
	session.DecisionsMade = decodeList[map[string]any](decisions)
	session.ActionItems = decodeList[map[string]any](actions)
	session.BusinessImpact = impact.String
	session.NextSessionPrep = prep.String
	session.PersonaActivated = persona.String
	session.FollowUpRequired = followUp != 0
	session.CreatedAt = parseTimestamp(createdAt)

	return &session, nil
}
