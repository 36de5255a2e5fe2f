// ABOUTME: Storage is the strategic memory store facade over the table stores
// ABOUTME: Owns lazy database initialization, defaults, retries, and error taxonomy
package sqlite

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/claudedirector/claudedirector/internal/models"
	"github.com/claudedirector/claudedirector/internal/util"
)

// Recall and retention windows applied when a caller passes a non-positive value
const (
	DefaultRecallDays    = 90
	DefaultRetentionDays = 365
	recentSessionDays    = 7
)

const (
	writeAttempts  = 3
	writeBaseDelay = 25 * time.Millisecond
)

// Storage manages all strategic memory persistence. The database file and its
// schema are created on the first operation, not at construction.
type Storage struct {
	path string

	mu           sync.Mutex
	db           *DB
	sessions     *SessionStore
	initiatives  *InitiativeStore
	stakeholders *StakeholderStore
	intelligence *IntelligenceStore

	logger *log.Logger
	now    func() time.Time
}

// NewStorage returns storage at the default database path
func NewStorage() *Storage {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath returns storage backed by the database file at dbPath.
// The file need not exist yet.
func NewStorageWithPath(dbPath string) *Storage {
	return &Storage{
		path:   dbPath,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, err
	}
	s := NewStorageWithPath(inMemoryPath)
	s.attach(db)
	return s, nil
}

// SetLogger sets the logger used for debug output
func (s *Storage) SetLogger(logger *log.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.path
}

// Init creates the database file and applies the schema if needed. Every
// operation calls it implicitly; calling it up front surfaces an InitError
// before any work is attempted.
func (s *Storage) Init() error {
	_, err := s.ensure()
	return err
}

func (s *Storage) ensure() (*DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	open := Open
	if s.path == inMemoryPath {
		// A closed in-memory storage comes back empty on one pinned connection.
		open = func(string) (*DB, error) { return OpenInMemory() }
	}
	db, err := open(s.path)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("opened strategic memory", "path", s.path, "schema_version", SchemaVersion)
	s.attach(db)
	return db, nil
}

func (s *Storage) attach(db *DB) {
	s.db = db
	s.sessions = NewSessionStore(db)
	s.initiatives = NewInitiativeStore(db)
	s.stakeholders = NewStakeholderStore(db)
	s.intelligence = NewIntelligenceStore(db)
}

// Close closes the database connection if one was opened
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// write runs a single-statement write, retrying transient lock contention.
func (s *Storage) write(op string, fn func() (int64, error)) (int64, error) {
	if _, err := s.ensure(); err != nil {
		return 0, err
	}

	var id int64
	attempt := 0
	err := util.Retry(writeAttempts, writeBaseDelay, isBusy, func() error {
		attempt++
		if attempt > 1 {
			s.logger.Debug("retrying locked write", "op", op, "attempt", attempt)
		}
		var err error
		id, err = fn()
		return err
	})
	if err != nil {
		return 0, queryError(op, err)
	}
	return id, nil
}

// StoreExecutiveSession inserts a session and returns its new id
func (s *Storage) StoreExecutiveSession(session *models.ExecutiveSession) (int64, error) {
	now := s.now()
	session.ApplyDefaults(now)
	id, err := s.write("store executive session", func() (int64, error) {
		return s.sessions.Save(session, now)
	})
	if err != nil {
		return 0, err
	}
	session.ID = id
	session.CreatedAt = now
	return id, nil
}

// StoreInitiative upserts an initiative on initiative_key and returns its id.
// The id is the same on insert and on every later update of the key.
func (s *Storage) StoreInitiative(initiative *models.StrategicInitiative) (int64, error) {
	now := s.now()
	initiative.ApplyDefaults()
	id, err := s.write("store initiative", func() (int64, error) {
		return s.initiatives.Upsert(initiative, now)
	})
	if err != nil {
		return 0, err
	}
	initiative.ID = id
	initiative.UpdatedAt = now
	return id, nil
}

// StoreStakeholderProfile upserts a profile on stakeholder_key and returns its id
func (s *Storage) StoreStakeholderProfile(profile *models.StakeholderProfile) (int64, error) {
	now := s.now()
	profile.ApplyDefaults()
	id, err := s.write("store stakeholder profile", func() (int64, error) {
		return s.stakeholders.Upsert(profile, now)
	})
	if err != nil {
		return 0, err
	}
	profile.ID = id
	profile.UpdatedAt = now
	return id, nil
}

// StorePlatformMetric inserts a metric and returns its new id. A missing
// measurement date becomes today.
func (s *Storage) StorePlatformMetric(metric *models.PlatformIntelligence) (int64, error) {
	now := s.now()
	metric.ApplyDefaults(now)
	id, err := s.write("store platform metric", func() (int64, error) {
		return s.intelligence.Save(metric, now)
	})
	if err != nil {
		return 0, err
	}
	metric.ID = id
	metric.CreatedAt = now
	return id, nil
}

// GetExecutiveSession returns one session by id, or nil with no error when
// the id is unknown.
func (s *Storage) GetExecutiveSession(id int64) (*models.ExecutiveSession, error) {
	if _, err := s.ensure(); err != nil {
		return nil, err
	}
	session, err := s.sessions.GetByID(id)
	if err != nil {
		return nil, queryError("get executive session", err)
	}
	return session, nil
}

// RecallExecutiveSessions returns sessions from the last days days, newest
// first, optionally for one stakeholder.
func (s *Storage) RecallExecutiveSessions(stakeholderKey string, days int) ([]models.ExecutiveSession, error) {
	if _, err := s.ensure(); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = DefaultRecallDays
	}
	sessions, err := s.sessions.Recall(stakeholderKey, windowStart(s.now(), days))
	if err != nil {
		return nil, queryError("recall executive sessions", err)
	}
	return sessions, nil
}

// RecallStrategicInitiatives returns initiatives matching every non-empty
// filter, most recently updated first.
func (s *Storage) RecallStrategicInitiatives(status, assignee string) ([]models.StrategicInitiative, error) {
	if _, err := s.ensure(); err != nil {
		return nil, err
	}
	initiatives, err := s.initiatives.List(status, assignee)
	if err != nil {
		return nil, queryError("recall strategic initiatives", err)
	}
	return initiatives, nil
}

// RecallPlatformIntelligence returns metrics measured in the last days days,
// newest first.
func (s *Storage) RecallPlatformIntelligence(category, intelligenceType string, days int) ([]models.PlatformIntelligence, error) {
	if _, err := s.ensure(); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = DefaultRecallDays
	}
	metrics, err := s.intelligence.Recall(category, intelligenceType, windowStart(s.now(), days))
	if err != nil {
		return nil, queryError("recall platform intelligence", err)
	}
	return metrics, nil
}

// GetStakeholderContext joins a stakeholder's profile with their recent
// sessions. A missing profile is not an error.
func (s *Storage) GetStakeholderContext(stakeholderKey string, days int) (*models.StakeholderContext, error) {
	profile, err := s.GetStakeholderProfile(stakeholderKey)
	if err != nil {
		return nil, err
	}
	sessions, err := s.RecallExecutiveSessions(stakeholderKey, days)
	if err != nil {
		return nil, err
	}
	return &models.StakeholderContext{
		StakeholderKey: stakeholderKey,
		Profile:        profile,
		RecentSessions: sessions,
		SessionCount:   len(sessions),
	}, nil
}

// GetInitiativeContext returns the initiative for initiativeKey, or nil with
// no error when the key is unknown.
func (s *Storage) GetInitiativeContext(initiativeKey string) (*models.StrategicInitiative, error) {
	if _, err := s.ensure(); err != nil {
		return nil, err
	}
	initiative, err := s.initiatives.Get(initiativeKey)
	if err != nil {
		return nil, queryError("get initiative context", err)
	}
	return initiative, nil
}

// GetStakeholderProfile returns the profile for stakeholderKey, or nil with
// no error when the key is unknown.
func (s *Storage) GetStakeholderProfile(stakeholderKey string) (*models.StakeholderProfile, error) {
	if _, err := s.ensure(); err != nil {
		return nil, err
	}
	profile, err := s.stakeholders.Get(stakeholderKey)
	if err != nil {
		return nil, queryError("get stakeholder profile", err)
	}
	return profile, nil
}

// ListStakeholderProfiles returns every stored profile
func (s *Storage) ListStakeholderProfiles() ([]models.StakeholderProfile, error) {
	if _, err := s.ensure(); err != nil {
		return nil, err
	}
	profiles, err := s.stakeholders.List()
	if err != nil {
		return nil, queryError("list stakeholder profiles", err)
	}
	return profiles, nil
}
