// ABOUTME: Database status and memory statistics for strategic memory
// ABOUTME: Status isolates per-table failures so it works on partial databases
package sqlite

import (
	"fmt"
	"os"

	"github.com/claudedirector/claudedirector/internal/models"
)

// GetDatabaseStatus reports the database path, whether the file exists, and a
// row count for every known table. A missing table is reported on that table
// only. The call never creates the database file and opens an existing one
// read-only, so legacy files keep their journal mode.
func (s *Storage) GetDatabaseStatus() (*models.DatabaseStatus, error) {
	status := &models.DatabaseStatus{
		Path:   s.path,
		Tables: make(map[string]models.TableStatus, len(KnownTables)),
	}

	s.mu.Lock()
	db := s.db
	s.mu.Unlock()

	if db == nil {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			for _, table := range KnownTables {
				status.Tables[table] = models.TableStatus{Error: models.TableNotFound}
			}
			status.Status = models.StatusNotInitialized
			return status, nil
		}

		conn, err := openReadOnly(s.path)
		if err != nil {
			return nil, &InitError{Op: "open database", Path: s.path, Err: err}
		}
		db = &DB{conn: conn, path: s.path}
		defer func() { _ = db.Close() }()
	}

	status.Exists = true
	if ok, err := db.tableExists(metadataTable); err == nil && ok {
		if v, err := db.SchemaVersion(); err == nil {
			status.SchemaVersion = v
		}
	}

	missing := 0
	for _, table := range KnownTables {
		ts := tableStatus(db, table)
		if !ts.Available {
			missing++
		}
		status.Tables[table] = ts
	}

	if missing == 0 {
		status.Status = models.StatusOperational
	} else {
		status.Status = models.StatusDegraded
	}
	return status, nil
}

func tableStatus(db *DB, table string) models.TableStatus {
	exists, err := db.tableExists(table)
	if err != nil {
		return models.TableStatus{Error: err.Error()}
	}
	if !exists {
		return models.TableStatus{Error: models.TableNotFound}
	}

	var n int
	// table comes from KnownTables, never from input.
	if err := db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&n); err != nil {
		return models.TableStatus{Error: err.Error()}
	}
	return models.TableStatus{Available: true, Count: n}
}

// GetMemoryStats returns row counts per table plus sessions in the last seven
// days and initiatives whose status is in models.ActiveInitiativeStatuses.
func (s *Storage) GetMemoryStats() (*models.MemoryStats, error) {
	if _, err := s.ensure(); err != nil {
		return nil, err
	}

	var (
		stats models.MemoryStats
		err   error
	)
	if stats.ExecutiveSessions, err = s.sessions.Count(); err != nil {
		return nil, queryError("count executive sessions", err)
	}
	if stats.StrategicInitiatives, err = s.initiatives.Count(); err != nil {
		return nil, queryError("count strategic initiatives", err)
	}
	if stats.StakeholderProfiles, err = s.stakeholders.Count(); err != nil {
		return nil, queryError("count stakeholder profiles", err)
	}
	if stats.PlatformIntelligence, err = s.intelligence.Count(); err != nil {
		return nil, queryError("count platform intelligence", err)
	}
	if stats.RecentSessionsLast7d, err = s.sessions.CountSince(windowStart(s.now(), recentSessionDays)); err != nil {
		return nil, queryError("count recent sessions", err)
	}
	if stats.ActiveInitiatives, err = s.initiatives.CountByStatus(models.ActiveInitiativeStatuses); err != nil {
		return nil, queryError("count active initiatives", err)
	}
	return &stats, nil
}
