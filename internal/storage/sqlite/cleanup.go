// ABOUTME: Retention cleanup for strategic memory
// ABOUTME: Deletes aged metrics and poorly rated aged sessions in one transaction
package sqlite

import (
	"github.com/claudedirector/claudedirector/internal/models"
	"github.com/claudedirector/claudedirector/internal/util"
)

// CleanupMemory deletes platform intelligence measured before the retention
// window, and executive sessions that met before the window with an outcome
// rating below models.RetainedOutcomeRating. Well-rated sessions are kept
// regardless of age. Deletion is permanent.
func (s *Storage) CleanupMemory(retentionDays int) (*models.CleanupResult, error) {
	db, err := s.ensure()
	if err != nil {
		return nil, err
	}
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}

	cutoff := windowStart(s.now(), retentionDays)
	result := &models.CleanupResult{RetentionDays: retentionDays}

	err = util.Retry(writeAttempts, writeBaseDelay, isBusy, func() error {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.Exec(`DELETE FROM platform_intelligence WHERE measurement_date < ?`, formatDate(cutoff))
		if err != nil {
			return err
		}
		metrics, err := res.RowsAffected()
		if err != nil {
			return err
		}

		res, err = tx.Exec(`DELETE FROM executive_sessions WHERE meeting_date < ? AND outcome_rating < ?`,
			formatTimestamp(cutoff), models.RetainedOutcomeRating)
		if err != nil {
			return err
		}
		sessions, err := res.RowsAffected()
		if err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}
		result.PlatformIntelligence = metrics
		result.ExecutiveSessions = sessions
		return nil
	})
	if err != nil {
		return nil, queryError("cleanup memory", err)
	}

	s.logger.Info("cleaned up strategic memory",
		"retention_days", retentionDays,
		"executive_sessions", result.ExecutiveSessions,
		"platform_intelligence", result.PlatformIntelligence)
	return result, nil
}
