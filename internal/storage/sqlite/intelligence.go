// ABOUTME: Platform intelligence storage operations for SQLite
// ABOUTME: Append-only metric inserts and time-windowed, filtered recall
package sqlite

import (
	"database/sql"
	"time"

	"github.com/claudedirector/claudedirector/internal/models"
)

const intelligenceColumns = `id, intelligence_type, category, metric_name, value_numeric,
	value_text, unit, data_source, measurement_date, trend_direction,
	business_impact, confidence_level, created_at`

// IntelligenceStore handles platform intelligence persistence
type IntelligenceStore struct {
	db *DB
}

// NewIntelligenceStore creates a new IntelligenceStore
func NewIntelligenceStore(db *DB) *IntelligenceStore {
	return &IntelligenceStore{db: db}
}

// Save inserts a metric and returns its new id
func (s *IntelligenceStore) Save(metric *models.PlatformIntelligence, now time.Time) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO platform_intelligence (
			intelligence_type, category, metric_name, value_numeric, value_text,
			unit, data_source, measurement_date, trend_direction,
			business_impact, confidence_level, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, metric.IntelligenceType, metric.Category, metric.MetricName,
		nullFloat(metric.ValueNumeric), nullStringPtr(metric.ValueText),
		nullString(metric.Unit), nullString(metric.DataSource),
		formatDate(metric.MeasurementDate), metric.TrendDirection,
		nullString(metric.BusinessImpact), metric.ConfidenceLevel, formatTimestamp(now))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Recall returns metrics measured on or after since, newest first, filtered
// by every non-empty argument.
func (s *IntelligenceStore) Recall(category, intelligenceType string, since time.Time) ([]models.PlatformIntelligence, error) {
	query := `SELECT ` + intelligenceColumns + ` FROM platform_intelligence WHERE measurement_date >= ?`
	args := []any{formatDate(since)}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	if intelligenceType != "" {
		query += ` AND intelligence_type = ?`
		args = append(args, intelligenceType)
	}
	query += ` ORDER BY measurement_date DESC, id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	metrics := []models.PlatformIntelligence{}
	for rows.Next() {
		metric, err := scanIntelligence(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *metric)
	}
	return metrics, rows.Err()
}

// ListAll returns every metric, newest first
func (s *IntelligenceStore) ListAll() ([]models.PlatformIntelligence, error) {
	return s.Recall("", "", time.Time{})
}

// Count returns the number of metrics
func (s *IntelligenceStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM platform_intelligence`).Scan(&n)
	return n, err
}

func scanIntelligence(row rowScanner) (*models.PlatformIntelligence, error) {
	var (
		metric    models.PlatformIntelligence
		value     sql.NullFloat64
		text      sql.NullString
		unit      sql.NullString
		source    sql.NullString
		measured  string
		impact    sql.NullString
		createdAt string
	)

	err := row.Scan(&metric.ID, &metric.IntelligenceType, &metric.Category, &metric.MetricName,
		&value, &text, &unit, &source, &measured, &metric.TrendDirection,
		&impact, &metric.ConfidenceLevel, &createdAt)
	if err != nil {
		return nil, err
	}

	metric.ValueNumeric = floatPtr(value)
	metric.ValueText = stringPtr(text)
	metric.Unit = unit.String
	metric.DataSource = source.String
	metric.MeasurementDate = parseDate(measured)
	metric.BusinessImpact = impact.String
	metric.CreatedAt = parseTimestamp(createdAt)

	return &metric, nil
}
