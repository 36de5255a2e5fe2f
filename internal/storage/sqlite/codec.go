// ABOUTME: Column encoding helpers shared by the table stores
// ABOUTME: Fixed-width local timestamps and JSON list columns that never leak raw text
package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Fixed-width layouts keep lexical order equal to chronological order, so
// window queries can compare the stored text directly.
const (
	timestampLayout = "2006-01-02 15:04:05.000000"
	dateLayout      = "2006-01-02"
)

func formatTimestamp(t time.Time) string {
	return t.In(time.Local).Format(timestampLayout)
}

func formatDate(t time.Time) string {
	return t.In(time.Local).Format(dateLayout)
}

func parseTimestamp(s string) time.Time {
	if t, err := time.ParseInLocation(timestampLayout, s, time.Local); err == nil {
		return t
	}
	// Rows written by hand or by older tools may carry a bare date or RFC3339.
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func parseDate(s string) time.Time {
	if len(s) >= len(dateLayout) {
		if t, err := time.ParseInLocation(dateLayout, s[:len(dateLayout)], time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// startOfDay returns local midnight of the day containing t.
func startOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// windowStart returns local midnight days calendar days before now.
func windowStart(now time.Time, days int) time.Time {
	return startOfDay(now).AddDate(0, 0, -days)
}

// encodeList serializes a list column. A nil list is stored as [] so reads
// always find valid JSON.
func encodeList[T any](items []T) (string, error) {
	if items == nil {
		return "[]", nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeList deserializes a list column, returning an empty list for NULL,
// empty, or malformed values.
func decodeList[T any](raw sql.NullString) []T {
	out := []T{}
	if !raw.Valid || raw.String == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil || out == nil {
		return []T{}
	}
	return out
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
