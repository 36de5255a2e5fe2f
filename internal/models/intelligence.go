// ABOUTME: PlatformIntelligence is one measurement in an append-only metric time series
// ABOUTME: Multiple rows per metric over time form a trend
package models

import (
	"errors"
	"strings"
	"time"
)

// Defaults for omitted platform intelligence fields
const (
	DefaultTrendDirection  = "stable"
	DefaultConfidenceLevel = "medium"
)

// PlatformIntelligence represents a platform metric measurement
type PlatformIntelligence struct {
	ID               int64     `json:"id" yaml:"id"`
	IntelligenceType string    `json:"intelligence_type" yaml:"intelligence_type"`
	Category         string    `json:"category" yaml:"category"`
	MetricName       string    `json:"metric_name" yaml:"metric_name"`
	ValueNumeric     *float64  `json:"value_numeric,omitempty" yaml:"value_numeric,omitempty"`
	ValueText        *string   `json:"value_text,omitempty" yaml:"value_text,omitempty"`
	Unit             string    `json:"unit,omitempty" yaml:"unit,omitempty"`
	DataSource       string    `json:"data_source,omitempty" yaml:"data_source,omitempty"`
	MeasurementDate  time.Time `json:"measurement_date" yaml:"measurement_date"`
	TrendDirection   string    `json:"trend_direction" yaml:"trend_direction"`
	BusinessImpact   string    `json:"business_impact,omitempty" yaml:"business_impact,omitempty"`
	ConfidenceLevel  string    `json:"confidence_level" yaml:"confidence_level"`
	CreatedAt        time.Time `json:"created_at" yaml:"created_at"`
}

// ApplyDefaults fills omitted fields. A zero MeasurementDate becomes the
// local calendar day of now.
func (p *PlatformIntelligence) ApplyDefaults(now time.Time) {
	if p.MeasurementDate.IsZero() {
		y, m, d := now.Date()
		p.MeasurementDate = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}
	if p.TrendDirection == "" {
		p.TrendDirection = DefaultTrendDirection
	}
	if p.ConfidenceLevel == "" {
		p.ConfidenceLevel = DefaultConfidenceLevel
	}
}

// Validate requires a metric name
func (p *PlatformIntelligence) Validate() error {
	if strings.TrimSpace(p.MetricName) == "" {
		return errors.New("metric_name cannot be empty")
	}
	return nil
}
