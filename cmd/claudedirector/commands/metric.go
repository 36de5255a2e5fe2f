// ABOUTME: CLI commands to record and list platform metrics
// ABOUTME: Each measurement is appended; repeated names form a time series
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/claudedirector/claudedirector/internal/models"
	"github.com/claudedirector/claudedirector/internal/storage/sqlite"
)

var (
	metricType       string
	metricCategory   string
	metricValue      float64
	metricText       string
	metricUnit       string
	metricSource     string
	metricDate       string
	metricTrend      string
	metricImpact     string
	metricConfidence string
	metricDays       int
)

// NewMetricCmd creates the metric command
func NewMetricCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metric",
		Short: "Record and recall platform metrics",
		Long: `Record and recall platform metrics.

Every measurement is kept; repeated measurements of one metric form a trend.`,
	}

	addCmd := &cobra.Command{
		Use:   "add <metric-name>",
		Short: "Record a metric measurement",
		Long: `Record a metric measurement.

Examples:
  claudedirector metric add adoption --category design_system --value 72.5 --unit % --trend improving
  claudedirector metric add api_health --category platform --text green`,
		Args: cobra.ExactArgs(1),
		RunE: runMetricAdd,
	}
	addCmd.Flags().StringVar(&metricType, "type", "", "Intelligence type (e.g. adoption, velocity)")
	addCmd.Flags().StringVar(&metricCategory, "category", "", "Category (e.g. design_system)")
	addCmd.Flags().Float64Var(&metricValue, "value", 0, "Numeric value")
	addCmd.Flags().StringVar(&metricText, "text", "", "Text value")
	addCmd.Flags().StringVar(&metricUnit, "unit", "", "Unit of the value")
	addCmd.Flags().StringVar(&metricSource, "source", "", "Data source")
	addCmd.Flags().StringVar(&metricDate, "date", "", "Measurement date, YYYY-MM-DD (default: today)")
	addCmd.Flags().StringVar(&metricTrend, "trend", "", "Trend direction (default: stable)")
	addCmd.Flags().StringVar(&metricImpact, "impact", "", "Business impact")
	addCmd.Flags().StringVar(&metricConfidence, "confidence", "", "Confidence level (default: medium)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent metric measurements",
		Long: `List metric measurements from a recent window, newest first.

Examples:
  claudedirector metric list --category design_system
  claudedirector metric list --type adoption --days 180`,
		Args: cobra.NoArgs,
		RunE: runMetricList,
	}
	listCmd.Flags().StringVar(&metricCategory, "category", "", "Only this category")
	listCmd.Flags().StringVar(&metricType, "type", "", "Only this intelligence type")
	listCmd.Flags().IntVar(&metricDays, "days", 0, "Window in days (default: CLAUDEDIRECTOR_RECALL_DAYS)")

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}

func runMetricAdd(cmd *cobra.Command, args []string) error {
	measured, err := parseDate(metricDate)
	if err != nil {
		return err
	}

	metric := &models.PlatformIntelligence{
		IntelligenceType: metricType,
		Category:         metricCategory,
		MetricName:       args[0],
		Unit:             metricUnit,
		DataSource:       metricSource,
		MeasurementDate:  measured,
		TrendDirection:   metricTrend,
		BusinessImpact:   metricImpact,
		ConfidenceLevel:  metricConfidence,
	}
	if cmd.Flags().Changed("value") {
		v := metricValue
		metric.ValueNumeric = &v
	}
	if metricText != "" {
		text := metricText
		metric.ValueText = &text
	}
	if err := metric.Validate(); err != nil {
		return err
	}

	store, _, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id, err := store.StorePlatformMetric(metric)
	if err != nil {
		return storageError("storing metric", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"metric_id": id})
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s = %s on %s (id %d)\n",
			metric.MetricName, sqlite.FormatMetricValue(*metric), metric.MeasurementDate.Format("2006-01-02"), id)
	}
	return nil
}

func runMetricList(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	days := metricDays
	if days <= 0 {
		days = cfg.RecallDays
	}

	metrics, err := store.RecallPlatformIntelligence(metricCategory, metricType, days)
	if err != nil {
		return storageError("recalling metrics", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), metrics)
	}

	if len(metrics) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No metrics in the last %d days\n", days)
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DATE\tCATEGORY\tMETRIC\tVALUE\tTREND\tCONFIDENCE\n")
	fmt.Fprintf(w, "----\t--------\t------\t-----\t-----\t----------\n")
	for _, m := range metrics {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.MeasurementDate.Format("2006-01-02"),
			orDash(m.Category),
			truncate(m.MetricName, 30),
			truncate(sqlite.FormatMetricValue(m), 20),
			m.TrendDirection,
			m.ConfidenceLevel)
	}
	_ = w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d measurement(s)\n", len(metrics))
	}
	return nil
}
