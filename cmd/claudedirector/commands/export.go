// ABOUTME: CLI command to export all strategic memory to a file
// ABOUTME: Supports YAML, JSON, and Markdown
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportFormat string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all memory to a file",
		Long: `Export all sessions, initiatives, stakeholders, and metrics to a file.

Formats: yaml (default), json, markdown.

Examples:
  claudedirector export -o memory.yaml
  claudedirector export -f json -o memory.json
  claudedirector export -f markdown -o memory.md`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (required)")
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "Export format: yaml, json, or markdown")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	switch exportFormat {
	case "yaml", "yml":
		err = store.ExportToYAML(exportOutput)
	case "json":
		err = store.ExportToJSON(exportOutput)
	case "markdown", "md":
		err = store.ExportToMarkdown(exportOutput)
	default:
		return fmt.Errorf("unsupported export format %q (want yaml, json, or markdown)", exportFormat)
	}
	if err != nil {
		return storageError("exporting", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOutput)
	}
	return nil
}
