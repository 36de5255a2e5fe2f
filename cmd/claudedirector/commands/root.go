// ABOUTME: Root command, global flags, and shared storage setup for the CLI
// ABOUTME: Loads .env and environment config, then applies --db and log flags
package commands

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/claudedirector/claudedirector/internal/config"
	"github.com/claudedirector/claudedirector/internal/storage/sqlite"
)

var (
	dbPath       string
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claudedirector",
		Short: "Strategic memory for an engineering director",
		Long: `claudedirector keeps a local strategic memory for an engineering director:
executive sessions, strategic initiatives, stakeholder profiles, and
platform metrics, all in a single SQLite file.

The same memory is available to LLM agents through "claudedirector mcp".

Configuration is read from the environment (and a .env file if present):
  CLAUDEDIRECTOR_DB_PATH         database file (default: XDG data dir)
  CLAUDEDIRECTOR_RETENTION_DAYS  cleanup retention window (default: 365)
  CLAUDEDIRECTOR_RECALL_DAYS     recall window (default: 90)
  CLAUDEDIRECTOR_LOG_LEVEL       debug, info, warn, or error (default: info)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "auto", "table", "json":
				return nil
			}
			return fmt.Errorf("invalid --format %q (want auto, table, or json)", outputFormat)
		},
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file (overrides CLAUDEDIRECTOR_DB_PATH)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print results and errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, or json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewSessionCmd(),
		NewInitiativeCmd(),
		NewStakeholderCmd(),
		NewMetricCmd(),
		NewStatusCmd(),
		NewStatsCmd(),
		NewCleanupCmd(),
		NewBriefCmd(),
		NewPortfolioCmd(),
		NewExportCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads .env and the environment, then applies --db
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// newLogger writes leveled logs to the command's stderr. --verbose and
// --quiet override the configured level.
func newLogger(cmd *cobra.Command, cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "claudedirector"})

	level, err := cfg.Level()
	if err != nil {
		level = log.InfoLevel
	}
	switch {
	case verbose:
		level = log.DebugLevel
	case quiet:
		level = log.ErrorLevel
	}
	logger.SetLevel(level)
	return logger
}

// openStorage returns storage for the configured database. The file is not
// touched until the first operation.
func openStorage(cmd *cobra.Command) (*sqlite.Storage, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	store := sqlite.NewStorageWithPath(cfg.DBPath)
	store.SetLogger(newLogger(cmd, cfg))
	return store, cfg, nil
}

// storageError adds a hint for errors that mean the database itself is unusable
func storageError(action string, err error) error {
	var initErr *sqlite.InitError
	if errors.As(err, &initErr) {
		return fmt.Errorf("%s: database unavailable at %s: %w", action, initErr.Path, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}

func jsonOutput() bool {
	return outputFormat == "json"
}
