package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/checkform/internal/config"
	"github.com/abhisek/checkform/internal/logging"
	"github.com/abhisek/checkform/internal/store"
)

var (
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "checkform",
	Short: "Step-by-step personal data form",
	Long:  "checkform is a terminal wizard that collects name, age, marital status and birth date and submits them to a validation endpoint.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/checkform/config.yaml)")
	pf.String("endpoint", "", "Submission server base URL (overrides CHECKFORM_ENDPOINT)")
	pf.String("lang", "", "Label language: it or en (overrides CHECKFORM_LANG)")
	pf.String("db", "", "Path to SQLite journal file (overrides CHECKFORM_DB)")
	pf.BoolP("verbose", "v", false, "Log at debug level")

	rootCmd.Flags().String("page", "home", "Page to open: home, check-form, check-name or history")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup resolves the configuration and builds the logger. Flags win over
// environment, which wins over the config file.
func setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("endpoint"); v != "" {
		c.Endpoint = v
	}
	if v, _ := cmd.Flags().GetString("lang"); v != "" {
		c.Locale = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		c.DB = v
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = c

	logPath, err := cfg.LogPath()
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	l, err := logging.New(logPath, cfg.LogLevel, verbose)
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("configuration loaded",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("locale", cfg.Locale),
		zap.String("command", cmd.Name()))
	return nil
}

// openJournal opens the submission journal at the configured path.
func openJournal() (*store.Store, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
