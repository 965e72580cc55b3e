package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/radstar/internal/config"
	"github.com/abhisek/radstar/internal/journal"
	"github.com/abhisek/radstar/internal/logger"
	"github.com/abhisek/radstar/internal/ui/theme"
)

var rootCmd = &cobra.Command{
	Use:   "radstar",
	Short: "Radiology teaching cases in the terminal",
	Long: "radstar: explore curated radiology teaching cases as a constellation of\n" +
		"technical, clinical and anatomical insights around a central image.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/radstar/config.yaml)")
	pf.String("db", "", "Path to journal database (overrides RADSTAR_DB and journal.path)")
	pf.String("theme", "", "Color theme: dark or light (overrides RADSTAR_THEME)")
	pf.String("log-file", "", "Write logs to this file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.Bool("no-journal", false, "Do not record exploration events")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(casesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(imagesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies persistent flag overrides.
// Flags win over environment variables, which win over the file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("theme"); v != "" {
		cfg.Theme = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Journal.Path = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.Log.File = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if off, _ := cmd.Flags().GetBool("no-journal"); off {
		cfg.Journal.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyTheme activates the configured palette.
func applyTheme(cfg *config.Config) error {
	p, ok := theme.Lookup(cfg.Theme)
	if !ok {
		return fmt.Errorf("unknown theme %q", cfg.Theme)
	}
	theme.Apply(p)
	return nil
}

// newLogger builds the logger for a command. The TUI owns the terminal, so
// only non-interactive commands may log to stderr.
func newLogger(cfg *config.Config, stderr bool) (*logger.Logger, error) {
	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Stderr: stderr && cfg.Log.File == "",
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// resolveDBPath returns the journal path from config (which already holds
// --db and RADSTAR_DB overrides), else the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.Journal.Path; p != "" {
		return p, journal.EnsureDir(p)
	}
	return journal.DefaultDBPath()
}

// openJournal opens the journal database.
func openJournal(cfg *config.Config) (*journal.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve journal path: %w", err)
	}
	st, err := journal.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return st, nil
}
