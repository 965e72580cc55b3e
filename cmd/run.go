package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/radstar/internal/app"
	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/config"
	"github.com/abhisek/radstar/internal/journal"
	"github.com/abhisek/radstar/internal/logger"
	"github.com/abhisek/radstar/internal/screens/session"
)

var runCmd = &cobra.Command{
	Use:   "run [case-id]",
	Short: "Start the interactive viewer, optionally opening a case",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		return runApp(cmd, id)
	},
}

func init() {
	runCmd.Flags().String("depth", "", "Knowledge depth: focused, clinical-application, comprehensive")
	runCmd.Flags().Bool("guided", false, "Start in guided exploration mode")
	runCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
}

// runApp loads config, opens the journal, and launches the TUI. A non-empty
// caseID opens that case directly.
func runApp(cmd *cobra.Command, caseID string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyTheme(cfg); err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	start, err := startOptions(cmd, cfg, caseID, log)
	if err != nil {
		return err
	}

	opts := app.Options{
		Log:      log,
		Config:   cfg,
		Start:    start,
		OpenCase: caseID != "",
	}
	if f := cmd.Flags().Lookup("no-splash"); f != nil && f.Changed {
		opts.SkipSplash = f.Value.String() == "true"
	}

	if cfg.Journal.Enabled {
		st, err := openJournal(cfg)
		if err != nil {
			// The viewer works without a journal.
			log.Warn("journal unavailable", "error", err)
		} else {
			defer st.Close()
			opts.Repo = st.Repo()
			opts.Recorder = journal.NewRecorder(opts.Repo, log)
		}
	}

	return app.Run(opts)
}

// startOptions resolves the first case, depth and mode. An unknown case
// from the command line or the config is logged and replaced by the
// configured default or the built-in one.
func startOptions(cmd *cobra.Command, cfg *config.Config, caseID string, log *logger.Logger) (session.Options, error) {
	start := session.Options{
		CaseID: cfg.DefaultCase,
		Depth:  cfg.Depth(),
		Guided: cfg.Guided,
	}
	if !casebook.Exists(start.CaseID) {
		log.Warn("unknown default case, using built-in default",
			"case", start.CaseID, "default", casebook.DefaultID)
		start.CaseID = casebook.DefaultID
	}
	if caseID != "" {
		if casebook.Exists(caseID) {
			start.CaseID = caseID
		} else {
			log.Warn("unknown case, opening default", "case", caseID, "default", start.CaseID)
		}
	}

	if f := cmd.Flags().Lookup("depth"); f != nil && f.Value.String() != "" {
		d, ok := casebook.ParseDepth(f.Value.String())
		if !ok {
			return start, fmt.Errorf("invalid depth %q", f.Value.String())
		}
		start.Depth = d
	}
	if f := cmd.Flags().Lookup("guided"); f != nil && f.Changed {
		start.Guided = f.Value.String() == "true"
	}
	return start, nil
}
