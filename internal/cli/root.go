// Package cli implements the recall command line.
package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/conorfennell/recall/internal/config"
	"github.com/conorfennell/recall/internal/logging"
	"github.com/conorfennell/recall/internal/storage"
	"github.com/conorfennell/recall/internal/study"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	configFile string
	now        study.Clock

	cfg   *config.Config
	db    *storage.DB
	study *study.Service
}

// Execute runs the root command.
func Execute() error {
	root, a := newRootCmd(time.Now)
	return run(root, a)
}

// run executes root and closes the database even when the command fails,
// since cobra skips post-run hooks after an error.
func run(root *cobra.Command, a *app) error {
	defer a.close()
	return root.Execute()
}

func newRootCmd(now study.Clock) (*cobra.Command, *app) {
	a := &app{now: now}

	root := &cobra.Command{
		Use:          "recall",
		Short:        "Spaced-repetition flashcards",
		Long:         "Recall schedules flashcard reviews with the SM-2 algorithm and keeps decks in a local SQLite database.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "path to a YAML config file (default recall.yaml)")
	pf.String("db", "", "path to the SQLite database")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-format", "", "log format: text or json")

	root.AddCommand(
		newVersionCmd(),
		newServeCmd(a),
		newDeckCmd(a),
		newCardCmd(a),
		newDueCmd(a),
		newReviewCmd(a),
		newStatsCmd(a),
	)
	return root, a
}

func (a *app) setup(cmd *cobra.Command) error {
	if skipSetup(cmd) {
		return nil
	}

	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.db = db
	a.study = study.NewService(db, a.now, cfg.Study.MaxCards)
	slog.Debug("Database opened", "path", cfg.Database.Path)
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// skipSetup reports whether cmd runs without config or a database.
func skipSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skipSetup"] == "true" {
			return true
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}
