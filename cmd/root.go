package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/misterclayt0n/forja/internal/catalog"
	"github.com/misterclayt0n/forja/internal/config"
	"github.com/misterclayt0n/forja/internal/logging"
	"github.com/misterclayt0n/forja/internal/storage"
	"github.com/misterclayt0n/forja/internal/tracker"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:           "forja",
	Short:         "Offline workout tracker: routines, guided sessions, rest timer and progressive overload",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("Failed to load config: %w", err)
		}

		logCloser = logging.Setup(logging.Params{
			Level:      cfg.Log.Level,
			FileName:   cfg.Log.File,
			FormatJSON: cfg.Log.JSON,
		})
		utils.WeightUnit = cfg.Training.Unit
		return utils.SetLocation(cfg.Training.Timezone)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func openStorage() (*storage.Storage, error) {
	st, err := storage.Open(cfg.DB.ConnectionString, logrus.StandardLogger())
	if err != nil {
		return nil, fmt.Errorf("Failed to open database: %w", err)
	}
	return st, nil
}

// userExercisesPath is where import-exercises stores custom exercises.
func userExercisesPath() (string, error) {
	dir, err := utils.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "exercises.toml"), nil
}

func loadCatalog() (*catalog.Catalog, error) {
	path, err := userExercisesPath()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to load exercise catalog: %w", err)
	}
	return cat, nil
}

func sessionFile() utils.SessionFile {
	return utils.SessionFile{Path: cfg.Training.SessionFile}
}

func newTracker(st *storage.Storage, cat *catalog.Catalog) *tracker.Tracker {
	return tracker.New(tracker.Deps{
		Routines:  st,
		Sessions:  st,
		Weights:   st,
		State:     sessionFile(),
		Exercises: cat,
	}, tracker.Options{
		Policy:     cfg.Training.Policy,
		Warmups:    cfg.Training.Warmups,
		BarWeight:  cfg.Training.BarWeight,
		Increments: cfg.Increments(),
		Now:        time.Now,
	}, logrus.StandardLogger())
}

// sessionTracker serves the in-session commands, which only read and write
// the state file.
func sessionTracker() *tracker.Tracker {
	return tracker.New(tracker.Deps{State: sessionFile()}, tracker.Options{
		Policy:    cfg.Training.Policy,
		Warmups:   cfg.Training.Warmups,
		BarWeight: cfg.Training.BarWeight,
		Now:       time.Now,
	}, logrus.StandardLogger())
}

// parseIndex converts a 1-based CLI index to a 0-based one.
func parseIndex(arg, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("Invalid %s index %q (should be 1-based)", what, arg)
	}
	return n - 1, nil
}
