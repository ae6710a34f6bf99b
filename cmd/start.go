package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/session"
	"github.com/misterclayt0n/forja/internal/stats"
	"github.com/misterclayt0n/forja/internal/storage"
	"github.com/spf13/cobra"
)

var (
	quickExercises []string
	quickSets      int
	quickReps      int
	quickRest      int
)

var startCmd = &cobra.Command{
	Use:   "start-session [routine]",
	Short: "Start a session from a routine, the next one in the rotation, or a quick session with --quick",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 && len(quickExercises) > 0 {
			return fmt.Errorf("Use either a routine or --quick, not both")
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		tr := newTracker(st, cat)

		var engine *session.Engine
		switch {
		case len(quickExercises) > 0:
			engine, err = tr.StartQuick(quickExercises, quickSets, quickReps, quickRest)
		case len(args) == 1:
			engine, err = tr.Start(args[0])
		default:
			next, serr := suggestedRoutine(st)
			if serr != nil {
				return serr
			}
			if next == "" {
				return fmt.Errorf("Specify a routine or --quick exercises")
			}
			fmt.Printf("Next in rotation: %s\n", next)
			engine, err = tr.Start(next)
		}
		if engine == nil {
			if len(args) == 0 && len(quickExercises) == 0 && errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("Rotation routine not found, name a routine or set [training] rotation: %w", err)
			}
			if errors.Is(err, session.ErrInvalidRoutine) || errors.Is(err, models.ErrNoSlots) {
				return fmt.Errorf("Failed to start session: routine has no exercises")
			}
			return fmt.Errorf("Failed to start session: %w", err)
		}
		if err != nil {
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Printf("%s could not mark the routine as used: %v\n", yellow("Warning:"), err)
		}

		state := engine.State()
		fmt.Printf("✅ Started %s (%d exercises)\n", state.RoutineName, len(state.Slots))
		fmt.Println()
		printActiveSession(state, engine.Progress())
		return nil
	},
}

// suggestedRoutine names the next routine of the configured rotation.
func suggestedRoutine(st *storage.Storage) (string, error) {
	if len(cfg.Training.Rotation) == 0 {
		return "", nil
	}
	sessions, err := st.ListSessions()
	if err != nil {
		return "", fmt.Errorf("failed to retrieve sessions: %w", err)
	}
	return stats.NextInRotation(sessions, cfg.Training.Rotation), nil
}

func init() {
	startCmd.Flags().StringSliceVarP(&quickExercises, "quick", "q", nil, "Start an unsaved session over these exercises (ids or names)")
	startCmd.Flags().IntVar(&quickSets, "sets", models.DefaultSets, "Sets per exercise for --quick")
	startCmd.Flags().IntVar(&quickReps, "reps", models.DefaultReps, "Target reps for --quick")
	startCmd.Flags().IntVar(&quickRest, "rest", models.DefaultRestSeconds, "Rest seconds for --quick")

	rootCmd.AddCommand(startCmd)
}
