package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/progression"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/spf13/cobra"
)

var endSessionCmd = &cobra.Command{
	Use:   "end-session",
	Short: "End the current training session and apply progression",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		res, err := newTracker(st, cat).Finish()
		if res.Session.ID == "" {
			return fmt.Errorf("Failed to end session: %w", err)
		}

		printSessionSummary(res.Session)
		printUpdates(res.Updates)

		if !res.Stored {
			return fmt.Errorf("Session was not saved and is still active, retry 'forja end-session': %w", err)
		}
		if err != nil {
			return fmt.Errorf("Session saved, but: %w", err)
		}

		fmt.Println("✅ Session saved successfully")
		return nil
	},
}

func printSessionSummary(cs models.CompletedSession) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	fmt.Printf("%s %s\n", green(cs.RoutineName), utils.FormatLocal(cs.StartTime))
	fmt.Printf("%s %s\n", cyan("Duration:"), utils.FormatDuration(cs.Duration()))
	fmt.Printf("%s %d\n", cyan("Working sets:"), cs.WorkingSetCount())
	fmt.Printf("%s %s\n", cyan("Volume:"), utils.FormatLoad(cs.Volume()))
	if cs.Notes != nil {
		fmt.Printf("%s %s\n", cyan("Notes:"), *cs.Notes)
	}
	fmt.Println()
}

func printUpdates(updates []progression.Update) {
	if len(updates) == 0 {
		return
	}
	green := color.New(color.FgGreen).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Println("Next time:")
	for _, u := range updates {
		if u.Increased {
			fmt.Printf("   %s %s → %s\n", green("▲ "+u.ExerciseName),
				utils.FormatWeight(u.Previous), utils.FormatLoad(u.Weight))
		} else {
			fmt.Printf("   %s %s\n", faint("= "+u.ExerciseName), utils.FormatLoad(u.Weight))
		}
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(endSessionCmd)
}
