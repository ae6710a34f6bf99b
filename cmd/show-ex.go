package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/progression"
	"github.com/misterclayt0n/forja/internal/stats"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/spf13/cobra"
)

var (
	limitSessions int
	historyOnly   bool
)

var showExCmd = &cobra.Command{
	Use:   "show-ex [exercise]",
	Short: "Display detailed information and training history for a particular exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		ex, err := cat.Resolve(args[0])
		if err != nil {
			return fmt.Errorf("failed to get exercise: %w", err)
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		blue := color.New(color.FgBlue).SprintFunc()

		sessions, err := st.ListSessions()
		if err != nil {
			return fmt.Errorf("failed to retrieve session history: %w", err)
		}

		if !historyOnly {
			fmt.Println(boldGreen("Exercise Information:"))
			fmt.Printf("  %s: %s (%s)\n", boldCyan("Name"), ex.Name, ex.ID)
			if ex.Description != "" {
				fmt.Printf("  %s: %s\n", boldCyan("Description"), ex.Description)
			}
			fmt.Printf("  %s: %s, %s\n", boldCyan("Type"), ex.Category, ex.Equipment)
			fmt.Printf("  %s: %s\n", boldCyan("Primary Muscles"), strings.Join(ex.PrimaryMuscles, ", "))
			if len(ex.SecondaryMuscles) > 0 {
				fmt.Printf("  %s: %s\n", boldCyan("Secondary Muscles"), strings.Join(ex.SecondaryMuscles, ", "))
			}
			for i, step := range ex.Instructions {
				fmt.Printf("  %s %s\n", yellow(fmt.Sprintf("%d.", i+1)), step)
			}

			records, err := st.LoadWeights()
			if err != nil {
				return fmt.Errorf("failed to load weight history: %w", err)
			}
			if w, ok := progression.NewHistory(records).Lookup(ex); ok {
				fmt.Printf("  %s: %s\n", boldCyan("Next working weight"), utils.FormatLoad(w))
			}

			for _, pb := range stats.PersonalBests(sessions) {
				if pb.ExerciseID != ex.ID {
					continue
				}
				fmt.Printf("  %s: %s × %d (%s: %.1f)\n",
					boldCyan("All-time PR"),
					utils.FormatWeight(pb.Weight), pb.Reps,
					yellow("Calculated 1RM"), pb.EstimatedMax)
			}
			fmt.Println()
		}

		fmt.Printf("%s %s:\n", boldGreen("History for"), ex.Name)
		shown := 0
		for _, cs := range sessions {
			if limitSessions > 0 && shown >= limitSessions {
				break
			}
			results := resultsFor(cs, ex.ID)
			if len(results) == 0 {
				continue
			}
			shown++

			fmt.Printf("\n%s %d. %s\n", boldGreen("Session"), shown, routineLabel(cs))
			fmt.Printf("   %s: %s\n", blue("Date"), utils.FormatLocal(cs.StartTime))
			fmt.Println("   " + boldCyan("Sets:"))
			fmt.Printf("      %-4s | %-12s | %-5s\n", "Set", "Weight", "Reps")
			fmt.Println("      " + strings.Repeat("─", 30))
			for _, r := range results {
				set := fmt.Sprint(r.SetNumber)
				if r.Warmup {
					set += "W"
				}
				fmt.Printf("      %-4s | %-12s | %-5d\n", set, utils.FormatOptionalWeight(r.Weight), r.Reps)
			}
		}
		if shown == 0 {
			fmt.Println(magenta("  No training sessions found."))
		}

		return nil
	},
}

// resultsFor returns every logged set of one exercise, warm-ups included.
func resultsFor(cs models.CompletedSession, exerciseID string) []models.SetResult {
	var out []models.SetResult
	for _, r := range cs.Results {
		if r.ExerciseID == exerciseID {
			out = append(out, r)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(showExCmd)
	showExCmd.Flags().IntVarP(&limitSessions, "limit", "l", 5, "Number of sessions to display")
	showExCmd.Flags().BoolVarP(&historyOnly, "history-only", "H", false, "Display only history (sets and weight) without exercise details")
}
