package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/stats"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/spf13/cobra"
)

var statusBests int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workout count, gym time, streaks, volume, sets per muscle (current week) and personal bests",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.ListSessions()
		if err != nil {
			return fmt.Errorf("failed to retrieve sessions: %w", err)
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		summary := stats.Summarize(sessions, time.Now(), utils.Loc, cat)

		printBoxedHeader("STATUS")

		printMetric("Workouts", summary.WorkoutCount)
		printMetric("This week", summary.WorkoutsThisWeek)
		printMetric("Day streak", fmt.Sprintf("%d days", summary.CurrentStreak))
		printMetric("Week streak", fmt.Sprintf("%d weeks", summary.WeekStreak))
		printMetric("Total time at gym", utils.FormatDuration(summary.TotalDuration))
		printMetric("Total weight lifted", utils.FormatLoad(summary.TotalVolume))
		if next := stats.NextInRotation(sessions, cfg.Training.Rotation); next != "" {
			printMetric("Next workout", next)
		}
		fmt.Println()

		if len(summary.SetsPerMuscle) > 0 {
			fmt.Println(color.New(color.FgGreen, color.Bold).Sprintf("Sets per muscle (current week):"))
			var muscles []string
			for m := range summary.SetsPerMuscle {
				muscles = append(muscles, m)
			}
			sort.Strings(muscles)
			for _, m := range muscles {
				fmt.Printf("  • %s: %d sets\n", color.New(color.FgMagenta, color.Bold).Sprint(m), summary.SetsPerMuscle[m])
			}
			fmt.Println()
		}

		if len(summary.PersonalBests) > 0 {
			fmt.Println(color.New(color.FgGreen, color.Bold).Sprintf("Personal bests (estimated 1RM):"))
			for i, pb := range summary.PersonalBests {
				if statusBests > 0 && i >= statusBests {
					break
				}
				fmt.Printf("  • %s: %s × %d (1RM: %.1f) on %s\n",
					color.New(color.FgMagenta, color.Bold).Sprint(pb.ExerciseName),
					utils.FormatWeight(pb.Weight), pb.Reps, pb.EstimatedMax,
					utils.ToLocal(pb.Date).Format("2006-01-02"))
			}
			fmt.Println()
		}

		return nil
	},
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + padCenter(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

// padCenter centers s in a field of width, padding both sides.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value any) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

func init() {
	statusCmd.Flags().IntVarP(&statusBests, "bests", "b", 10, "How many personal bests to list (0 for all)")
	rootCmd.AddCommand(statusCmd)
}
