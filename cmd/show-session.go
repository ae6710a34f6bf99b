package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/misterclayt0n/forja/internal/warmup"
	"github.com/spf13/cobra"
)

var showSessionCmd = &cobra.Command{
	Use:   "show-session",
	Short: "Show current session status",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := sessionTracker().Active()
		if err != nil {
			return err
		}
		printActiveSession(engine.State(), engine.Progress())
		return nil
	},
}

func printActiveSession(state *models.ActiveSession, progress float64) {
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	duration := time.Since(state.StartTime).Round(time.Second)

	fmt.Printf("%s\n", green(state.RoutineName))
	fmt.Printf("%s %s\n", red("Duration:"), duration)
	fmt.Printf("%s %.0f%%\n", yellow("Progress:"), progress*100)
	if state.Rest.Active {
		fmt.Printf("%s %s left\n", yellow("Resting:"), utils.FormatClock(state.Rest.Remaining))
	}
	if state.Notes != "" {
		fmt.Printf("%s %s\n", cyan("Notes:"), state.Notes)
	}
	fmt.Println()

	table := newBoxTable(6, 12, 20, 8)
	for i, as := range state.Slots {
		slot := as.Slot
		marker := "•"
		if i == state.CurrentSlot {
			marker = "▶"
		}
		fmt.Printf("%s %s\n", cyan(fmt.Sprintf("%s %d. %s", marker, i+1, slot.Exercise.Name)),
			faint(fmt.Sprintf("rest %s", utils.FormatClock(slot.RestSeconds))))
		if slot.Notes != nil {
			fmt.Printf("   %s %s\n", cyan("Routine Notes:"), *slot.Notes)
		}

		if state.Warmups == models.WarmupsDisplay && slot.Exercise.IsBarbell() && slot.Weight != nil {
			if line := warmupLine(firstWorkingWeight(as)); line != "" {
				fmt.Printf("   %s %s\n", yellow("Warm-up:"), line)
			}
		}

		table.printHeader("Set", "Target", "Current", "Done")
		for j, set := range as.Sets {
			label := fmt.Sprint(j + 1)
			if set.Warmup {
				label += "W"
			}

			target := fmt.Sprintf("%d reps", slot.Reps)
			if set.Warmup {
				target = "warm-up"
			}

			current := fmt.Sprintf("%d", set.Reps)
			if slot.Weight != nil {
				current = fmt.Sprintf("%s × %d", utils.FormatWeight(set.Weight), set.Reps)
			}

			done := ""
			if set.Completed {
				done = "✓"
			}
			table.printRow(label, target, current, done)
		}
		table.printFooter()
		fmt.Println()
	}
}

func firstWorkingWeight(as models.ActiveSlot) float64 {
	for _, set := range as.Sets {
		if !set.Warmup {
			return set.Weight
		}
	}
	return 0
}

// warmupLine renders the suggested ramp, e.g. "45×5 → 95×5 → 135×3".
func warmupLine(target float64) string {
	rungs := warmup.Ramp(target, cfg.Training.BarWeight)
	line := ""
	for i, r := range rungs {
		if i > 0 {
			line += " → "
		}
		line += fmt.Sprintf("%s×%d", utils.FormatWeight(r.Weight), r.Reps)
	}
	return line
}

func init() {
	rootCmd.AddCommand(showSessionCmd)
}
