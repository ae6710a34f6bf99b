package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/spf13/cobra"
)

var showRoutineCmd = &cobra.Command{
	Use:   "show-routine [routine]",
	Short: "Show the exercises, targets and estimated duration of a routine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		r, err := st.ResolveRoutine(args[0])
		if err != nil {
			return fmt.Errorf("Failed to find routine: %w", err)
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		fmt.Printf("%s %s\n", green(r.Name), faint(r.ID))
		if r.Category != nil {
			fmt.Printf("%s %s\n", cyan("Category:"), *r.Category)
		}
		if r.Notes != nil {
			fmt.Printf("%s %s\n", cyan("Notes:"), *r.Notes)
		}
		fmt.Printf("%s %d sets, ~%s\n\n", cyan("Volume:"), r.TotalSets(), utils.FormatDuration(r.EstimatedDuration()))

		table := newBoxTable(4, 28, 8, 8, 10, 8)
		table.printHeader("#", "Exercise", "Sets", "Reps", "Weight", "Rest")
		for i, s := range r.Slots {
			table.printRow(
				fmt.Sprint(i+1),
				s.Exercise.Name,
				fmt.Sprint(s.Sets),
				fmt.Sprint(s.Reps),
				utils.FormatOptionalWeight(s.Weight),
				utils.FormatClock(s.RestSeconds),
			)
		}
		table.printFooter()

		for i, s := range r.Slots {
			if s.Notes != nil {
				fmt.Printf("   %s %s\n", faint(fmt.Sprintf("%d.", i+1)), *s.Notes)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showRoutineCmd)
}
