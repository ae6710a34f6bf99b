package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/misterclayt0n/forja/internal/warmup"
	"github.com/spf13/cobra"
)

var warmupBar float64

var warmupCmd = &cobra.Command{
	Use:   "warmup [weight]",
	Short: "Show the warm-up ramp and plate loading for a working weight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := strconv.ParseFloat(args[0], 64)
		if err != nil || target < 0 {
			return fmt.Errorf("Invalid weight %q", args[0])
		}

		bar := cfg.Training.BarWeight
		if cmd.Flags().Changed("bar") {
			bar = warmupBar
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Printf("%s %s (bar %s)\n\n", green("Working weight"), utils.FormatLoad(target), utils.FormatLoad(bar))

		table := newBoxTable(8, 10, 6, 24)
		table.printHeader("Step", "Weight", "Reps", "Plates per side")
		for _, r := range warmup.Ramp(target, bar) {
			step := "Bar"
			if r.Percent > 0 {
				step = fmt.Sprintf("%d%%", r.Percent)
			}
			table.printRow(step, utils.FormatWeight(r.Weight), fmt.Sprint(r.Reps),
				warmup.FormatPlates(warmup.PlateBreakdown(r.Weight, bar, cfg.Training.Plates)))
		}
		table.printRow("Work", utils.FormatWeight(target), "",
			warmup.FormatPlates(warmup.PlateBreakdown(target, bar, cfg.Training.Plates)))
		table.printFooter()

		if target <= bar {
			fmt.Println(cyan("No warm-up needed at or below the bar weight."))
		}
		return nil
	},
}

func init() {
	warmupCmd.Flags().Float64VarP(&warmupBar, "bar", "b", 0, "Bar weight (defaults to the configured bar)")
	rootCmd.AddCommand(warmupCmd)
}
