package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/progression"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/spf13/cobra"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "List the remembered working weight of every exercise",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.LoadWeights()
		if err != nil {
			return fmt.Errorf("Failed to load weights: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No weights recorded yet")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()
		table := newBoxTable(28, 12, 12)
		table.printHeader("Exercise", "Weight ("+utils.WeightUnit+")", "Updated")
		for _, r := range records {
			table.printRow(r.ExerciseName, utils.FormatWeight(r.Weight), utils.ToLocal(r.UpdatedAt).Format("2006-01-02"))
		}
		table.printFooter()
		for _, r := range records {
			if r.ExerciseID == "" {
				fmt.Println(faint("Some weights predate exercise ids; they move over the next time the exercise is trained."))
				break
			}
		}
		return nil
	},
}

var setWeightCmd = &cobra.Command{
	Use:   "set-weight [exercise] [weight]",
	Short: "Override the working weight the next session starts from",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := strconv.ParseFloat(args[1], 64)
		if err != nil || weight < 0 {
			return fmt.Errorf("Invalid weight %q", args[1])
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		ex, err := cat.Resolve(args[0])
		if err != nil {
			return err
		}
		if !ex.RequiresWeight {
			return fmt.Errorf("%s does not take a weight", ex.Name)
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.LoadWeights()
		if err != nil {
			return fmt.Errorf("Failed to load weights: %w", err)
		}
		history := progression.NewHistory(records)
		previous, _ := history.Lookup(ex)
		history.Apply([]progression.Update{{
			ExerciseID:   ex.ID,
			ExerciseName: ex.Name,
			Previous:     previous,
			Weight:       weight,
		}}, time.Now())

		if err := st.SaveWeights(history.Records()); err != nil {
			return fmt.Errorf("Failed to save weights: %w", err)
		}

		fmt.Printf("✅ %s: %s → %s\n", ex.Name, utils.FormatWeight(previous), utils.FormatLoad(weight))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(setWeightCmd)
}
