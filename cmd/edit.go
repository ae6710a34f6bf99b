package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	setWeight float64
	setReps   int
)

var editSetCmd = &cobra.Command{
	Use:   "edit-set [exercise-index] [set-index]",
	Short: "Edit the weight or reps of a set in the current session",
	Long: `Edit the weight or reps of a set in the current session.

Editing a set that is already completed does not change the logged result;
only sets completed afterwards pick up the new values.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("weight") && !cmd.Flags().Changed("reps") {
			return fmt.Errorf("Nothing to edit: pass --weight and/or --reps")
		}

		exerciseIndex, err := parseIndex(args[0], "exercise")
		if err != nil {
			return err
		}
		setIndex, err := parseIndex(args[1], "set")
		if err != nil {
			return err
		}

		tr := sessionTracker()
		engine, err := tr.Active()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("weight") {
			if err := engine.UpdateWeight(exerciseIndex, setIndex, setWeight); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("reps") {
			if err := engine.UpdateReps(exerciseIndex, setIndex, setReps); err != nil {
				return err
			}
		}

		if err := tr.Save(engine); err != nil {
			return err
		}

		fmt.Println("✅ Set updated successfully")
		return nil
	},
}

func init() {
	editSetCmd.Flags().Float64VarP(&setWeight, "weight", "w", 0, "Weight to use")
	editSetCmd.Flags().IntVarP(&setReps, "reps", "r", 0, "Reps to perform")

	rootCmd.AddCommand(editSetCmd)
}
