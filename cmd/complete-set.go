package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/spf13/cobra"
)

var (
	completeWeight float64
	completeReps   int
)

var completeSetCmd = &cobra.Command{
	Use:   "complete-set [exercise-index] [set-index]",
	Short: "Mark a set done (defaults to the next open set of the current exercise)",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr := sessionTracker()
		engine, err := tr.Active()
		if err != nil {
			return err
		}
		state := engine.State()

		slotIdx := state.CurrentSlot
		if len(args) >= 1 {
			if slotIdx, err = parseIndex(args[0], "exercise"); err != nil {
				return err
			}
		}
		if slotIdx >= len(state.Slots) {
			return fmt.Errorf("Exercise index out of range")
		}

		setArg := ""
		if len(args) == 2 {
			setArg = args[1]
		}
		setIdx, done, err := resolveSet(state.Slots[slotIdx], setArg)
		if err != nil {
			return err
		}
		if done {
			fmt.Printf("%s set %d is already done, nothing changed.\n", state.Slots[slotIdx].Slot.Exercise.Name, setIdx+1)
			return nil
		}

		if cmd.Flags().Changed("weight") {
			if err := engine.UpdateWeight(slotIdx, setIdx, completeWeight); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("reps") {
			if err := engine.UpdateReps(slotIdx, setIdx, completeReps); err != nil {
				return err
			}
		}

		rest, err := engine.CompleteSet(slotIdx, setIdx)
		if err != nil {
			return err
		}

		// Move on once every set of the current exercise is done.
		after := engine.State()
		if slotIdx == after.CurrentSlot && nextOpenSet(after.Slots[slotIdx]) < 0 {
			if err := engine.Advance(1); err != nil {
				return err
			}
		}

		if err := tr.Save(engine); err != nil {
			return err
		}

		set := after.Slots[slotIdx].Sets[setIdx]
		name := after.Slots[slotIdx].Slot.Exercise.Name
		if after.Slots[slotIdx].Slot.Weight != nil {
			fmt.Printf("✅ %s set %d: %s × %d\n", name, setIdx+1, utils.FormatWeight(set.Weight), set.Reps)
		} else {
			fmt.Printf("✅ %s set %d: %d reps\n", name, setIdx+1, set.Reps)
		}

		if rest.Start {
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Printf("%s %s. Run 'forja rest' to start the timer.\n",
				yellow("Rest"), utils.FormatClock(int(rest.Duration.Seconds())))
		}
		return nil
	},
}

// resolveSet picks the set to complete: the given 1-based index, or the
// next open set when setArg is empty. done reports an already completed set.
func resolveSet(as models.ActiveSlot, setArg string) (idx int, done bool, err error) {
	if setArg == "" {
		idx = nextOpenSet(as)
		if idx < 0 {
			return idx, false, fmt.Errorf("All sets of %s are done (try 'forja next')", as.Slot.Exercise.Name)
		}
		return idx, false, nil
	}

	if idx, err = parseIndex(setArg, "set"); err != nil {
		return idx, false, err
	}
	if idx >= len(as.Sets) {
		return idx, false, fmt.Errorf("Set index out of range (%s has %d sets)", as.Slot.Exercise.Name, len(as.Sets))
	}
	return idx, as.Sets[idx].Completed, nil
}

func nextOpenSet(as models.ActiveSlot) int {
	for i, set := range as.Sets {
		if !set.Completed {
			return i
		}
	}
	return -1
}

func init() {
	completeSetCmd.Flags().Float64VarP(&completeWeight, "weight", "w", 0, "Weight used (overrides the prefilled value)")
	completeSetCmd.Flags().IntVarP(&completeReps, "reps", "r", 0, "Reps performed (overrides the target)")

	rootCmd.AddCommand(completeSetCmd)
}
