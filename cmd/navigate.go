package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func advanceCmd(use, short string, delta int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := sessionTracker()
			engine, err := tr.Active()
			if err != nil {
				return err
			}
			if err := engine.Advance(delta); err != nil {
				return err
			}
			if err := tr.Save(engine); err != nil {
				return err
			}

			state := engine.State()
			cyan := color.New(color.FgCyan).SprintFunc()
			fmt.Printf("▶ %s %s\n", cyan(fmt.Sprintf("%d/%d", state.CurrentSlot+1, len(state.Slots))),
				state.Slots[state.CurrentSlot].Slot.Exercise.Name)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(advanceCmd("next", "Move to the next exercise", 1))
	rootCmd.AddCommand(advanceCmd("prev", "Move to the previous exercise", -1))
}
