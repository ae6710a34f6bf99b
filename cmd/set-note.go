package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var noteText string

var setNoteCmd = &cobra.Command{
	Use:   "set-note",
	Short: "Set the note saved with the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr := sessionTracker()
		engine, err := tr.Active()
		if err != nil {
			return err
		}

		if err := engine.SetNotes(noteText); err != nil {
			return err
		}
		if err := tr.Save(engine); err != nil {
			return err
		}

		fmt.Println("✅ Note set successfully")
		return nil
	},
}

func init() {
	setNoteCmd.Flags().StringVarP(&noteText, "note", "n", "", "Note text (empty clears it)")
	setNoteCmd.MarkFlagRequired("note")
	rootCmd.AddCommand(setNoteCmd)
}
