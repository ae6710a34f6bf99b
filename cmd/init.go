package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var skipSamples bool

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and seed the sample routines",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Printf("✅ Database ready (%s)\n", st.Driver())
		if skipSamples {
			return nil
		}

		existing, err := st.ListRoutines()
		if err != nil {
			return fmt.Errorf("Failed to list routines: %w", err)
		}
		if len(existing) > 0 {
			fmt.Println("Routines already present, skipping samples")
			return nil
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		samples, err := cat.SampleRoutines(time.Now(), cfg.Training.Unit)
		if err != nil {
			return fmt.Errorf("Failed to build sample routines: %w", err)
		}
		for _, r := range samples {
			if err := st.UpsertRoutine(r); err != nil {
				return fmt.Errorf("Failed to save routine %s: %w", r.Name, err)
			}
		}

		fmt.Printf("✅ Added %d sample routines\n", len(samples))
		return nil
	},
}

func init() {
	initSetupCmd.Flags().BoolVar(&skipSamples, "no-samples", false, "Do not seed the sample routines")
	rootCmd.AddCommand(initSetupCmd)
}
