package cmd

import (
	"fmt"

	"github.com/misterclayt0n/forja/internal/storage"
	"github.com/spf13/cobra"
)

var confirmReset bool

var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export all the database data to a TOML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := storage.DefaultExportPath()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			outputFile = args[0]
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ExportTOML(outputFile); err != nil {
			return fmt.Errorf("error exporting database: %w", err)
		}

		fmt.Printf("✅ Database exported successfully to %s\n", outputFile)
		return nil
	},
}

var buildDBCmd = &cobra.Command{
	Use:   "build-db [dump-file]",
	Short: "Build the entire database from the given TOML dump file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ImportTOML(args[0]); err != nil {
			return fmt.Errorf("Failed to build database: %w", err)
		}
		fmt.Println("✅ Database built successfully from TOML dump.")
		return nil
	},
}

var resetHistoryCmd = &cobra.Command{
	Use:   "reset-history",
	Short: "Delete every finished session (routines and weights are kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmReset {
			return fmt.Errorf("This deletes all session history; re-run with --yes to confirm")
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteAllSessions(); err != nil {
			return fmt.Errorf("Failed to reset history: %w", err)
		}
		fmt.Println("✅ Session history cleared")
		return nil
	},
}

func init() {
	resetHistoryCmd.Flags().BoolVarP(&confirmReset, "yes", "y", false, "Confirm deletion")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(buildDBCmd)
	rootCmd.AddCommand(resetHistoryCmd)
}
