package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/catalog"
	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/spf13/cobra"
)

var createRoutineCmd = &cobra.Command{
	Use:   "create-routine [file]",
	Short: "Create a new routine from TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		routine, err := routineFromFile(args[0], cat)
		if err != nil {
			return err
		}

		exists, err := st.RoutineNameExists(routine.Name, "")
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("Routine '%s' already exists (use update-routine)", routine.Name)
		}

		if err := st.UpsertRoutine(routine); err != nil {
			return fmt.Errorf("Failed to create routine: %w", err)
		}

		fmt.Printf("✅ Routine '%s' created (%d exercises, %d sets)\n", routine.Name, len(routine.Slots), routine.TotalSets())
		return nil
	},
}

var listRoutinesCmd = &cobra.Command{
	Use:   "list-routines",
	Short: "List all routines, most recently used first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		routines, err := st.ListRoutines()
		if err != nil {
			return err
		}
		if len(routines) == 0 {
			fmt.Println("No routines yet. Run 'forja init' or 'forja create-routine'.")
			return nil
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		for _, r := range routines {
			lastUsed := "never"
			if r.LastUsedAt != nil {
				lastUsed = utils.ToLocal(*r.LastUsedAt).Format("2006-01-02")
			}
			fmt.Printf("%s - %s %s\n", r.ID, cyan(r.Name),
				faint(fmt.Sprintf("(%d exercises, ~%s, last used %s)",
					len(r.Slots), utils.FormatDuration(r.EstimatedDuration()), lastUsed)))
		}
		return nil
	},
}

var updateRoutineCmd = &cobra.Command{
	Use:   "update-routine [file]",
	Short: "Replace the exercises of an existing routine (matched by name) from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		updated, err := routineFromFile(args[0], cat)
		if err != nil {
			return err
		}

		existing, err := st.FindRoutineByName(updated.Name)
		if err != nil {
			return fmt.Errorf("Failed to find routine '%s': %w", updated.Name, err)
		}

		// Keep identity and usage so history stays attached.
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		updated.LastUsedAt = existing.LastUsedAt

		if err := st.UpsertRoutine(updated); err != nil {
			return fmt.Errorf("Failed to update routine: %w", err)
		}

		fmt.Printf("✅ Routine '%s' updated\n", updated.Name)
		return nil
	},
}

var duplicateName string

var duplicateRoutineCmd = &cobra.Command{
	Use:   "duplicate-routine [routine]",
	Short: "Copy a routine under a new name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		src, err := st.ResolveRoutine(args[0])
		if err != nil {
			return fmt.Errorf("Failed to find routine: %w", err)
		}

		dup := src.Duplicate(time.Now())
		if duplicateName != "" {
			dup.Name = duplicateName
		}

		exists, err := st.RoutineNameExists(dup.Name, "")
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("Routine '%s' already exists", dup.Name)
		}

		if err := st.UpsertRoutine(dup); err != nil {
			return fmt.Errorf("Failed to duplicate routine: %w", err)
		}

		fmt.Printf("✅ Created '%s'\n", dup.Name)
		return nil
	},
}

var deleteRoutineCmd = &cobra.Command{
	Use:   "delete-routine [routine]",
	Short: "Delete a routine by id or name (past sessions are kept)",
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

		if err := st.DeleteRoutine(r.ID); err != nil {
			return fmt.Errorf("Failed to delete routine: %w", err)
		}

		fmt.Printf("✅ Routine '%s' deleted successfully\n", r.Name)
		return nil
	},
}

func routineFromFile(path string, cat *catalog.Catalog) (models.Routine, error) {
	rt, err := utils.ParseRoutineFromTOML(path)
	if err != nil {
		return models.Routine{}, err
	}
	routine, err := rt.ToRoutine(cat.Resolve, time.Now())
	if err != nil {
		return models.Routine{}, fmt.Errorf("Invalid routine: %w", err)
	}
	return routine, nil
}

func init() {
	duplicateRoutineCmd.Flags().StringVarP(&duplicateName, "name", "n", "", "Name for the copy (default '<name> (Copy)')")

	rootCmd.AddCommand(createRoutineCmd)
	rootCmd.AddCommand(listRoutinesCmd)
	rootCmd.AddCommand(updateRoutineCmd)
	rootCmd.AddCommand(duplicateRoutineCmd)
	rootCmd.AddCommand(deleteRoutineCmd)
}
