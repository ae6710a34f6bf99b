package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/catalog"
	"github.com/misterclayt0n/forja/internal/models"
	"github.com/spf13/cobra"
)

var (
	exerciseMuscle    string
	exerciseEquipment string
)

var listExercisesCmd = &cobra.Command{
	Use:   "list-exercises",
	Short: "List the exercise catalog, optionally filtered by muscle or equipment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		exercises := cat.List()
		if exerciseMuscle != "" {
			exercises = cat.ByMuscle(exerciseMuscle)
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		count := 0
		for _, ex := range exercises {
			if exerciseEquipment != "" && !strings.EqualFold(ex.Equipment, exerciseEquipment) {
				continue
			}
			weight := ""
			if !ex.RequiresWeight {
				weight = faint(" (bodyweight)")
			}
			fmt.Printf("%-28s %s%s\n", cyan(ex.Name), faint(ex.ID+" · "+strings.Join(ex.PrimaryMuscles, ", ")), weight)
			count++
		}

		if count == 0 {
			fmt.Println("No exercises match")
		}
		return nil
	},
}

var importExercisesCmd = &cobra.Command{
	Use:   "import-exercises [file]",
	Short: "Add custom exercises from a TOML file to your catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		extra, err := catalog.Parse(data)
		if err != nil {
			return err
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		// Both the id and the name must be new.
		for _, ex := range extra.List() {
			if _, err := cat.Resolve(ex.Name); err == nil {
				return fmt.Errorf("exercise %q already exists", ex.Name)
			}
		}
		if err := cat.Merge(extra); err != nil {
			return err
		}

		path, err := userExercisesPath()
		if err != nil {
			return err
		}
		stored, err := storedExercises(path)
		if err != nil {
			return err
		}
		stored = append(stored, extra.List()...)

		var out models.ExerciseImport
		for _, ex := range stored {
			requiresWeight := ex.RequiresWeight
			out.Exercises = append(out.Exercises, models.ExerciseDefTOML{
				ID:               ex.ID,
				Name:             ex.Name,
				Description:      ex.Description,
				Category:         ex.Category,
				Equipment:        ex.Equipment,
				PrimaryMuscles:   ex.PrimaryMuscles,
				SecondaryMuscles: ex.SecondaryMuscles,
				Instructions:     ex.Instructions,
				RequiresWeight:   &requiresWeight,
			})
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("Failed to create config directory: %w", err)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("Failed to write %s: %w", path, err)
		}
		defer f.Close()
		if err := toml.NewEncoder(f).Encode(out); err != nil {
			return fmt.Errorf("Failed to encode exercises: %w", err)
		}

		fmt.Printf("✅ Imported %d exercises\n", len(extra.List()))
		return nil
	},
}

// storedExercises returns the custom exercises already in the user file.
func storedExercises(path string) ([]models.Exercise, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cat, err := catalog.Parse(data)
	if err != nil {
		return nil, err
	}
	return cat.List(), nil
}

func init() {
	listExercisesCmd.Flags().StringVarP(&exerciseMuscle, "muscle", "m", "", "Filter by primary muscle")
	listExercisesCmd.Flags().StringVarP(&exerciseEquipment, "equipment", "e", "", "Filter by equipment")

	rootCmd.AddCommand(listExercisesCmd)
	rootCmd.AddCommand(importExercisesCmd)
}
