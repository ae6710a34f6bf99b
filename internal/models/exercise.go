package models

const (
	CategoryCompound  = "compound"
	CategoryIsolation = "isolation"
	CategoryCardio    = "cardio"
)

const (
	EquipmentBarbell    = "barbell"
	EquipmentDumbbell   = "dumbbell"
	EquipmentMachine    = "machine"
	EquipmentCable      = "cable"
	EquipmentBodyweight = "bodyweight"
	EquipmentKettlebell = "kettlebell"
	EquipmentBand       = "band"
)

// Exercise is embedded by value in routines and sessions, so editing the
// catalog never invalidates a saved routine.
type Exercise struct {
	ID               string   `json:"id" toml:"id"`
	Name             string   `json:"name" toml:"name"`
	Description      string   `json:"description" toml:"description"`
	Category         string   `json:"category" toml:"category"`
	Equipment        string   `json:"equipment" toml:"equipment"`
	PrimaryMuscles   []string `json:"primary_muscles" toml:"primary_muscles"`
	SecondaryMuscles []string `json:"secondary_muscles,omitempty" toml:"secondary_muscles,omitempty"`
	Instructions     []string `json:"instructions,omitempty" toml:"instructions,omitempty"`
	RequiresWeight   bool     `json:"requires_weight" toml:"requires_weight"`
}

func (e Exercise) IsBarbell() bool {
	return e.Equipment == EquipmentBarbell
}

//
// For TOML parsing only
//

type ExerciseDefTOML struct {
	ID               string   `toml:"id"`
	Name             string   `toml:"name"`
	Description      string   `toml:"description"`
	Category         string   `toml:"category"`
	Equipment        string   `toml:"equipment"`
	PrimaryMuscles   []string `toml:"primary_muscles"`
	SecondaryMuscles []string `toml:"secondary_muscles"`
	Instructions     []string `toml:"instructions"`
	// Pointer so an omitted key defaults to true.
	RequiresWeight *bool `toml:"requires_weight"`
}

type ExerciseImport struct {
	Exercises []ExerciseDefTOML `toml:"exercise"`
}

func (d ExerciseDefTOML) ToExercise() Exercise {
	requiresWeight := true
	if d.RequiresWeight != nil {
		requiresWeight = *d.RequiresWeight
	}
	return Exercise{
		ID:               d.ID,
		Name:             d.Name,
		Description:      d.Description,
		Category:         d.Category,
		Equipment:        d.Equipment,
		PrimaryMuscles:   d.PrimaryMuscles,
		SecondaryMuscles: d.SecondaryMuscles,
		Instructions:     d.Instructions,
		RequiresWeight:   requiresWeight,
	}
}
