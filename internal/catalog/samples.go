package catalog

import (
	"fmt"
	"math"
	"time"

	"github.com/misterclayt0n/forja/internal/models"
)

type sampleSlot struct {
	exerciseID string
	sets, reps int
	weight     *float64
	rest       int
}

type sampleRoutine struct {
	name     string
	category string
	slots    []sampleSlot
}

func lbs(w float64) *float64 { return &w }

var samples = []sampleRoutine{
	{
		name:     "Chest Day",
		category: "Upper Body",
		slots: []sampleSlot{
			{"barbell-bench-press", 4, 8, lbs(135), 180},
			{"incline-bench-press", 4, 10, lbs(95), 120},
			{"dumbbell-flyes", 3, 12, lbs(30), 90},
			{"push-ups", 3, 15, nil, 60},
		},
	},
	{
		name:     "Leg Day",
		category: "Lower Body",
		slots: []sampleSlot{
			{"barbell-squat", 5, 5, lbs(185), 240},
			{"leg-press", 4, 12, lbs(270), 120},
			{"leg-curl", 3, 12, lbs(80), 90},
			{"calf-raises", 4, 15, lbs(100), 60},
		},
	},
	{
		name:     "Back & Biceps",
		category: "Pull",
		slots: []sampleSlot{
			{"barbell-deadlift", 3, 5, lbs(225), 240},
			{"pull-ups", 4, 10, nil, 120},
			{"barbell-row", 4, 8, lbs(135), 120},
			{"barbell-curl", 3, 10, lbs(60), 90},
		},
	},
	{
		name:     "StrongLifts 5×5 A",
		category: "StrongLifts 5×5",
		slots: []sampleSlot{
			{"barbell-squat", 5, 5, lbs(45), 180},
			{"barbell-bench-press", 5, 5, lbs(45), 180},
			{"barbell-row", 5, 5, lbs(65), 180},
		},
	},
	{
		name:     "StrongLifts 5×5 B",
		category: "StrongLifts 5×5",
		slots: []sampleSlot{
			{"barbell-squat", 5, 5, lbs(45), 180},
			{"overhead-press", 5, 5, lbs(45), 180},
			{"barbell-deadlift", 1, 5, lbs(95), 180},
		},
	},
	{
		name:     "Core Blast",
		category: "Core",
		slots: []sampleSlot{
			{"plank", 3, 60, nil, 60},
			{"crunches", 4, 25, nil, 45},
			{"russian-twists", 3, 30, nil, 45},
			{"leg-raises", 3, 15, nil, 60},
			{"mountain-climbers", 3, 30, nil, 45},
		},
	},
}

const kgPerLb = 0.45359237

// inUnit copies a sample weight, written in pounds, converted to unit.
// Kilograms are rounded to 2.5 so they load with standard metric plates.
func inUnit(w *float64, unit string) *float64 {
	if w == nil {
		return nil
	}
	v := *w
	if unit == models.UnitKg {
		v = math.Round(v*kgPerLb/2.5) * 2.5
	}
	return &v
}

// SampleRoutines builds the starter routines seeded by `forja init`, with
// weights in unit.
func (c *Catalog) SampleRoutines(now time.Time, unit string) ([]models.Routine, error) {
	var routines []models.Routine
	for _, s := range samples {
		r := models.NewRoutine(s.name, now)
		category := s.category
		r.Category = &category
		for _, slot := range s.slots {
			ex, err := c.Get(slot.exerciseID)
			if err != nil {
				return nil, fmt.Errorf("sample routine %s: %w", s.name, err)
			}
			r.AddSlot(models.NewSlot(ex, slot.sets, slot.reps, inUnit(slot.weight, unit), slot.rest))
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("sample routine %s: %w", s.name, err)
		}
		routines = append(routines, r)
	}
	return routines, nil
}
