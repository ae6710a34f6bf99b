package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultSets        = 3
	DefaultReps        = 10
	DefaultRestSeconds = 90

	// Rough time spent under the bar per set, used for duration estimates.
	secondsPerSet = 45
)

var (
	ErrEmptyRoutineName = errors.New("routine name is required")
	ErrNoSlots          = errors.New("routine has no exercises")
	ErrInvalidSlot      = errors.New("invalid exercise slot")
)

// Routine is a saved, user-composed workout ("custom workout").
type Routine struct {
	ID         string         `json:"id" toml:"id"`
	Name       string         `json:"name" toml:"name"`
	Slots      []ExerciseSlot `json:"slots" toml:"slots"`
	CreatedAt  time.Time      `json:"created_at" toml:"created_at"`
	LastUsedAt *time.Time     `json:"last_used_at,omitempty" toml:"last_used_at,omitempty"`
	Category   *string        `json:"category,omitempty" toml:"category,omitempty"`
	Notes      *string        `json:"notes,omitempty" toml:"notes,omitempty"`
}

// ExerciseSlot is one exercise inside a routine along with its targets.
// Weight is nil iff the exercise does not require weight.
type ExerciseSlot struct {
	ID          string   `json:"id" toml:"id"`
	Exercise    Exercise `json:"exercise" toml:"exercise"`
	Sets        int      `json:"sets" toml:"sets"`
	Reps        int      `json:"reps" toml:"reps"`
	Weight      *float64 `json:"weight,omitempty" toml:"weight,omitempty"`
	RestSeconds int      `json:"rest_seconds" toml:"rest_seconds"`
	Order       int      `json:"order" toml:"order"`
	Notes       *string  `json:"notes,omitempty" toml:"notes,omitempty"`
}

func NewRoutine(name string, now time.Time) Routine {
	return Routine{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now.UTC(),
	}
}

func NewSlot(ex Exercise, sets, reps int, weight *float64, rest int) ExerciseSlot {
	return ExerciseSlot{
		ID:          uuid.New().String(),
		Exercise:    ex,
		Sets:        sets,
		Reps:        reps,
		Weight:      weight,
		RestSeconds: rest,
	}
}

func (r *Routine) TotalSets() int {
	total := 0
	for _, s := range r.Slots {
		total += s.Sets
	}
	return total
}

// EstimatedDuration assumes a fixed time per set plus every configured rest.
func (r *Routine) EstimatedDuration() time.Duration {
	seconds := r.TotalSets() * secondsPerSet
	for _, s := range r.Slots {
		seconds += s.Sets * s.RestSeconds
	}
	return time.Duration(seconds) * time.Second
}

func (r *Routine) AddSlot(slot ExerciseSlot) {
	r.Slots = append(r.Slots, slot)
	r.Reindex()
}

func (r *Routine) RemoveSlot(index int) error {
	if index < 0 || index >= len(r.Slots) {
		return fmt.Errorf("slot index %d out of range", index)
	}
	r.Slots = append(r.Slots[:index], r.Slots[index+1:]...)
	r.Reindex()
	return nil
}

// MoveSlot moves the slot at from so that it ends up at position to.
func (r *Routine) MoveSlot(from, to int) error {
	if from < 0 || from >= len(r.Slots) || to < 0 || to >= len(r.Slots) {
		return fmt.Errorf("cannot move slot %d to %d: out of range", from, to)
	}
	slot := r.Slots[from]
	r.Slots = append(r.Slots[:from], r.Slots[from+1:]...)
	r.Slots = append(r.Slots[:to], append([]ExerciseSlot{slot}, r.Slots[to:]...)...)
	r.Reindex()
	return nil
}

// Reindex restores the dense 0..n-1 order matching list position.
func (r *Routine) Reindex() {
	for i := range r.Slots {
		r.Slots[i].Order = i
	}
}

// Duplicate returns a copy with fresh ids that has never been used.
func (r *Routine) Duplicate(now time.Time) Routine {
	dup := Routine{
		ID:        uuid.New().String(),
		Name:      r.Name + " (Copy)",
		CreatedAt: now.UTC(),
		Category:  r.Category,
		Notes:     r.Notes,
	}
	for _, s := range r.Slots {
		s.ID = uuid.New().String()
		dup.Slots = append(dup.Slots, s)
	}
	dup.Reindex()
	return dup
}

// Validate rejects routines the session engine is not prepared to run.
func (r *Routine) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyRoutineName
	}
	if len(r.Slots) == 0 {
		return ErrNoSlots
	}
	for i, s := range r.Slots {
		name := s.Exercise.Name
		switch {
		case s.Sets < 1:
			return fmt.Errorf("%w: %s needs at least 1 set", ErrInvalidSlot, name)
		case s.Reps < 1:
			return fmt.Errorf("%w: %s needs at least 1 rep", ErrInvalidSlot, name)
		case s.RestSeconds < 0:
			return fmt.Errorf("%w: %s rest time cannot be negative", ErrInvalidSlot, name)
		case s.Exercise.RequiresWeight && s.Weight == nil:
			return fmt.Errorf("%w: %s requires a weight", ErrInvalidSlot, name)
		case !s.Exercise.RequiresWeight && s.Weight != nil:
			return fmt.Errorf("%w: %s does not take a weight", ErrInvalidSlot, name)
		case s.Weight != nil && *s.Weight < 0:
			return fmt.Errorf("%w: %s weight cannot be negative", ErrInvalidSlot, name)
		case s.Order != i:
			return fmt.Errorf("%w: %s has order %d at position %d", ErrInvalidSlot, name, s.Order, i)
		}
	}
	return nil
}

//
// For TOML parsing only
//

type RoutineTOML struct {
	Name      string     `toml:"name"`
	Category  string     `toml:"category"`
	Notes     string     `toml:"notes"`
	Exercises []SlotTOML `toml:"exercise"`
}

type SlotTOML struct {
	Exercise string   `toml:"exercise"` // Catalog id or name.
	Sets     int      `toml:"sets"`
	Reps     int      `toml:"reps"`
	Weight   *float64 `toml:"weight"`
	Rest     *int     `toml:"rest"`
	Notes    string   `toml:"notes"`
}

// ToRoutine resolves every exercise reference and fills in defaults.
func (rt RoutineTOML) ToRoutine(resolve func(ref string) (Exercise, error), now time.Time) (Routine, error) {
	routine := NewRoutine(rt.Name, now)
	routine.Category = optionalString(rt.Category)
	routine.Notes = optionalString(rt.Notes)

	for _, st := range rt.Exercises {
		ex, err := resolve(st.Exercise)
		if err != nil {
			return Routine{}, fmt.Errorf("exercise '%s': %w", st.Exercise, err)
		}

		sets, reps, rest := st.Sets, st.Reps, DefaultRestSeconds
		if sets == 0 {
			sets = DefaultSets
		}
		if reps == 0 {
			reps = DefaultReps
		}
		if st.Rest != nil {
			rest = *st.Rest
		}

		weight := st.Weight
		if ex.RequiresWeight && weight == nil {
			weight = new(float64)
		}

		slot := NewSlot(ex, sets, reps, weight, rest)
		slot.Notes = optionalString(st.Notes)
		routine.AddSlot(slot)
	}

	if err := routine.Validate(); err != nil {
		return Routine{}, err
	}
	return routine, nil
}

func optionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
