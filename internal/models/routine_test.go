package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	squat   = Exercise{ID: "barbell-squat", Name: "Barbell Squat", Equipment: EquipmentBarbell, RequiresWeight: true}
	bench   = Exercise{ID: "barbell-bench-press", Name: "Barbell Bench Press", Equipment: EquipmentBarbell, RequiresWeight: true}
	pullUps = Exercise{ID: "pull-ups", Name: "Pull-Ups", Equipment: EquipmentBodyweight}
)

func weight(w float64) *float64 { return &w }

func testRoutine() Routine {
	r := NewRoutine("Full Body", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	r.AddSlot(NewSlot(squat, 5, 5, weight(185), 180))
	r.AddSlot(NewSlot(bench, 3, 8, weight(135), 120))
	r.AddSlot(NewSlot(pullUps, 3, 10, nil, 90))
	return r
}

func orders(r Routine) []int {
	var out []int
	for _, s := range r.Slots {
		out = append(out, s.Order)
	}
	return out
}

func TestRoutine_OrderStaysDense(t *testing.T) {
	r := testRoutine()
	assert.Equal(t, []int{0, 1, 2}, orders(r))

	require.NoError(t, r.MoveSlot(2, 0))
	assert.Equal(t, []int{0, 1, 2}, orders(r))
	assert.Equal(t, "pull-ups", r.Slots[0].Exercise.ID)
	assert.Equal(t, "barbell-squat", r.Slots[1].Exercise.ID)

	require.NoError(t, r.RemoveSlot(1))
	assert.Equal(t, []int{0, 1}, orders(r))
	assert.Equal(t, "barbell-bench-press", r.Slots[1].Exercise.ID)

	assert.Error(t, r.RemoveSlot(5))
	assert.Error(t, r.MoveSlot(0, 2))
}

func TestRoutine_Totals(t *testing.T) {
	r := testRoutine()
	assert.Equal(t, 11, r.TotalSets())

	// 11 sets * 45s + 5*180 + 3*120 + 3*90
	want := time.Duration(11*45+5*180+3*120+3*90) * time.Second
	assert.Equal(t, want, r.EstimatedDuration())
}

func TestRoutine_Duplicate(t *testing.T) {
	r := testRoutine()
	used := time.Now()
	r.LastUsedAt = &used

	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	dup := r.Duplicate(now)

	assert.NotEqual(t, r.ID, dup.ID)
	assert.Equal(t, "Full Body (Copy)", dup.Name)
	assert.Nil(t, dup.LastUsedAt)
	assert.Equal(t, now, dup.CreatedAt)
	require.Len(t, dup.Slots, 3)
	for i := range dup.Slots {
		assert.NotEqual(t, r.Slots[i].ID, dup.Slots[i].ID)
		assert.Equal(t, r.Slots[i].Exercise, dup.Slots[i].Exercise)
	}
}

func TestRoutine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Routine)
		wantErr error
	}{
		{"valid", func(r *Routine) {}, nil},
		{"empty name", func(r *Routine) { r.Name = "  " }, ErrEmptyRoutineName},
		{"no slots", func(r *Routine) { r.Slots = nil }, ErrNoSlots},
		{"zero sets", func(r *Routine) { r.Slots[0].Sets = 0 }, ErrInvalidSlot},
		{"zero reps", func(r *Routine) { r.Slots[1].Reps = 0 }, ErrInvalidSlot},
		{"negative rest", func(r *Routine) { r.Slots[1].RestSeconds = -1 }, ErrInvalidSlot},
		{"missing weight", func(r *Routine) { r.Slots[0].Weight = nil }, ErrInvalidSlot},
		{"bodyweight with weight", func(r *Routine) { r.Slots[2].Weight = weight(20) }, ErrInvalidSlot},
		{"negative weight", func(r *Routine) { r.Slots[0].Weight = weight(-5) }, ErrInvalidSlot},
		{"order gap", func(r *Routine) { r.Slots[2].Order = 7 }, ErrInvalidSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRoutine()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestRoutineTOML_ToRoutine(t *testing.T) {
	lookup := map[string]Exercise{
		"barbell-squat": squat,
		"Pull-Ups":      pullUps,
	}
	resolve := func(ref string) (Exercise, error) {
		ex, ok := lookup[ref]
		if !ok {
			return Exercise{}, errors.New("not found")
		}
		return ex, nil
	}

	rest := 240
	rt := RoutineTOML{
		Name:     "Legs",
		Category: "Lower Body",
		Exercises: []SlotTOML{
			{Exercise: "barbell-squat", Sets: 5, Reps: 5, Weight: weight(225), Rest: &rest},
			{Exercise: "Pull-Ups"},
		},
	}

	now := time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)
	r, err := rt.ToRoutine(resolve, now)
	require.NoError(t, err)

	assert.Equal(t, "Legs", r.Name)
	require.NotNil(t, r.Category)
	assert.Equal(t, "Lower Body", *r.Category)
	assert.Nil(t, r.Notes)
	require.Len(t, r.Slots, 2)

	assert.Equal(t, 240, r.Slots[0].RestSeconds)
	assert.Equal(t, 225.0, *r.Slots[0].Weight)

	// Defaults for an entry that only names the exercise.
	assert.Equal(t, DefaultSets, r.Slots[1].Sets)
	assert.Equal(t, DefaultReps, r.Slots[1].Reps)
	assert.Equal(t, DefaultRestSeconds, r.Slots[1].RestSeconds)
	assert.Nil(t, r.Slots[1].Weight)
	assert.Equal(t, 1, r.Slots[1].Order)

	rt.Exercises = append(rt.Exercises, SlotTOML{Exercise: "unknown"})
	_, err = rt.ToRoutine(resolve, now)
	assert.Error(t, err)
}

func TestCompletedSession_Derived(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	cs := CompletedSession{
		StartTime: start,
		EndTime:   start.Add(75 * time.Minute),
		Results: []SetResult{
			{ExerciseID: "barbell-squat", Weight: weight(45), Reps: 5, Warmup: true},
			{ExerciseID: "barbell-squat", Weight: weight(185), Reps: 5},
			{ExerciseID: "barbell-squat", Weight: weight(185), Reps: 4},
			{ExerciseID: "pull-ups", Reps: 10},
		},
	}

	assert.Equal(t, 75*time.Minute, cs.Duration())
	assert.Equal(t, 3, cs.WorkingSetCount())
	assert.Len(t, cs.WorkingResults("barbell-squat"), 2)
	assert.Equal(t, 185.0*9, cs.Volume())
}
