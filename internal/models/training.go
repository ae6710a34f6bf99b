package models

import "time"

const (
	PolicyStrictProgram = "strict-program"
	PolicyFreeform      = "freeform"
)

const (
	WarmupsDisplay      = "display"
	WarmupsMaterialized = "materialized"
)

// Weight units. Stored weights carry no unit; the configured one labels them.
const (
	UnitLbs = "lbs"
	UnitKg  = "kg"
)

// WorkingSet is the editable, in-progress state of one set.
type WorkingSet struct {
	Weight    float64 `toml:"weight"`
	Reps      int     `toml:"reps"`
	Completed bool    `toml:"completed"`
	Warmup    bool    `toml:"warmup"`
}

// SetResult is an immutable snapshot appended when a set is completed.
// A nil Weight means bodyweight or unspecified.
type SetResult struct {
	ID           string    `json:"id" toml:"id"`
	SlotID       string    `json:"slot_id" toml:"slot_id"`
	ExerciseID   string    `json:"exercise_id" toml:"exercise_id"`
	ExerciseName string    `json:"exercise_name" toml:"exercise_name"`
	Weight       *float64  `json:"weight,omitempty" toml:"weight,omitempty"`
	Reps         int       `json:"reps" toml:"reps"`
	SetNumber    int       `json:"set_number" toml:"set_number"` // 1-based; warm-ups and working sets count separately.
	CompletedAt  time.Time `json:"completed_at" toml:"completed_at"`
	Warmup       bool      `json:"warmup" toml:"warmup"`
}

type ActiveSlot struct {
	Slot ExerciseSlot `toml:"slot"`
	Sets []WorkingSet `toml:"sets"`
}

type RestState struct {
	Active    bool `toml:"active"`
	Remaining int  `toml:"remaining"` // Seconds.
}

// ActiveSession is the in-progress workout. It is written to the state file
// between commands, so every field carries a toml tag.
type ActiveSession struct {
	ID          string       `toml:"session_id"`
	RoutineID   string       `toml:"routine_id"`
	RoutineName string       `toml:"routine_name"`
	AdHoc       bool         `toml:"ad_hoc"`
	StartTime   time.Time    `toml:"start_time"`
	EndTime     *time.Time   `toml:"end_time,omitempty"`
	CurrentSlot int          `toml:"current_slot"`
	Slots       []ActiveSlot `toml:"slots"`
	Results     []SetResult  `toml:"results"`
	Rest        RestState    `toml:"rest"`
	Notes       string       `toml:"notes"`
	Policy      string       `toml:"policy"`
	Warmups     string       `toml:"warmups"`
}

// CompletedSession is created once, when a session finishes, and never
// mutated afterwards.
type CompletedSession struct {
	ID          string      `json:"id" toml:"id"`
	RoutineID   string      `json:"routine_id" toml:"routine_id"`
	RoutineName string      `json:"routine_name" toml:"routine_name"`
	StartTime   time.Time   `json:"start_time" toml:"start_time"`
	EndTime     time.Time   `json:"end_time" toml:"end_time"`
	Results     []SetResult `json:"results" toml:"results"`
	Notes       *string     `json:"notes,omitempty" toml:"notes,omitempty"`
}

func (c CompletedSession) Duration() time.Duration {
	return c.EndTime.Sub(c.StartTime)
}

func (c CompletedSession) WorkingSetCount() int {
	count := 0
	for _, r := range c.Results {
		if !r.Warmup {
			count++
		}
	}
	return count
}

// WorkingResults returns the non-warmup results logged for one exercise.
func (c CompletedSession) WorkingResults(exerciseID string) []SetResult {
	var out []SetResult
	for _, r := range c.Results {
		if !r.Warmup && r.ExerciseID == exerciseID {
			out = append(out, r)
		}
	}
	return out
}

// Volume is the total weight moved (weight × reps) over working sets.
func (c CompletedSession) Volume() float64 {
	var total float64
	for _, r := range c.Results {
		if r.Warmup || r.Weight == nil || r.Reps <= 0 {
			continue
		}
		total += *r.Weight * float64(r.Reps)
	}
	return total
}

// WeightRecord is the remembered working weight for one exercise. Records
// migrated from name-keyed history have an empty ExerciseID.
type WeightRecord struct {
	ExerciseID   string    `json:"exercise_id" toml:"exercise_id"`
	ExerciseName string    `json:"exercise_name" toml:"exercise_name"`
	Weight       float64   `json:"weight" toml:"weight"`
	UpdatedAt    time.Time `json:"updated_at" toml:"updated_at"`
}

// Key is the exercise id, or the name for legacy records.
func (w WeightRecord) Key() string {
	if w.ExerciseID != "" {
		return w.ExerciseID
	}
	return w.ExerciseName
}
