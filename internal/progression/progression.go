// Package progression decides the next working weight for each exercise
// after a finished session.
package progression

import (
	"strings"

	"github.com/misterclayt0n/forja/internal/models"
)

const (
	DefaultIncrement = 5.0
	MetricIncrement  = 2.5
)

// Increments is the per-exercise weight jump used by the strict-program
// policy. A pattern matches when it appears in the exercise name or id,
// case-insensitively; the longest matching pattern wins.
type Increments struct {
	Default  float64
	Patterns map[string]float64
}

func DefaultIncrements() Increments {
	return Increments{
		Default:  DefaultIncrement,
		Patterns: map[string]float64{"deadlift": 10},
	}
}

// MetricIncrements mirrors DefaultIncrements for kilogram training.
func MetricIncrements() Increments {
	return Increments{
		Default:  MetricIncrement,
		Patterns: map[string]float64{"deadlift": 5},
	}
}

func (inc Increments) For(ex models.Exercise) float64 {
	name := strings.ToLower(ex.Name)
	id := strings.ToLower(ex.ID)

	best, bestLen := inc.Default, -1
	for pattern, value := range inc.Patterns {
		p := strings.ToLower(pattern)
		if p == "" || !(strings.Contains(name, p) || strings.Contains(id, p)) {
			continue
		}
		if len(p) > bestLen || (len(p) == bestLen && value > best) {
			best, bestLen = value, len(p)
		}
	}
	return best
}

type Update struct {
	ExerciseID   string
	ExerciseName string
	Previous     float64 // Weight the session was trained with.
	Weight       float64 // Next working weight.
	Increased    bool
}

type exerciseTarget struct {
	exercise models.Exercise
	sets     int
	reps     map[string]int // slot id -> target reps
	slot     models.ExerciseSlot
}

// Next applies policy to a finished session. Only weighted exercises that
// have at least one logged working set produce an update.
func Next(policy string, completed models.CompletedSession, slots []models.ExerciseSlot, history History, inc Increments) []Update {
	var order []string
	targets := make(map[string]*exerciseTarget)
	for _, s := range slots {
		if !s.Exercise.RequiresWeight {
			continue
		}
		t, ok := targets[s.Exercise.ID]
		if !ok {
			t = &exerciseTarget{exercise: s.Exercise, reps: make(map[string]int), slot: s}
			targets[s.Exercise.ID] = t
			order = append(order, s.Exercise.ID)
		}
		t.sets += s.Sets
		t.reps[s.ID] = s.Reps
	}

	var updates []Update
	for _, id := range order {
		t := targets[id]
		results := completed.WorkingResults(id)
		if len(results) == 0 {
			continue
		}

		var u Update
		switch policy {
		case models.PolicyFreeform:
			last := results[len(results)-1]
			if last.Weight == nil {
				continue
			}
			u = Update{Previous: usedWeight(t, results, history), Weight: *last.Weight}
		default:
			used := usedWeight(t, results, history)
			u = Update{Previous: used, Weight: used}
			if metTargets(t, results) {
				u.Weight = used + inc.For(t.exercise)
				u.Increased = true
			}
		}
		u.ExerciseID = id
		u.ExerciseName = t.exercise.Name
		updates = append(updates, u)
	}

	return updates
}

// metTargets reports whether every target working set was logged and each
// logged set reached its slot's target reps.
func metTargets(t *exerciseTarget, results []models.SetResult) bool {
	if len(results) < t.sets {
		return false
	}
	for _, r := range results {
		target, ok := t.reps[r.SlotID]
		if !ok {
			target = t.slot.Reps
		}
		if r.Reps < target {
			return false
		}
	}
	return true
}

// usedWeight is the heaviest working weight logged, falling back to the
// remembered weight and then the slot target.
func usedWeight(t *exerciseTarget, results []models.SetResult, history History) float64 {
	var best float64
	found := false
	for _, r := range results {
		if r.Weight != nil && (!found || *r.Weight > best) {
			best, found = *r.Weight, true
		}
	}
	if found {
		return best
	}
	if w, ok := history.Lookup(t.exercise); ok {
		return w
	}
	if t.slot.Weight != nil {
		return *t.slot.Weight
	}
	return 0
}
