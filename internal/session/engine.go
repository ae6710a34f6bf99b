// Package session implements the state machine for one in-progress workout.
//
// An Engine is Active from Start until Finish or Cancel; both are terminal
// and every later call fails with ErrNoActiveSession. Exactly one engine is
// expected to exist per process, which callers enforce.
package session

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/warmup"
)

type Status int

const (
	StatusActive Status = iota
	StatusFinished
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusFinished:
		return "finished"
	case StatusCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// WeightSource provides the last working weight used for an exercise.
type WeightSource interface {
	Lookup(ex models.Exercise) (float64, bool)
}

type Options struct {
	Policy    string // models.PolicyStrictProgram or models.PolicyFreeform.
	Warmups   string // models.WarmupsDisplay or models.WarmupsMaterialized.
	BarWeight float64
	AdHoc     bool
	Now       func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Policy == "" {
		o.Policy = models.PolicyStrictProgram
	}
	if o.Warmups == "" {
		o.Warmups = models.WarmupsDisplay
	}
	if o.BarWeight == 0 {
		o.BarWeight = warmup.DefaultBarWeight
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Rest tells the caller whether to arm the rest timer after a completed set.
// The engine never runs the timer itself.
type Rest struct {
	Start    bool
	Duration time.Duration
}

type Engine struct {
	mu     sync.Mutex
	state  *models.ActiveSession
	status Status
	now    func() time.Time
}

// Start instantiates a session from a routine. Every working set is seeded
// with the remembered weight for its exercise, falling back to the slot's
// target weight and then to 0.
func Start(routine models.Routine, weights WeightSource, opts Options) (*Engine, error) {
	if len(routine.Slots) == 0 {
		return nil, ErrInvalidRoutine
	}
	opts = opts.withDefaults()

	state := &models.ActiveSession{
		ID:          uuid.New().String(),
		RoutineID:   routine.ID,
		RoutineName: routine.Name,
		AdHoc:       opts.AdHoc,
		StartTime:   opts.Now().UTC(),
		Policy:      opts.Policy,
		Warmups:     opts.Warmups,
	}

	for _, slot := range routine.Slots {
		w := seedWeight(slot, weights)

		var sets []models.WorkingSet
		if opts.Warmups == models.WarmupsMaterialized && slot.Exercise.RequiresWeight && slot.Exercise.IsBarbell() {
			for _, rung := range warmup.Ramp(w, opts.BarWeight) {
				sets = append(sets, models.WorkingSet{Weight: rung.Weight, Reps: rung.Reps, Warmup: true})
			}
		}
		for i := 0; i < slot.Sets; i++ {
			sets = append(sets, models.WorkingSet{Weight: w, Reps: slot.Reps})
		}

		state.Slots = append(state.Slots, models.ActiveSlot{Slot: slot, Sets: sets})
	}

	return &Engine{state: state, status: StatusActive, now: opts.Now}, nil
}

// Resume rebuilds an engine around a state loaded from disk.
func Resume(state *models.ActiveSession, opts Options) (*Engine, error) {
	if state == nil || state.EndTime != nil {
		return nil, ErrNoActiveSession
	}
	if len(state.Slots) == 0 {
		return nil, ErrInvalidRoutine
	}
	opts = opts.withDefaults()

	st := cloneState(state)
	st.CurrentSlot = clamp(st.CurrentSlot, 0, len(st.Slots)-1)
	return &Engine{state: st, status: StatusActive, now: opts.Now}, nil
}

func seedWeight(slot models.ExerciseSlot, weights WeightSource) float64 {
	if weights != nil {
		if w, ok := weights.Lookup(slot.Exercise); ok {
			return w
		}
	}
	if slot.Weight != nil {
		return *slot.Weight
	}
	return 0
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Engine) checkActive() error {
	if e.status != StatusActive {
		return ErrNoActiveSession
	}
	return nil
}

func (e *Engine) workingSet(slotIndex, setIndex int) (*models.WorkingSet, error) {
	if slotIndex < 0 || slotIndex >= len(e.state.Slots) {
		return nil, fmt.Errorf("%w: slot %d of %d", ErrOutOfRange, slotIndex, len(e.state.Slots))
	}
	sets := e.state.Slots[slotIndex].Sets
	if setIndex < 0 || setIndex >= len(sets) {
		return nil, fmt.Errorf("%w: set %d of %d", ErrOutOfRange, setIndex, len(sets))
	}
	return &e.state.Slots[slotIndex].Sets[setIndex], nil
}

// CompleteSet marks a set done and appends its snapshot to the result log.
// Completing an already completed set is a no-op.
func (e *Engine) CompleteSet(slotIndex, setIndex int) (Rest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkActive(); err != nil {
		return Rest{}, err
	}
	ws, err := e.workingSet(slotIndex, setIndex)
	if err != nil {
		return Rest{}, err
	}
	if ws.Completed {
		return Rest{}, nil
	}

	ws.Completed = true
	active := e.state.Slots[slotIndex]

	var weight *float64
	if ws.Weight > 0 {
		w := ws.Weight
		weight = &w
	}
	e.state.Results = append(e.state.Results, models.SetResult{
		ID:           uuid.New().String(),
		SlotID:       active.Slot.ID,
		ExerciseID:   active.Slot.Exercise.ID,
		ExerciseName: active.Slot.Exercise.Name,
		Weight:       weight,
		Reps:         ws.Reps,
		SetNumber:    setNumber(active.Sets, setIndex),
		CompletedAt:  e.now().UTC(),
		Warmup:       ws.Warmup,
	})

	isLast := setIndex == len(active.Sets)-1
	if ws.Warmup || isLast || active.Slot.RestSeconds <= 0 {
		return Rest{}, nil
	}

	e.state.Rest = models.RestState{Active: true, Remaining: active.Slot.RestSeconds}
	return Rest{Start: true, Duration: time.Duration(active.Slot.RestSeconds) * time.Second}, nil
}

// setNumber numbers warm-ups and working sets separately, so the first
// working set is 1 even when a ramp precedes it.
func setNumber(sets []models.WorkingSet, setIndex int) int {
	n := 0
	for i := 0; i <= setIndex; i++ {
		if sets[i].Warmup == sets[setIndex].Warmup {
			n++
		}
	}
	return n
}

func (e *Engine) UpdateWeight(slotIndex, setIndex int, weight float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkActive(); err != nil {
		return err
	}
	if weight < 0 {
		return ErrInvalidValue
	}
	ws, err := e.workingSet(slotIndex, setIndex)
	if err != nil {
		return err
	}
	ws.Weight = weight
	return nil
}

func (e *Engine) UpdateReps(slotIndex, setIndex int, reps int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkActive(); err != nil {
		return err
	}
	if reps < 0 {
		return ErrInvalidValue
	}
	ws, err := e.workingSet(slotIndex, setIndex)
	if err != nil {
		return err
	}
	ws.Reps = reps
	return nil
}

// Advance moves the current slot by delta, clamped to the valid range.
func (e *Engine) Advance(delta int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkActive(); err != nil {
		return err
	}
	e.state.CurrentSlot = clamp(e.state.CurrentSlot+delta, 0, len(e.state.Slots)-1)
	return nil
}

func (e *Engine) CurrentSlot() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CurrentSlot
}

// Progress is the fraction of target working sets completed so far.
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0
	for _, s := range e.state.Slots {
		total += s.Slot.Sets
	}
	if total == 0 {
		return 0
	}

	completed := 0
	for _, r := range e.state.Results {
		if !r.Warmup {
			completed++
		}
	}
	return float64(completed) / float64(total)
}

func (e *Engine) SetNotes(notes string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkActive(); err != nil {
		return err
	}
	e.state.Notes = notes
	return nil
}

// SetRest records the rest timer sub-state so it survives between commands.
func (e *Engine) SetRest(rest models.RestState) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkActive(); err != nil {
		return err
	}
	e.state.Rest = rest
	return nil
}

// Slots returns the slot definitions the session was started from.
func (e *Engine) Slots() []models.ExerciseSlot {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.ExerciseSlot, 0, len(e.state.Slots))
	for _, s := range e.state.Slots {
		out = append(out, s.Slot)
	}
	return out
}

// State returns a copy of the session state.
func (e *Engine) State() *models.ActiveSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneState(e.state)
}

// Finish stamps the end time and returns the immutable summary. The engine
// accepts no further calls afterwards.
func (e *Engine) Finish() (models.CompletedSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkActive(); err != nil {
		return models.CompletedSession{}, err
	}

	end := e.now().UTC()
	e.state.EndTime = &end
	e.state.Rest = models.RestState{}
	e.status = StatusFinished

	completed := models.CompletedSession{
		ID:          e.state.ID,
		RoutineID:   e.state.RoutineID,
		RoutineName: e.state.RoutineName,
		StartTime:   e.state.StartTime,
		EndTime:     end,
		Results:     cloneResults(e.state.Results),
	}
	if e.state.Notes != "" {
		notes := e.state.Notes
		completed.Notes = &notes
	}
	return completed, nil
}

// Cancel discards the session without producing a summary.
func (e *Engine) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkActive(); err != nil {
		return err
	}
	e.status = StatusCancelled
	e.state.Results = nil
	e.state.Rest = models.RestState{}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func cloneResults(results []models.SetResult) []models.SetResult {
	out := make([]models.SetResult, len(results))
	for i, r := range results {
		if r.Weight != nil {
			w := *r.Weight
			r.Weight = &w
		}
		out[i] = r
	}
	return out
}

func cloneState(s *models.ActiveSession) *models.ActiveSession {
	c := *s
	if s.EndTime != nil {
		end := *s.EndTime
		c.EndTime = &end
	}
	c.Slots = make([]models.ActiveSlot, len(s.Slots))
	for i, as := range s.Slots {
		c.Slots[i] = models.ActiveSlot{Slot: as.Slot, Sets: slices.Clone(as.Sets)}
	}
	c.Results = cloneResults(s.Results)
	return &c
}
