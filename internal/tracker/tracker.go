// Package tracker runs the single active workout across CLI invocations:
// it resumes the engine from the state file, applies progression when a
// session ends and persists the results.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/progression"
	"github.com/misterclayt0n/forja/internal/session"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=tracker_test

var ErrSessionActive = errors.New("a session is already in progress")

const QuickRoutineName = "Quick Workout"

type RoutineStore interface {
	ResolveRoutine(ref string) (*models.Routine, error)
	TouchRoutine(id string, at time.Time) error
}

type SessionStore interface {
	AppendSession(cs models.CompletedSession) error
}

type WeightStore interface {
	LoadWeights() ([]models.WeightRecord, error)
	SaveWeights(records []models.WeightRecord) error
}

// StateStore holds the active session between commands.
type StateStore interface {
	Save(state *models.ActiveSession) error
	Load() (*models.ActiveSession, error)
	Clear() error
	Exists() bool
}

type ExerciseResolver interface {
	Resolve(ref string) (models.Exercise, error)
}

type Deps struct {
	Routines  RoutineStore
	Sessions  SessionStore
	Weights   WeightStore
	State     StateStore
	Exercises ExerciseResolver
}

type Options struct {
	Policy     string
	Warmups    string
	BarWeight  float64
	Increments progression.Increments
	Now        func() time.Time
}

type Tracker struct {
	deps Deps
	opts Options
	log  logrus.FieldLogger
}

func New(deps Deps, opts Options, log logrus.FieldLogger) *Tracker {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Tracker{deps: deps, opts: opts, log: log}
}

// Result is the outcome of finishing a session.
type Result struct {
	Session models.CompletedSession
	Updates []progression.Update
	Stored  bool
}

func (t *Tracker) engineOptions(policy string, adHoc bool) session.Options {
	return session.Options{
		Policy:    policy,
		Warmups:   t.opts.Warmups,
		BarWeight: t.opts.BarWeight,
		AdHoc:     adHoc,
		Now:       t.opts.Now,
	}
}

func (t *Tracker) loadHistory() (progression.History, error) {
	records, err := t.deps.Weights.LoadWeights()
	if err != nil {
		return nil, err
	}
	return progression.NewHistory(records), nil
}

// Start begins a session from a saved routine. A failure to stamp the
// routine's last-used time does not stop the session: the engine is
// returned together with the error.
func (t *Tracker) Start(routineRef string) (*session.Engine, error) {
	if t.deps.State.Exists() {
		return nil, ErrSessionActive
	}

	routine, err := t.deps.Routines.ResolveRoutine(routineRef)
	if err != nil {
		return nil, err
	}

	history, err := t.loadHistory()
	if err != nil {
		return nil, err
	}

	engine, err := session.Start(*routine, history, t.engineOptions(t.opts.Policy, false))
	if err != nil {
		return nil, err
	}

	if err := t.Save(engine); err != nil {
		return nil, err
	}

	st := engine.State()
	logger := t.log.WithFields(logrus.Fields{"session_id": st.ID, "routine_id": routine.ID})
	logger.Info("session started")

	if err := t.deps.Routines.TouchRoutine(routine.ID, st.StartTime); err != nil {
		logger.WithError(err).Warn("could not update routine last-used time")
		return engine, err
	}
	return engine, nil
}

// StartQuick begins an unsaved session over the given exercises. Quick
// sessions always carry weights forward with the freeform policy.
func (t *Tracker) StartQuick(exerciseRefs []string, sets, reps, rest int) (*session.Engine, error) {
	if t.deps.State.Exists() {
		return nil, ErrSessionActive
	}
	if len(exerciseRefs) == 0 {
		return nil, session.ErrInvalidRoutine
	}

	routine := models.NewRoutine(QuickRoutineName, t.opts.Now())
	for _, ref := range exerciseRefs {
		ex, err := t.deps.Exercises.Resolve(ref)
		if err != nil {
			return nil, err
		}
		var weight *float64
		if ex.RequiresWeight {
			weight = new(float64)
		}
		routine.AddSlot(models.NewSlot(ex, sets, reps, weight, rest))
	}
	if err := routine.Validate(); err != nil {
		return nil, err
	}

	history, err := t.loadHistory()
	if err != nil {
		return nil, err
	}

	engine, err := session.Start(routine, history, t.engineOptions(models.PolicyFreeform, true))
	if err != nil {
		return nil, err
	}
	if err := t.Save(engine); err != nil {
		return nil, err
	}

	t.log.WithField("session_id", engine.State().ID).Info("quick session started")
	return engine, nil
}

// Active resumes the session in the state file.
func (t *Tracker) Active() (*session.Engine, error) {
	if !t.deps.State.Exists() {
		return nil, session.ErrNoActiveSession
	}

	state, err := t.deps.State.Load()
	if err != nil {
		return nil, fmt.Errorf("Failed to load session state: %w", err)
	}

	policy := state.Policy
	if policy == "" {
		policy = t.opts.Policy
	}
	return session.Resume(state, t.engineOptions(policy, state.AdHoc))
}

func (t *Tracker) Save(engine *session.Engine) error {
	if err := t.deps.State.Save(engine.State()); err != nil {
		return fmt.Errorf("Failed to save session state: %w", err)
	}
	return nil
}

// Finish ends the active session. The session log is written first and
// weight history only after it. Appends are idempotent and updates already
// recorded since the session started are skipped, so a failed finish can be
// retried without progressing twice. Persistence failures are combined into the returned
// error; the returned Result always carries the completed session.
func (t *Tracker) Finish() (Result, error) {
	engine, err := t.Active()
	if err != nil {
		return Result{}, err
	}

	state := engine.State()
	completed, err := engine.Finish()
	if err != nil {
		return Result{}, err
	}

	res := Result{Session: completed}
	logger := t.log.WithField("session_id", completed.ID)

	if err := t.deps.Sessions.AppendSession(completed); err != nil {
		logger.WithError(err).Error("could not store finished session")
		return res, err
	}
	res.Stored = true

	var errs error
	history, err := t.loadHistory()
	if err != nil {
		logger.WithError(err).Error("could not load weight history")
		errs = multierr.Append(errs, err)
	} else {
		updates := progression.Next(state.Policy, completed, engine.Slots(), history, t.opts.Increments)
		res.Updates = history.Pending(updates, completed.StartTime)
		for _, u := range res.Updates {
			logger.WithFields(logrus.Fields{
				"exercise_id": u.ExerciseID,
				"previous":    u.Previous,
				"next":        u.Weight,
				"increased":   u.Increased,
			}).Debug("progression decision")
		}

		history.Apply(res.Updates, t.opts.Now())
		if err := t.deps.Weights.SaveWeights(history.Records()); err != nil {
			logger.WithError(err).Error("could not save weight history")
			errs = multierr.Append(errs, err)
		}
	}

	if err := t.deps.State.Clear(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("Failed to clear session state: %w", err))
	}

	logger.Info("session finished")
	return res, errs
}

// Cancel discards the active session without recording anything.
func (t *Tracker) Cancel() error {
	engine, err := t.Active()
	if err != nil {
		return err
	}
	if err := engine.Cancel(); err != nil {
		return err
	}
	if err := t.deps.State.Clear(); err != nil {
		return fmt.Errorf("Failed to clear session state: %w", err)
	}

	t.log.WithField("session_id", engine.State().ID).Info("session cancelled")
	return nil
}
