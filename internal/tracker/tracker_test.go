package tracker_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/misterclayt0n/forja/internal/catalog"
	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/progression"
	"github.com/misterclayt0n/forja/internal/session"
	"github.com/misterclayt0n/forja/internal/storage"
	"github.com/misterclayt0n/forja/internal/tracker"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var t0 = time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

type fixture struct {
	routines *MockRoutineStore
	sessions *MockSessionStore
	weights  *MockWeightStore
	state    utils.SessionFile
	tracker  *tracker.Tracker
	routine  models.Routine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	cat, err := catalog.Builtin()
	require.NoError(t, err)

	squat, err := cat.Get("barbell-squat")
	require.NoError(t, err)
	routine := models.NewRoutine("Leg Day", t0)
	w := 185.0
	routine.AddSlot(models.NewSlot(squat, 2, 5, &w, 180))

	f := &fixture{
		routines: NewMockRoutineStore(ctrl),
		sessions: NewMockSessionStore(ctrl),
		weights:  NewMockWeightStore(ctrl),
		state:    utils.SessionFile{Path: filepath.Join(t.TempDir(), "current_session.toml")},
		routine:  routine,
	}
	now := t0
	f.tracker = tracker.New(tracker.Deps{
		Routines:  f.routines,
		Sessions:  f.sessions,
		Weights:   f.weights,
		State:     f.state,
		Exercises: cat,
	}, tracker.Options{
		Policy:     models.PolicyStrictProgram,
		Warmups:    models.WarmupsDisplay,
		BarWeight:  45,
		Increments: progression.DefaultIncrements(),
		Now: func() time.Time {
			now = now.Add(time.Minute)
			return now
		},
	}, nil)
	return f
}

func (f *fixture) start(t *testing.T) *session.Engine {
	t.Helper()
	f.routines.EXPECT().ResolveRoutine("Leg Day").Return(&f.routine, nil)
	f.weights.EXPECT().LoadWeights().Return(nil, nil)
	f.routines.EXPECT().TouchRoutine(f.routine.ID, gomock.Any()).Return(nil)

	e, err := f.tracker.Start("Leg Day")
	require.NoError(t, err)
	return e
}

func (f *fixture) completeAll(t *testing.T) {
	t.Helper()
	e, err := f.tracker.Active()
	require.NoError(t, err)
	for set := 0; set < 2; set++ {
		_, err := e.CompleteSet(0, set)
		require.NoError(t, err)
	}
	require.NoError(t, f.tracker.Save(e))
}

func TestStartWritesStateFile(t *testing.T) {
	f := newFixture(t)
	e := f.start(t)

	assert.True(t, f.state.Exists())
	st := e.State()
	assert.Equal(t, "Leg Day", st.RoutineName)
	assert.Equal(t, 185.0, st.Slots[0].Sets[0].Weight)

	_, err := f.tracker.Start("Leg Day")
	assert.ErrorIs(t, err, tracker.ErrSessionActive)
}

func TestStartSeedsFromHistory(t *testing.T) {
	f := newFixture(t)
	f.routines.EXPECT().ResolveRoutine("Leg Day").Return(&f.routine, nil)
	f.weights.EXPECT().LoadWeights().Return([]models.WeightRecord{
		{ExerciseID: "barbell-squat", ExerciseName: "Barbell Squat", Weight: 205, UpdatedAt: t0},
	}, nil)
	f.routines.EXPECT().TouchRoutine(f.routine.ID, gomock.Any()).Return(nil)

	e, err := f.tracker.Start("Leg Day")
	require.NoError(t, err)
	assert.Equal(t, 205.0, e.State().Slots[0].Sets[1].Weight)
}

func TestStartTouchFailureKeepsSession(t *testing.T) {
	f := newFixture(t)
	touchErr := &storage.PersistenceError{Op: "touch routine", ID: f.routine.ID, Err: errors.New("disk full")}
	f.routines.EXPECT().ResolveRoutine("Leg Day").Return(&f.routine, nil)
	f.weights.EXPECT().LoadWeights().Return(nil, nil)
	f.routines.EXPECT().TouchRoutine(f.routine.ID, gomock.Any()).Return(touchErr)

	e, err := f.tracker.Start("Leg Day")
	require.NotNil(t, e)
	assert.ErrorIs(t, err, touchErr)
	assert.True(t, f.state.Exists())
}

func TestStartUnknownRoutine(t *testing.T) {
	f := newFixture(t)
	f.routines.EXPECT().ResolveRoutine("Arm Day").Return(nil, storage.ErrNotFound)

	_, err := f.tracker.Start("Arm Day")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.False(t, f.state.Exists())
}

func TestActiveWithoutSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.tracker.Active()
	assert.ErrorIs(t, err, session.ErrNoActiveSession)
	assert.ErrorIs(t, f.tracker.Cancel(), session.ErrNoActiveSession)
	_, err = f.tracker.Finish()
	assert.ErrorIs(t, err, session.ErrNoActiveSession)
}

func TestFinishAppliesProgression(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.completeAll(t)

	var stored models.CompletedSession
	f.sessions.EXPECT().AppendSession(gomock.Any()).DoAndReturn(func(cs models.CompletedSession) error {
		stored = cs
		return nil
	})
	f.weights.EXPECT().LoadWeights().Return(nil, nil)
	f.weights.EXPECT().SaveWeights(gomock.Any()).DoAndReturn(func(records []models.WeightRecord) error {
		require.Len(t, records, 1)
		assert.Equal(t, "barbell-squat", records[0].ExerciseID)
		assert.Equal(t, 190.0, records[0].Weight)
		return nil
	})

	res, err := f.tracker.Finish()
	require.NoError(t, err)
	assert.True(t, res.Stored)
	assert.Equal(t, stored.ID, res.Session.ID)
	assert.Len(t, res.Session.Results, 2)
	require.Len(t, res.Updates, 1)
	assert.True(t, res.Updates[0].Increased)
	assert.False(t, f.state.Exists())
}

func TestFinishKeepsStateWhenSessionNotStored(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.completeAll(t)

	appendErr := &storage.PersistenceError{Op: "append session", Err: errors.New("database is locked")}
	f.sessions.EXPECT().AppendSession(gomock.Any()).Return(appendErr)

	res, err := f.tracker.Finish()
	var perr *storage.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "append session", perr.Op)
	assert.False(t, res.Stored)
	assert.Len(t, res.Session.Results, 2, "the completed session is returned despite the failure")
	assert.True(t, f.state.Exists(), "state is kept for a retry")
}

func TestFinishReportsWeightFailure(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.completeAll(t)

	saveErr := errors.New("read-only database")
	f.sessions.EXPECT().AppendSession(gomock.Any()).Return(nil)
	f.weights.EXPECT().LoadWeights().Return(nil, nil)
	f.weights.EXPECT().SaveWeights(gomock.Any()).Return(saveErr)

	res, err := f.tracker.Finish()
	assert.ErrorIs(t, err, saveErr)
	assert.True(t, res.Stored)
	assert.False(t, f.state.Exists())
}

func TestFinishSkipsWeightsWhenHistoryUnreadable(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.completeAll(t)

	loadErr := errors.New("no such table")
	f.sessions.EXPECT().AppendSession(gomock.Any()).Return(nil)
	f.weights.EXPECT().LoadWeights().Return(nil, loadErr)

	res, err := f.tracker.Finish()
	assert.ErrorIs(t, err, loadErr)
	assert.Empty(t, res.Updates)
}

func TestCancelClearsState(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	require.NoError(t, f.tracker.Cancel())
	assert.False(t, f.state.Exists())
}

func TestCancelReportsClearFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	state := NewMockStateStore(ctrl)
	squat := models.Exercise{ID: "barbell-squat", Name: "Barbell Squat", RequiresWeight: true}
	w := 100.0
	active := &models.ActiveSession{
		ID:    "s1",
		Slots: []models.ActiveSlot{{Slot: models.NewSlot(squat, 1, 5, &w, 60), Sets: []models.WorkingSet{{Weight: 100, Reps: 5}}}},
	}

	state.EXPECT().Exists().Return(true)
	state.EXPECT().Load().Return(active, nil)
	state.EXPECT().Clear().Return(errors.New("permission denied"))

	tr := tracker.New(tracker.Deps{State: state}, tracker.Options{}, nil)
	assert.ErrorContains(t, tr.Cancel(), "permission denied")
}

func TestStartQuick(t *testing.T) {
	f := newFixture(t)
	f.weights.EXPECT().LoadWeights().Return(nil, nil)

	e, err := f.tracker.StartQuick([]string{"barbell-squat", "Push-Ups"}, 3, 8, 60)
	require.NoError(t, err)
	st := e.State()
	assert.True(t, st.AdHoc)
	assert.Equal(t, tracker.QuickRoutineName, st.RoutineName)
	assert.Equal(t, models.PolicyFreeform, st.Policy)
	require.Len(t, st.Slots, 2)
	assert.Nil(t, st.Slots[1].Slot.Weight)

	_, err = f.tracker.StartQuick([]string{"plank"}, 3, 8, 60)
	assert.ErrorIs(t, err, tracker.ErrSessionActive)
}

func TestStartQuickUnknownExercise(t *testing.T) {
	f := newFixture(t)
	_, err := f.tracker.StartQuick([]string{"moon-press"}, 3, 8, 60)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

// clearFailsOnce is a session file whose first Clear fails.
type clearFailsOnce struct {
	utils.SessionFile
	failed bool
}

func (c *clearFailsOnce) Clear() error {
	if !c.failed {
		c.failed = true
		return errors.New("permission denied")
	}
	return c.SessionFile.Clear()
}

func TestFinishRetryAfterClearFailure(t *testing.T) {
	dir := t.TempDir()
	st, err := storage.Open("file:"+filepath.Join(dir, "forja.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cat, err := catalog.Builtin()
	require.NoError(t, err)
	squat, err := cat.Get("barbell-squat")
	require.NoError(t, err)
	routine := models.NewRoutine("Leg Day", t0)
	w := 185.0
	routine.AddSlot(models.NewSlot(squat, 2, 5, &w, 180))
	require.NoError(t, st.UpsertRoutine(routine))

	state := &clearFailsOnce{SessionFile: utils.SessionFile{Path: filepath.Join(dir, "current_session.toml")}}
	now := t0
	tr := tracker.New(tracker.Deps{
		Routines:  st,
		Sessions:  st,
		Weights:   st,
		State:     state,
		Exercises: cat,
	}, tracker.Options{
		Policy:     models.PolicyStrictProgram,
		Warmups:    models.WarmupsDisplay,
		BarWeight:  45,
		Increments: progression.DefaultIncrements(),
		Now: func() time.Time {
			now = now.Add(time.Minute)
			return now
		},
	}, nil)

	e, err := tr.Start("Leg Day")
	require.NoError(t, err)
	for set := 0; set < 2; set++ {
		_, err := e.CompleteSet(0, set)
		require.NoError(t, err)
	}
	require.NoError(t, tr.Save(e))

	res, err := tr.Finish()
	assert.ErrorContains(t, err, "permission denied")
	assert.True(t, res.Stored)
	require.Len(t, res.Updates, 1)
	assert.True(t, state.Exists(), "state survives the failed clear")

	res, err = tr.Finish()
	require.NoError(t, err)
	assert.True(t, res.Stored)
	assert.Empty(t, res.Updates, "progression is not applied twice")
	assert.False(t, state.Exists())

	sessions, err := st.ListSessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	records, err := st.LoadWeights()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 190.0, records[0].Weight)
}
