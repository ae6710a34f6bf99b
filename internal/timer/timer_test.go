package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTicker struct {
	c       chan time.Time
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop()               { f.stopped = true }

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	tk := &fakeTicker{c: make(chan time.Time, 1)}
	c.tickers = append(c.tickers, tk)
	return tk
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

type event struct {
	kind      Kind
	remaining int
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) Notify(kind Kind, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{kind, remaining})
}

func (r *recorder) Events() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event(nil), r.events...)
}

// step advances the clock and processes a tick synchronously.
func step(tm *Timer, clock *fakeClock, d time.Duration) bool {
	now := clock.Advance(d)
	tm.mu.Lock()
	gen := tm.gen
	tm.mu.Unlock()
	return tm.tick(gen, now)
}

func TestCountdownFiresEachThresholdOnce(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	tm := New(clock, rec, nil)

	tm.Start(12 * time.Second)
	assert.Equal(t, StateRunning, tm.State())

	for i := 0; i < 11; i++ {
		require.True(t, step(tm, clock, time.Second))
	}
	assert.Equal(t, []event{{KindWarning, 10}, {KindWarning, 5}}, rec.Events())

	assert.False(t, step(tm, clock, time.Second))
	assert.Equal(t, []event{{KindWarning, 10}, {KindWarning, 5}, {KindComplete, 0}}, rec.Events())
	assert.Equal(t, StateIdle, tm.State())
	assert.Zero(t, tm.Remaining())
}

func TestLateTickDoesNotSkipWarnings(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	tm := New(clock, rec, nil)

	tm.Start(30 * time.Second)
	require.True(t, step(tm, clock, 27*time.Second))
	assert.Equal(t, []event{{KindWarning, 10}, {KindWarning, 5}}, rec.Events())

	require.True(t, step(tm, clock, 500*time.Millisecond))
	assert.Len(t, rec.Events(), 2, "no double fire")

	assert.False(t, step(tm, clock, 10*time.Second))
	assert.Equal(t, KindComplete, rec.Events()[2].kind)
}

func TestPauseResume(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	tm := New(clock, rec, nil)

	tm.Start(20 * time.Second)
	require.True(t, step(tm, clock, 3*time.Second))
	tm.Pause()
	assert.Equal(t, StatePaused, tm.State())

	clock.Advance(time.Hour)
	assert.Equal(t, 17*time.Second, tm.Remaining())
	assert.Empty(t, rec.Events())

	tm.Resume()
	assert.Equal(t, StateRunning, tm.State())
	assert.Equal(t, 17*time.Second, tm.Remaining())
	tm.Cancel()
}

func TestTickAfterPauseIsIgnored(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	tm := New(clock, rec, nil)

	tm.Start(6 * time.Second)
	tm.mu.Lock()
	gen := tm.gen
	tm.mu.Unlock()
	tm.Pause()

	assert.False(t, tm.tick(gen, clock.Advance(10*time.Second)))
	assert.Empty(t, rec.Events())
}

func TestExtend(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	tm := New(clock, rec, nil)

	tm.Extend(15 * time.Second)
	assert.Equal(t, StateIdle, tm.State())
	assert.Equal(t, 15*time.Second, tm.Remaining())

	tm.Start(8 * time.Second)
	require.True(t, step(tm, clock, 4*time.Second))
	assert.Equal(t, []event{{KindWarning, 5}}, rec.Events())

	tm.Extend(30 * time.Second)
	assert.Equal(t, 34*time.Second, tm.Remaining())
	require.True(t, step(tm, clock, 25*time.Second))
	assert.Equal(t, []event{{KindWarning, 5}, {KindWarning, 10}}, rec.Events())
	tm.Cancel()
}

func TestSubSecondExtendDoesNotRepeatWarning(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	tm := New(clock, rec, nil)

	tm.Start(12 * time.Second)
	require.True(t, step(tm, clock, 2*time.Second))
	require.True(t, step(tm, clock, 500*time.Millisecond))
	assert.Equal(t, []event{{KindWarning, 10}}, rec.Events())

	tm.Extend(200 * time.Millisecond)
	tm.Extend(200 * time.Millisecond)
	assert.Equal(t, 9900*time.Millisecond, tm.Remaining())

	require.True(t, step(tm, clock, 900*time.Millisecond))
	assert.Equal(t, []event{{KindWarning, 10}}, rec.Events())

	for step(tm, clock, time.Second) {
	}
	assert.Equal(t, []event{{KindWarning, 10}, {KindWarning, 5}, {KindComplete, 0}}, rec.Events())
}

func TestExtendKeepsPendingWarningAfterLateTick(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	tm := New(clock, rec, nil)

	tm.Start(12 * time.Second)
	require.True(t, step(tm, clock, time.Second))
	assert.Empty(t, rec.Events())

	// the clock passes the 10 second mark before the next tick arrives
	clock.Advance(1500 * time.Millisecond)
	tm.Extend(200 * time.Millisecond)

	require.True(t, step(tm, clock, 0))
	assert.Equal(t, []event{{KindWarning, 10}}, rec.Events())
	tm.Cancel()
}

func TestCancelSuppressesNotifications(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	tm := New(clock, rec, nil)

	tm.Start(3 * time.Second)
	tm.Cancel()
	assert.Equal(t, StateIdle, tm.State())
	assert.Zero(t, tm.Remaining())

	assert.False(t, step(tm, clock, 5*time.Second))
	assert.Empty(t, rec.Events())
}

func TestRestartReplacesCountdown(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	tm := New(clock, rec, nil)

	tm.Start(3 * time.Second)
	tm.Start(60 * time.Second)
	assert.Equal(t, 60*time.Second, tm.Remaining())
	require.Len(t, clock.tickers, 2)
	assert.True(t, clock.tickers[0].stopped)
	tm.Cancel()
}

func TestNotifierPanicIsRecovered(t *testing.T) {
	clock := newFakeClock()
	tm := New(clock, NotifierFunc(func(Kind, int) { panic("speaker unplugged") }), nil)

	tm.Start(time.Second)
	assert.NotPanics(t, func() { step(tm, clock, 2*time.Second) })
	assert.Equal(t, StateIdle, tm.State())
}

func TestLoopDeliversThroughTicker(t *testing.T) {
	clock := newFakeClock()
	done := make(chan struct{})
	tm := New(clock, NotifierFunc(func(kind Kind, _ int) {
		if kind == KindComplete {
			close(done)
		}
	}), nil)

	tm.Start(2 * time.Second)
	clock.mu.Lock()
	tk := clock.tickers[0]
	clock.mu.Unlock()
	tk.c <- clock.Advance(2 * time.Second)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("completion was not delivered")
	}
	assert.Eventually(t, func() bool { return tm.State() == StateIdle }, time.Second, 10*time.Millisecond)
}
