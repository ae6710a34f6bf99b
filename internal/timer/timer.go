// Package timer implements the rest countdown between sets.
package timer

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type Kind int

const (
	KindWarning Kind = iota
	KindComplete
)

// Notifier receives countdown alerts. It is called with the timer's lock
// held and must not call back into the timer.
type Notifier interface {
	Notify(kind Kind, remaining int)
}

type NotifierFunc func(kind Kind, remaining int)

func (f NotifierFunc) Notify(kind Kind, remaining int) { f(kind, remaining) }

// Seconds left at which a warning fires.
var warningAt = map[int]bool{10: true, 5: true}

const tickInterval = time.Second

// Timer is a single re-armable countdown. The running countdown is measured
// against an absolute deadline, so late ticks neither drift nor skip alerts.
type Timer struct {
	mu       sync.Mutex
	clock    Clock
	notifier Notifier
	log      logrus.FieldLogger

	state     State
	deadline  time.Time     // Valid while running.
	remaining time.Duration // Valid while idle or paused.
	// Whole seconds left at the last processed tick; thresholds in
	// [current, lastSecond) have not fired yet.
	lastSecond int

	gen    uint64
	ticker Ticker
	stop   chan struct{}
}

func New(clock Clock, notifier Notifier, log logrus.FieldLogger) *Timer {
	if clock == nil {
		clock = RealClock()
	}
	if notifier == nil {
		notifier = NotifierFunc(func(Kind, int) {})
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Timer{clock: clock, notifier: notifier, log: log}
}

// Start arms the countdown for d, replacing any countdown already armed.
func (t *Timer) Start(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.halt()
	t.remaining = d
	t.run()
}

// Pause freezes the remaining time. It is a no-op unless running.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning {
		return
	}
	t.remaining = max(t.deadline.Sub(t.clock.Now()), 0)
	t.halt()
	t.state = StatePaused
}

// Resume continues a paused countdown. It is a no-op otherwise.
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StatePaused {
		return
	}
	t.run()
}

// Extend adds d to the remaining time in any state. An idle timer stays
// idle with the larger remaining value.
func (t *Timer) Extend(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateRunning {
		t.deadline = t.deadline.Add(d)
		// Keep thresholds already crossed marked as fired, and leave any
		// pending ones for the next tick.
		t.lastSecond = max(t.lastSecond, ceilSeconds(t.deadline.Sub(t.clock.Now())))
		return
	}
	t.remaining += d
}

// Cancel stops the countdown and zeroes it without notifying.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.halt()
	t.state = StateIdle
	t.remaining = 0
}

func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateRunning {
		return max(t.deadline.Sub(t.clock.Now()), 0)
	}
	return t.remaining
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// run starts ticking from t.remaining. Callers hold t.mu.
func (t *Timer) run() {
	t.state = StateRunning
	t.deadline = t.clock.Now().Add(t.remaining)
	t.lastSecond = ceilSeconds(t.remaining)

	t.gen++
	t.ticker = t.clock.NewTicker(tickInterval)
	t.stop = make(chan struct{})
	go t.loop(t.gen, t.ticker, t.stop)
}

// halt stops the ticking goroutine if one is running. Callers hold t.mu.
func (t *Timer) halt() {
	if t.stop == nil {
		return
	}
	t.gen++
	t.ticker.Stop()
	close(t.stop)
	t.ticker = nil
	t.stop = nil
}

func (t *Timer) loop(gen uint64, ticker Ticker, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C():
			if !t.tick(gen, now) {
				return
			}
		}
	}
}

// tick processes one clock tick and reports whether the countdown is still
// running for this generation.
func (t *Timer) tick(gen uint64, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen || t.state != StateRunning {
		return false
	}

	current := max(ceilSeconds(t.deadline.Sub(now)), 0)
	for s := t.lastSecond - 1; s >= current && s > 0; s-- {
		if warningAt[s] {
			t.notify(KindWarning, s)
		}
	}
	t.lastSecond = current

	if current > 0 {
		return true
	}

	t.notify(KindComplete, 0)
	t.state = StateIdle
	t.remaining = 0
	t.halt()
	return false
}

func (t *Timer) notify(kind Kind, remaining int) {
	defer func() {
		if r := recover(); r != nil {
			t.log.WithField("remaining", remaining).Warnf("rest timer notifier panicked: %v", r)
		}
	}()
	t.notifier.Notify(kind, remaining)
}

func ceilSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
