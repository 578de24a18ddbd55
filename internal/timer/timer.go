package timer

import (
	"context"
	"sync"
	"time"
)

// State of the countdown.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// Timer is the rest countdown for the exercise currently being recorded.
// It is a plain state machine: Tick must be called once per elapsed second
// by whoever owns the clock (see Driver). Not safe for concurrent use.
type Timer struct {
	initial    int
	remaining  int
	state      State
	hasTimer   bool
	fired      bool
	onComplete func()
}

// New builds a timer from an exercise's free-text rest interval. If the text
// parses to nothing, the timer reports HasTimer() == false and all
// transitions are no-ops: the UI shows the raw text instead of a countdown.
func New(rest string) *Timer {
	t := &Timer{}
	t.initFrom(rest)
	return t
}

func (t *Timer) initFrom(rest string) {
	seconds, ok := ParseRest(rest)
	t.initial = seconds
	t.remaining = seconds
	t.hasTimer = ok && seconds > 0
	t.state = StateIdle
	t.fired = false
}

// OnComplete registers the completion notification callback. It fires exactly
// once per run, when a tick brings the countdown to zero.
func (t *Timer) OnComplete(fn func()) {
	t.onComplete = fn
}

func (t *Timer) HasTimer() bool { return t.hasTimer }
func (t *Timer) State() State   { return t.state }
func (t *Timer) Remaining() int { return t.remaining }

// Start begins or resumes the countdown. Starting from Completed re-arms the
// timer to its parsed initial value first.
func (t *Timer) Start() {
	if !t.hasTimer {
		return
	}
	if t.state == StateCompleted {
		t.remaining = t.initial
		t.fired = false
	}
	if t.remaining > 0 {
		t.state = StateRunning
	}
}

// Pause stops the countdown without resetting the remaining time.
func (t *Timer) Pause() {
	if t.state == StateRunning {
		t.state = StateIdle
	}
}

// Tick advances the countdown by one second. Only meaningful while running;
// reaching zero transitions to Completed and fires the completion callback.
func (t *Timer) Tick() {
	if t.state != StateRunning {
		return
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = StateCompleted
		if t.onComplete != nil && !t.fired {
			t.fired = true
			t.onComplete()
		}
	}
}

// Reset returns to Idle with the remaining time re-derived from the current
// exercise's rest interval.
func (t *Timer) Reset() {
	t.remaining = t.initial
	t.state = StateIdle
	t.fired = false
}

// SetExercise switches the timer to a different exercise. This is an implicit
// reset: the previous countdown's remaining value never carries over.
func (t *Timer) SetExercise(rest string) {
	t.initFrom(rest)
}

// Driver owns the real one-second clock for a Timer. All Timer access goes
// through the driver's mutex, so UI code may call it from whatever goroutine
// delivers its events. Stop (or cancelling the context passed to a future
// Start) always kills the ticker goroutine: switching exercises through the
// driver can never leak a second concurrent ticker.
type Driver struct {
	mu     sync.Mutex
	timer  *Timer
	cancel context.CancelFunc
}

// NewDriver wraps an exercise rest interval in a driven timer.
func NewDriver(rest string) *Driver {
	return &Driver{timer: New(rest)}
}

// Start launches the ticker goroutine and starts the countdown. A countdown
// already running is left alone.
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timer.Start()
	if d.cancel != nil || d.timer.State() != StateRunning {
		return
	}
	tickCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	go d.run(tickCtx)
}

func (d *Driver) run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.mu.Lock()
			d.timer.Tick()
			done := d.timer.State() != StateRunning
			if done && d.cancel != nil {
				d.cancel()
				d.cancel = nil
			}
			d.mu.Unlock()
			if done {
				return
			}
		}
	}
}

// Pause suspends the countdown and stops the ticker.
func (d *Driver) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timer.Pause()
	d.stopLocked()
}

// Reset stops the ticker and re-arms the countdown.
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.timer.Reset()
}

// SwitchExercise stops any running ticker and re-initializes the countdown
// from the new exercise's rest interval.
func (d *Driver) SwitchExercise(rest string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.timer.SetExercise(rest)
}

// Stop tears the driver down; used when the recording view goes away.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.timer.Pause()
}

func (d *Driver) stopLocked() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Snapshot returns the current state and remaining seconds.
func (d *Driver) Snapshot() (State, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer.State(), d.timer.Remaining()
}

// OnComplete registers the fire-once completion callback.
func (d *Driver) OnComplete(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timer.OnComplete(fn)
}

// HasTimer reports whether the current exercise has a parseable rest
// interval at all.
func (d *Driver) HasTimer() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer.HasTimer()
}
