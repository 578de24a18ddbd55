package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tick(t *Timer, n int) {
	for i := 0; i < n; i++ {
		t.Tick()
	}
}

func TestTimerStartsIdle(t *testing.T) {
	tm := New("1:30")
	assert.True(t, tm.HasTimer())
	assert.Equal(t, StateIdle, tm.State())
	assert.Equal(t, 90, tm.Remaining())
}

func TestTimerCountdownToCompletion(t *testing.T) {
	tm := New("3s")
	fired := 0
	tm.OnComplete(func() { fired++ })

	tm.Start()
	assert.Equal(t, StateRunning, tm.State())

	tick(tm, 2)
	assert.Equal(t, StateRunning, tm.State())
	assert.Equal(t, 1, tm.Remaining())
	assert.Equal(t, 0, fired)

	tm.Tick()
	assert.Equal(t, StateCompleted, tm.State())
	assert.Equal(t, 0, tm.Remaining())
	assert.Equal(t, 1, fired)

	// Ticks past zero neither underflow nor re-fire.
	tick(tm, 3)
	assert.Equal(t, 0, tm.Remaining())
	assert.Equal(t, 1, fired)
}

func TestTimerPauseKeepsRemaining(t *testing.T) {
	tm := New("10s")
	tm.Start()
	tick(tm, 4)

	tm.Pause()
	assert.Equal(t, StateIdle, tm.State())
	assert.Equal(t, 6, tm.Remaining())

	// Ticking while paused does nothing.
	tick(tm, 3)
	assert.Equal(t, 6, tm.Remaining())

	tm.Start()
	tm.Tick()
	assert.Equal(t, 5, tm.Remaining())
}

func TestTimerResetReturnsToInitial(t *testing.T) {
	tm := New("10s")
	tm.Start()
	tick(tm, 7)

	tm.Reset()
	assert.Equal(t, StateIdle, tm.State())
	assert.Equal(t, 10, tm.Remaining())
}

func TestTimerStartFromCompletedReArms(t *testing.T) {
	tm := New("2s")
	fired := 0
	tm.OnComplete(func() { fired++ })

	tm.Start()
	tick(tm, 2)
	assert.Equal(t, StateCompleted, tm.State())
	assert.Equal(t, 1, fired)

	tm.Start()
	assert.Equal(t, StateRunning, tm.State())
	assert.Equal(t, 2, tm.Remaining())

	tick(tm, 2)
	assert.Equal(t, StateCompleted, tm.State())
	assert.Equal(t, 2, fired, "callback fires once per run")
}

func TestTimerSetExerciseImplicitReset(t *testing.T) {
	tm := New("90")
	tm.Start()
	tick(tm, 30)
	assert.Equal(t, 60, tm.Remaining())

	tm.SetExercise("2m")
	assert.Equal(t, StateIdle, tm.State())
	assert.Equal(t, 120, tm.Remaining(), "remaining time never carries over")
	assert.True(t, tm.HasTimer())
}

func TestTimerUnparseableRest(t *testing.T) {
	tm := New("until recovered")
	assert.False(t, tm.HasTimer())

	// Every transition is a no-op.
	tm.Start()
	assert.Equal(t, StateIdle, tm.State())
	tm.Tick()
	assert.Equal(t, 0, tm.Remaining())
}

func TestTimerSwitchToUnparseableRest(t *testing.T) {
	tm := New("45s")
	assert.True(t, tm.HasTimer())

	tm.SetExercise("")
	assert.False(t, tm.HasTimer())
	tm.Start()
	assert.Equal(t, StateIdle, tm.State())
}

func TestDriverSnapshotAndSwitch(t *testing.T) {
	d := NewDriver("45s")
	assert.True(t, d.HasTimer())

	state, remaining := d.Snapshot()
	assert.Equal(t, StateIdle, state)
	assert.Equal(t, 45, remaining)

	d.SwitchExercise("2m")
	state, remaining = d.Snapshot()
	assert.Equal(t, StateIdle, state)
	assert.Equal(t, 120, remaining)

	d.Stop()
}
