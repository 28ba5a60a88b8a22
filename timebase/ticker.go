package timebase

import (
	"sync"
	"sync/atomic"
	"time"
)

// Ticker is the production Timebase, realizing the tick counter and
// period/rescue timer pair on top of the Go runtime's monotonic clock.
// One tick corresponds to one TickDuration.
type Ticker struct {
	tickDuration time.Duration
	start        time.Time

	periodExpired atomic.Bool
	timerMu       sync.Mutex
	periodTimer   *time.Timer

	rescueMu    sync.Mutex
	rescueTimer *time.Timer
}

// NewTicker constructs a Ticker whose tick resolution is tickDuration.
func NewTicker(tickDuration time.Duration) *Ticker {
	if tickDuration <= 0 {
		panic("timebase: tickDuration must be positive")
	}
	return &Ticker{
		tickDuration: tickDuration,
		start:        time.Now(),
	}
}

// TickDuration returns the real-time duration of a single tick.
func (t *Ticker) TickDuration() time.Duration {
	return t.tickDuration
}

func (t *Ticker) Now() uint32 {
	return uint32(time.Since(t.start) / t.tickDuration)
}

func (t *Ticker) SetPeriod(ticks uint16) {
	t.timerMu.Lock()
	defer t.timerMu.Unlock()

	if t.periodTimer != nil {
		t.periodTimer.Stop()
	}
	t.periodExpired.Store(false)

	if ticks == 0 {
		t.periodTimer = nil
		return
	}
	t.periodTimer = time.AfterFunc(time.Duration(ticks)*t.tickDuration, func() {
		t.periodExpired.Store(true)
	})
}

func (t *Ticker) ArmRescue(ticks uint16) {
	t.rescueMu.Lock()
	defer t.rescueMu.Unlock()

	if t.rescueTimer != nil {
		t.rescueTimer.Stop()
	}
	if ticks == 0 {
		t.rescueTimer = nil
		return
	}
	t.rescueTimer = time.NewTimer(time.Duration(ticks) * t.tickDuration)
}

func (t *Ticker) DisarmRescue() {
	t.rescueMu.Lock()
	defer t.rescueMu.Unlock()

	if t.rescueTimer != nil {
		t.rescueTimer.Stop()
		t.rescueTimer = nil
	}
}

func (t *Ticker) TickPending() bool {
	return t.periodExpired.Load()
}

func (t *Ticker) ClearTick() {
	t.periodExpired.Store(false)
}

var _ Timebase = (*Ticker)(nil)
