package timebase

import "sync"

// Fake is a manually-advanced Timebase for deterministic tests: a
// manually driven clock instead of a wall-clock ticker.
type Fake struct {
	mu sync.Mutex

	now     uint32
	period  uint32
	elapsed uint32
	pending bool

	rescueArmed bool
	rescueTicks uint16
}

// NewFake constructs a Fake Timebase starting at tick 0.
func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Now() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by ticks, latching TickPending if the
// configured period has elapsed since the last ClearTick.
func (f *Fake) Advance(ticks uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now += ticks
	f.elapsed += ticks
	if f.period != 0 && f.elapsed >= f.period {
		f.pending = true
	}
}

func (f *Fake) SetPeriod(ticks uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.period = uint32(ticks)
	f.elapsed = 0
	f.pending = false
}

func (f *Fake) ArmRescue(ticks uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rescueArmed = true
	f.rescueTicks = ticks
}

func (f *Fake) DisarmRescue() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rescueArmed = false
}

func (f *Fake) TickPending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

func (f *Fake) ClearTick() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = false
	f.elapsed = 0
}

// RescueArmed reports whether ArmRescue was called more recently than
// DisarmRescue, and the ticks it was last armed with. For test assertions
// only.
func (f *Fake) RescueArmed() (armed bool, ticks uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rescueArmed, f.rescueTicks
}

var _ Timebase = (*Fake)(nil)
