package schedcore

import "sync/atomic"

// Watchdog is the scheduler's external watchdog interface, grounded on
// os_Scheduler.c's dead-man-timer clear sequence
// (DMTSTATbits.WINOPN/DMTPRECLRbits/DMTCLRbits). The concrete wire
// protocol and window timing are out of scope; Kick is called once per
// scheduler cycle.
type Watchdog interface {
	Kick()
}

type noopWatchdog struct{}

func (noopWatchdog) Kick() {}

// CountingWatchdog is a Watchdog test double counting Kick calls.
type CountingWatchdog struct {
	count atomic.Uint64
}

// NewCountingWatchdog constructs a CountingWatchdog.
func NewCountingWatchdog() *CountingWatchdog {
	return &CountingWatchdog{}
}

func (w *CountingWatchdog) Kick() {
	w.count.Add(1)
}

// Count returns the number of Kick calls observed so far.
func (w *CountingWatchdog) Count() uint64 {
	return w.count.Load()
}
