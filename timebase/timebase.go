// Package timebase provides the scheduler's notion of elapsed time: a
// free-running tick counter plus a rescue (watchdog-style) timer, modeled
// after a hardware timer/period-register pair but realized on a hosted
// Go runtime.
package timebase

// Timebase is the scheduler's view of the system timer. Implementations
// must be safe for use by the scheduler goroutine and the rescue
// goroutine concurrently: Now, TickPending and ClearTick may be called
// from the scheduler goroutine while ArmRescue/DisarmRescue race against
// a rescue timeout firing on another goroutine.
type Timebase interface {
	// Now returns the current free-running tick count.
	Now() uint32

	// SetPeriod reprograms the main scheduling period, in ticks.
	SetPeriod(ticks uint16)

	// ArmRescue programs and starts the rescue (task-abort) timer,
	// given a period in ticks relative to Now.
	ArmRescue(ticks uint16)

	// DisarmRescue stops the rescue timer, if running. It is safe to
	// call even if the rescue timer has already fired or was never
	// armed.
	DisarmRescue()

	// TickPending reports whether the main period timer has expired
	// since the last ClearTick, i.e. whether the scheduler overran its
	// period.
	TickPending() bool

	// ClearTick clears the pending-period-expiry flag.
	ClearTick()
}
