package schedcore

import "sync/atomic"

// RunState is the scheduler's coarse lifecycle state.
type RunState uint32

const (
	// StateBoot is the state before Run has been called, and again after
	// Run returns from a warm reset.
	StateBoot RunState = iota
	// StateRunning is the state while the scheduler loop is dispatching
	// tasks.
	StateRunning
	// StateResetting indicates a catastrophic fault or explicit
	// RequestReset call is unwinding the current cycle toward a warm
	// restart.
	StateResetting
	// StateHalted is terminal: the reset-attempt limit was reached, or
	// Halt was called, and the scheduler has stopped for good.
	StateHalted
)

func (s RunState) String() string {
	switch s {
	case StateBoot:
		return "boot"
	case StateRunning:
		return "running"
	case StateResetting:
		return "resetting"
	case StateHalted:
		return "halted"
	default:
		return "invalid"
	}
}

// fastState is a lock-free state cell.
type fastState struct {
	v atomic.Uint32
}

func (s *fastState) load() RunState {
	return RunState(s.v.Load())
}

func (s *fastState) store(state RunState) {
	s.v.Store(uint32(state))
}

func (s *fastState) tryTransition(from, to RunState) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}
