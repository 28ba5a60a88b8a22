package schedcore

import "sync/atomic"

// CPULoadMeter tracks per-cycle idle-loop tick counts and the derived
// CPU load value, grounded on os_Scheduler.c's task_mgr.cpu_load.
type CPULoadMeter struct {
	// Ticks is the number of idle-loop iterations observed this cycle
	// while waiting for the next period boundary.
	Ticks uint32
	// LoadFactor is the Q16 fixed-point calibration constant converting
	// Ticks into a 0-1000 load value.
	LoadFactor uint32
	// Load is this cycle's computed load (1000 = no idle time observed,
	// i.e. fully loaded; 0 = idle for the whole period or more).
	Load uint16

	// loadMaxBuffer accumulates via bitwise-OR across cycles, exactly as
	// the original's load_max_buffer does: it is a sticky union of every
	// bit ever set in Load, not a running maximum. This is documented,
	// not a bug: a caller wanting a true max should track it externally.
	loadMaxBuffer atomic.Uint32
}

// Compute derives Load from Ticks and LoadFactor, matching
// task_mgr.cpu_load.load = 1000 - ((ticks*loop_nomblk*load_factor)>>16),
// with loop_nomblk folded into LoadFactor (there is no separate
// per-iteration constant; the scheduler counts one tick per idle-loop
// iteration).
func (m *CPULoadMeter) Compute() uint16 {
	reduction := uint16((uint64(m.Ticks) * uint64(m.LoadFactor)) >> 16)
	var load uint16
	if reduction < 1000 {
		load = 1000 - reduction
	}
	m.Load = load
	for {
		cur := m.loadMaxBuffer.Load()
		next := cur | uint32(load)
		if next == cur || m.loadMaxBuffer.CompareAndSwap(cur, next) {
			break
		}
	}
	return load
}

// LoadMaxBuffer returns the sticky bitwise-OR accumulation of every Load
// value observed since the last Reset.
func (m *CPULoadMeter) LoadMaxBuffer() uint16 {
	return uint16(m.loadMaxBuffer.Load())
}

// Reset clears the sticky accumulator, e.g. on a queue switch-over.
func (m *CPULoadMeter) Reset() {
	m.loadMaxBuffer.Store(0)
}

// loadMaxBufferAddr exposes the accumulator for observable.Atomic
// wiring, used by the CPULoadOverrun fault object.
func (m *CPULoadMeter) loadMaxBufferAddr() *atomic.Uint32 {
	return &m.loadMaxBuffer
}
