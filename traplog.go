package schedcore

import "sync/atomic"

// TrapLog records the root cause of the most recent (re)start, grounded
// on os_Scheduler.c's traplog object and CaptureCPUInterruptStatus.
type TrapLog struct {
	resetTriggerBits atomic.Uint32
	swReset          atomic.Bool
	resetCount       atomic.Uint32
}

// SetResetTriggerBits records the platform's raw reset-status bitmask.
// The scheduler reads no reset-status register itself: the bits are
// whatever was last recorded here, and its warm-reset sequence stores
// the current value back unchanged.
func (t *TrapLog) SetResetTriggerBits(bits uint16) {
	t.resetTriggerBits.Store(uint32(bits))
}

// ResetTriggerBits returns the most recently recorded reset-status
// bitmask.
func (t *TrapLog) ResetTriggerBits() uint16 {
	return uint16(t.resetTriggerBits.Load())
}

// MarkSoftwareReset sets the flag indicating the most recent reset was
// software-initiated, and increments the persistent reset counter.
func (t *TrapLog) MarkSoftwareReset() uint32 {
	t.swReset.Store(true)
	return t.resetCount.Add(1)
}

// SoftwareReset reports whether the most recent reset was
// software-initiated.
func (t *TrapLog) SoftwareReset() bool {
	return t.swReset.Load()
}

// ResetCount returns the persistent count of software-initiated resets.
func (t *TrapLog) ResetCount() uint32 {
	return t.resetCount.Load()
}

// resetTriggerBitsAddr exposes the reset-status bitmask for observable.Atomic
// wiring, used by the CPUFailure fault object.
func (t *TrapLog) resetTriggerBitsAddr() *atomic.Uint32 {
	return &t.resetTriggerBits
}
