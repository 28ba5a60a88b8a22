package schedcore

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyRunning is returned by Run if the scheduler is already
	// running.
	ErrAlreadyRunning = errors.New("schedcore: already running")
	// ErrNotRunning reports that the scheduler has not been started, or
	// has already stopped. RequestReset and Halt return no error, and no
	// function in this package returns ErrNotRunning.
	ErrNotRunning = errors.New("schedcore: not running")
	// ErrCPULoadOverrun names a CPU load overrun. The scheduler signals
	// an overrun only through the CPULoadOverrun fault object; no
	// function in this package returns this error.
	ErrCPULoadOverrun = errors.New("schedcore: CPU load overrun")
	// ErrComponentCheckFailed names a failing status-capture hook result.
	// The scheduler signals it only through the OSComponentFailure fault
	// object; no function in this package returns this error.
	ErrComponentCheckFailed = errors.New("schedcore: OS component check failed")
	// ErrResetLimitReached is returned from Run when the configured
	// reset-attempt limit has been exhausted, after which the scheduler
	// halts rather than attempting another warm reset.
	ErrResetLimitReached = errors.New("schedcore: reset attempt limit reached")
)

// WrapError wraps an error with a message.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}

// ResetClass classifies the root cause of the most recent CPU
// (re)start, carried over from fdrv_FaultHandler.h's
// FLT_CPU_RESET_CLASS_* bitmasks.
type ResetClass uint8

const (
	ResetClassUnknown ResetClass = iota
	ResetClassNormal
	ResetClassWarning
	ResetClassCritical
)

func (c ResetClass) String() string {
	switch c {
	case ResetClassNormal:
		return "normal"
	case ResetClassWarning:
		return "warning"
	case ResetClassCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ResetClassMasks are the bit masks, read against a platform's reset
// status register, that classify a reset's root cause. The package
// defaults are the literal values from fdrv_FaultHandler.h.
// ClassifyResetCause uses whichever masks it is passed; the Scheduler
// does not classify reset causes itself.
type ResetClassMasks struct {
	Critical uint16
	Warning  uint16
	Normal   uint16
}

var defaultResetClassMasks = ResetClassMasks{
	Critical: 0xC210,
	Warning:  0x00C0,
	Normal:   0x000F,
}

// ClassifyResetCause classifies a raw reset-status bitmask into a
// ResetClass, checking critical before warning before normal, matching
// the original's precedence (a critical cause always takes priority over
// an incidentally also-set normal bit).
func ClassifyResetCause(bits uint16, masks ResetClassMasks) ResetClass {
	switch {
	case bits&masks.Critical != 0:
		return ResetClassCritical
	case bits&masks.Warning != 0:
		return ResetClassWarning
	case bits&masks.Normal != 0:
		return ResetClassNormal
	default:
		return ResetClassUnknown
	}
}
