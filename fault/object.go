package fault

import (
	"github.com/joeycumines/go-schedcore/observable"
)

// Object is one fault descriptor: an observed value, the comparison
// that determines whether a fault condition is present, and the
// hysteresis counters and class that determine the engine's response.
// Field names and semantics are carried over from FAULT_OBJECT_t and its
// embedded FAULT_CONDITION_SETTINGS_t.
type Object struct {
	ID        uint16
	ErrorCode uint32
	Class     Class

	// Enabled corresponds to FLTCHK_ENABLED: a disabled object is
	// skipped entirely by Engine.ScanAll.
	Enabled bool
	// Active mirrors fault_active: the most recently observed raw
	// condition, independent of hysteresis.
	Active bool
	// Latched mirrors fault_status: true once the hysteresis trip
	// counter reaches TripCountThreshold, cleared once the reset
	// counter reaches ResetCountThreshold.
	Latched bool
	// counter is the internal hysteresis counter, shared between the
	// trip and reset directions exactly as FAULT_CONDITION_SETTINGS_t's
	// single counter field is: it resets to zero whenever the observed
	// condition stops moving toward the currently active threshold.
	counter uint16

	Source        observable.Ref
	SourceBitMask uint16
	Compare       observable.Ref
	CompareBitMask uint16
	CompareType   CompareType

	TripLevel          uint16
	TripCountThreshold uint16
	ResetLevel         uint16
	ResetCountThreshold uint16

	// TripFunction is invoked once, synchronously, the cycle a
	// descriptor transitions from clear to Latched.
	TripFunction func() uint16
	// ResetFunction is invoked once, synchronously, the cycle a
	// descriptor transitions from Latched back to clear.
	ResetFunction func() uint16
}

// evaluate samples Source (and Compare, if set) and reports the trip and
// reset conditions independently, per the compare-type table: each has
// its own predicate against TripLevel/ResetLevel (or, for
// GREATER_THAN/LESS_THAN/EQUAL/NOT_EQUAL when Compare is set, against its
// sampled value in place of both constants). Compare is optional for
// every CompareType — its absence falls back to the literal
// TripLevel/ResetLevel. IN_RANGE and OUT_OF_RANGE always use
// TripLevel/ResetLevel as the interval bounds (in either order); the
// Compare value is not used for them.
func (o *Object) evaluate() (trip, reset bool, err error) {
	if o.Source == nil {
		return false, false, newDescriptorError(o.ID, ErrMalformedDescriptor)
	}
	mask := o.SourceBitMask
	if mask == 0 {
		mask = 0xFFFF
	}
	sv := o.Source.Read() & mask

	tripLevel, resetLevel := o.TripLevel, o.ResetLevel
	if o.Compare != nil {
		cmask := o.CompareBitMask
		if cmask == 0 {
			cmask = 0xFFFF
		}
		cv := o.Compare.Read() & cmask
		tripLevel, resetLevel = cv, cv
	}

	switch o.CompareType {
	case CompareNone:
		return false, false, nil

	case GreaterThan:
		return sv > tripLevel, sv <= resetLevel, nil

	case LessThan:
		return sv < tripLevel, sv >= resetLevel, nil

	case Equal:
		return sv == tripLevel, sv != resetLevel, nil

	case NotEqual:
		return sv != tripLevel, sv == resetLevel, nil

	case InRange:
		lo, hi := o.TripLevel, o.ResetLevel
		if lo > hi {
			lo, hi = hi, lo
		}
		in := sv >= lo && sv <= hi
		return in, !in, nil

	case OutOfRange:
		lo, hi := o.TripLevel, o.ResetLevel
		if lo > hi {
			lo, hi = hi, lo
		}
		out := sv < lo || sv > hi
		return out, !out, nil

	case Boolean:
		return sv != 0, sv == 0, nil

	default:
		return false, false, newDescriptorError(o.ID, ErrMalformedDescriptor)
	}
}

// TransitionKind describes the edge a fault Object crossed during a
// single ScanAll pass.
type TransitionKind uint8

const (
	NoTransition TransitionKind = iota
	Tripped
	Reset
)

// Transition describes one Object's Latched-state edge during a scan,
// returned by Engine.ScanAll for logging.
type Transition struct {
	ID    uint16
	Kind  TransitionKind
	Class Class
}

// step runs the hysteresis state machine for one cycle, returning the
// Transition (Kind NoTransition if no edge was crossed) and any
// malformed-descriptor error from evaluation.
func (o *Object) step() (Transition, error) {
	tripCond, resetCond, err := o.evaluate()
	if err != nil {
		return Transition{}, err
	}
	o.Active = tripCond

	var t Transition
	t.ID = o.ID
	t.Class = o.Class

	if !o.Latched {
		if tripCond {
			o.counter++
			if o.counter >= o.TripCountThreshold {
				o.Latched = true
				o.counter = 0
				t.Kind = Tripped
				if o.TripFunction != nil {
					o.TripFunction()
				}
			}
		} else {
			o.counter = 0
		}
	} else {
		if resetCond {
			o.counter++
			if o.counter >= o.ResetCountThreshold {
				o.Latched = false
				o.counter = 0
				t.Kind = Reset
				if o.ResetFunction != nil {
					o.ResetFunction()
				}
			}
		} else {
			o.counter = 0
		}
	}

	return t, nil
}
