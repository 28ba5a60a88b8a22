// Package fault implements the data-driven fault-object engine: a list
// of descriptors comparing an observed value against configured
// thresholds, debounced by a hysteresis counter, whose class determines
// what the scheduler does in response. Grounded on
// fdrv_FaultHandler.h/fdrv_FaultObjects.c.
package fault

// CompareType selects how an Object's observed value is evaluated
// against its configured thresholds. Bit values are carried over
// verbatim from FLTOBJ_COMPARE_TYPE_e so that a caller porting constants
// from the original configuration tables needs no translation.
type CompareType uint8

const (
	CompareNone       CompareType = 0
	GreaterThan       CompareType = 1 << 0
	LessThan          CompareType = 1 << 1
	Equal             CompareType = 1 << 2
	NotEqual          CompareType = 1 << 3
	InRange           CompareType = 1 << 4
	OutOfRange        CompareType = 1 << 5
	Boolean           CompareType = 1 << 6
)

// Class is a bitset of fault classifications, carried over verbatim from
// FAULT_OBJECT_CLASS_e. Class bits are independent: a descriptor may
// combine e.g. Catastrophic|UserResponse to both force a warm reset and
// invoke a user callback.
type Class uint16

const (
	ClassNone          Class = 0
	ClassFlag          Class = 1 << 0
	ClassWarning       Class = 1 << 1
	ClassCritical      Class = 1 << 2
	ClassCatastrophic  Class = 1 << 3
	ClassUserResponse  Class = 1 << 8
)

// Has reports whether c contains every bit set in mask.
func (c Class) Has(mask Class) bool {
	return c&mask == mask
}

// Action is the engine's reduced, scan-wide response, following the
// catastrophic > critical > warning > flag precedence order.
type Action uint8

const (
	ActionNone Action = iota
	ActionFlag
	ActionWarning
	ActionCritical
	ActionCatastrophic
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionFlag:
		return "flag"
	case ActionWarning:
		return "warning"
	case ActionCritical:
		return "critical"
	case ActionCatastrophic:
		return "catastrophic"
	default:
		return "invalid"
	}
}

// classAction maps the highest-priority class bit present in c to an
// Action.
func classAction(c Class) Action {
	switch {
	case c.Has(ClassCatastrophic):
		return ActionCatastrophic
	case c.Has(ClassCritical):
		return ActionCritical
	case c.Has(ClassWarning):
		return ActionWarning
	case c.Has(ClassFlag):
		return ActionFlag
	default:
		return ActionNone
	}
}
