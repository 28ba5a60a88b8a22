// Package mode implements the operating-mode state machine: the
// automatic boot progression and the named run-time modes, each bound to
// a task queue and an optional switch-over hook, grounded on
// os_TaskManager.c's os_CheckOperationModeStatus.
package mode

// Mode enumerates the operating modes a scheduler cycles through. Zero
// value is Unknown, matching OP_MODE_UNKNOWN: a scheduler that somehow
// observes Unknown restarts the boot progression.
type Mode uint8

const (
	Unknown Mode = iota
	Boot
	FirmwareInit
	StartupSequence
	Idle
	Run
	Fault
	Standby
)

func (m Mode) String() string {
	switch m {
	case Unknown:
		return "unknown"
	case Boot:
		return "boot"
	case FirmwareInit:
		return "firmware_init"
	case StartupSequence:
		return "startup_sequence"
	case Idle:
		return "idle"
	case Run:
		return "run"
	case Fault:
		return "fault"
	case Standby:
		return "standby"
	default:
		return "invalid"
	}
}

// Hook is a switch-over function executed once, synchronously, while
// transitioning into a mode, before the scheduler resumes dispatching
// from the new queue. Boot, FirmwareInit and StartupSequence have no
// hook in the original firmware; Idle, Run, Fault and Standby each carry
// one.
type Hook func()
