package mode

import (
	"sync/atomic"

	"github.com/joeycumines/go-schedcore/tasktable"
)

// Controller owns the per-mode queue/hook bindings and the automatic
// boot progression, and decides, at each roll-over of the active queue,
// whether a mode switch is due.
//
// RequestMode is safe to call from any goroutine; Check must only ever be
// called from the scheduler's own goroutine, matching the single-writer
// rule for the task queues it swaps in.
type Controller struct {
	queues map[Mode]tasktable.Queue
	hooks  map[Mode]Hook

	target atomic.Uint32
	pre    Mode

	startupComplete atomic.Bool
}

// NewController constructs a Controller. queues must contain an entry
// for every Mode the caller intends to reach; a missing entry falls back
// to Idle's queue, mirroring the original's "default: switch to idle"
// case. hooks may omit entries for modes with no switch-over function
// (Boot, FirmwareInit, StartupSequence have none in the original).
func NewController(queues map[Mode]tasktable.Queue, hooks map[Mode]Hook) *Controller {
	c := &Controller{
		queues: queues,
		hooks:  hooks,
		pre:    Unknown,
	}
	c.target.Store(uint32(Unknown))
	return c
}

// RequestMode requests a target operating mode. It takes effect on the
// next Check call. Concurrency-safe.
func (c *Controller) RequestMode(m Mode) {
	c.target.Store(uint32(m))
}

// CurrentMode returns the mode most recently entered by Check.
func (c *Controller) CurrentMode() Mode {
	return c.pre
}

// StartupComplete reports whether the automatic boot progression has
// reached Idle at least once.
func (c *Controller) StartupComplete() bool {
	return c.startupComplete.Load()
}

// Check runs the one-shot automatic boot progression and, if the
// requested mode differs from the currently active one, performs the
// switch-over: selects the new queue, clears the new queue's tasks'
// timing fields (via clearTiming), invokes the mode's Hook (if any), and
// returns switched=true. It is called at the active queue's roll-over
// point, not on every scheduler cycle; each call advances the automatic
// boot progression by at most one step.
func (c *Controller) Check(clearTiming func(ids []uint16)) (active Mode, queue tasktable.Queue, switched bool) {
	target := Mode(c.target.Load())

	switch {
	case target == Unknown:
		target = Boot
	case c.pre == Boot && target == Boot:
		target = FirmwareInit
	case c.pre == FirmwareInit && target == FirmwareInit:
		target = StartupSequence
	case c.pre == StartupSequence && target == StartupSequence:
		c.startupComplete.Store(true)
		target = Idle
	}
	c.target.Store(uint32(target))

	if target == c.pre {
		return c.pre, c.queues[c.pre], false
	}

	q, ok := c.queues[target]
	if !ok {
		target = Idle
		c.target.Store(uint32(target))
		q = c.queues[Idle]
	}

	if clearTiming != nil {
		clearTiming(q.IDs)
	}

	if hook := c.hooks[target]; hook != nil {
		hook()
	}

	c.pre = target
	return target, q, true
}
