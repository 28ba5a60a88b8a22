// Package taskmgr implements per-cycle task dispatch: picking the active
// task, measuring its execution time, and enforcing the rescue (time
// quota abort) mechanism, grounded on os_TaskManager.c's
// os_ProcessTaskQueue.
package taskmgr

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-schedcore/mode"
	"github.com/joeycumines/go-schedcore/observable"
	"github.com/joeycumines/go-schedcore/tasktable"
	"github.com/joeycumines/go-schedcore/timebase"
)

// Manager dispatches one task per ProcessOne call, tracking per-task and
// global timing statistics.
//
// The rescue mechanism is this package's hosted-platform realization of
// the original's saved-stack-frame/goto-label task abort: the task runs
// on a dedicated goroutine, raced against a timer set to rescuePeriod.
// On timeout the goroutine is abandoned (it is not, and cannot safely
// be, killed) and the task is quarantined via Task.Enabled, matching the
// documented "task manager marks the task disabled" contract.
type Manager struct {
	table          *tasktable.Table
	timebase       timebase.Timebase
	rescuePeriod   time.Duration
	masterPeriod   uint16

	lastReturn   atomic.Uint32
	globalMax    atomic.Uint32
	procCode     atomic.Uint32
	periodOverrun atomic.Bool
}

// NewManager constructs a Manager. rescuePeriod is the real-time
// equivalent of the configured rescue_period tick count; masterPeriod is
// the configured scheduler period in ticks. The Manager stores
// masterPeriod but does not read it; the TaskTimeQuotaViolation fault
// object's trip level is configured separately.
func NewManager(table *tasktable.Table, tb timebase.Timebase, rescuePeriod time.Duration, masterPeriod uint16) *Manager {
	return &Manager{
		table:        table,
		timebase:     tb,
		rescuePeriod: rescuePeriod,
		masterPeriod: masterPeriod,
	}
}

// Result describes the outcome of one ProcessOne call.
type Result struct {
	TaskID      uint16
	ReturnValue uint16
	Period      uint16
	Overrun     bool
}

// ProcessOne dispatches the task identified by taskID, within the given
// active mode (used only to populate the process-code diagnostic word).
// It returns an error only for a rescue timeout or an unknown task ID;
// the task's return value (non-zero for success, zero for failure; a
// recovered panic counts as failure) is reported via Result.ReturnValue,
// not as an error (the fault engine's TaskExecutionFailure object is
// responsible for turning a failure into a response).
func (m *Manager) ProcessOne(activeMode mode.Mode, taskID uint16) (Result, error) {
	t := m.table.Get(taskID)
	if t == nil {
		return Result{}, fmt.Errorf("taskmgr: no such task id %d", taskID)
	}

	m.procCode.Store(uint32(activeMode)<<16 | uint32(taskID))

	tStart := m.timebase.Now()
	m.timebase.ArmRescue(rescueTicks(m.rescuePeriod, m.timebase))

	var retval uint16
	if t.Enabled && t.Run != nil {
		type outcome struct{ v uint16 }
		done := make(chan outcome, 1)
		go func(run tasktable.Entry) {
			defer func() {
				if recover() != nil {
					done <- outcome{v: 0}
				}
			}()
			done <- outcome{v: run()}
		}(t.Run)

		select {
		case o := <-done:
			retval = o.v
		case <-time.After(m.rescuePeriod):
			t.Enabled = false
			m.timebase.DisarmRescue()
			return Result{TaskID: taskID}, &RescueError{TaskID: t.ID, TaskName: t.Name}
		}
	}

	m.timebase.DisarmRescue()
	tStop := m.timebase.Now()

	overrun := m.timebase.TickPending()
	m.periodOverrun.Store(overrun)

	elapsed := tStop - tStart
	period := elapsed
	if period > 0xFFFF {
		period = 0xFFFF
	}

	t.ReturnValue = retval
	t.Period = uint16(period)
	if t.Period > t.PeriodMax {
		t.PeriodMax = t.Period
	}

	m.lastReturn.Store(uint32(retval))
	for {
		cur := m.globalMax.Load()
		if uint32(t.Period) <= cur {
			break
		}
		if m.globalMax.CompareAndSwap(cur, uint32(t.Period)) {
			break
		}
	}

	return Result{TaskID: taskID, ReturnValue: retval, Period: t.Period, Overrun: overrun}, nil
}

// rescueTicks converts a real-time duration to a tick count understood
// by the configured Timebase. Production callers use timebase.Ticker,
// which exposes TickDuration; for a Timebase without that method
// (e.g. in tests using timebase.Fake) it falls back to the duration's
// raw nanosecond count clamped to 0xFFFF, which is only meaningful
// for bookkeeping/logging in that case, not real enforcement.
func rescueTicks(d time.Duration, tb timebase.Timebase) uint16 {
	type tickDurationer interface{ TickDuration() time.Duration }
	if td, ok := tb.(tickDurationer); ok {
		dur := td.TickDuration()
		if dur > 0 {
			ticks := d / dur
			if ticks > 0xFFFF {
				return 0xFFFF
			}
			return uint16(ticks)
		}
	}
	if d > 0xFFFF {
		return 0xFFFF
	}
	return uint16(d)
}

// LastReturnRef exposes the most recent task return value as an
// observable.Ref, for wiring into the TaskExecutionFailure fault object.
func (m *Manager) LastReturnRef() observable.Ref {
	return observable.Atomic(&m.lastReturn)
}

// GlobalTaskPeriodMaxRef exposes the global maximum observed task
// execution time as an observable.Ref, for wiring into the
// TaskTimeQuotaViolation fault object.
func (m *Manager) GlobalTaskPeriodMaxRef() observable.Ref {
	return observable.Atomic(&m.globalMax)
}

// ProcCode returns the current process-code diagnostic word:
// (mode << 16) | task_id, matching task_mgr.proc_code's role as a crash
// debugging aid.
func (m *Manager) ProcCode() uint32 {
	return m.procCode.Load()
}

// ClearTaskTiming resets the Period/PeriodMax/ReturnValue fields for the
// given task IDs, called by the mode controller on every queue
// switch-over.
func (m *Manager) ClearTaskTiming(ids []uint16) {
	for _, id := range ids {
		if t := m.table.Get(id); t != nil {
			t.ReturnValue = 0
			t.Period = 0
			t.PeriodMax = 0
		}
	}
}
