// Package schedcore implements a grid-locked cooperative scheduler for a
// fixed set of user-supplied tasks, switching between named operating
// modes, measuring CPU load and per-task execution time, and driving a
// data-driven fault-detection engine whose outputs trigger warnings, a
// controlled warm restart, or a halt. Grounded on os_Scheduler.c's
// OS_Execute main loop.
package schedcore

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/go-schedcore/fault"
	"github.com/joeycumines/go-schedcore/mode"
	"github.com/joeycumines/go-schedcore/observable"
	"github.com/joeycumines/go-schedcore/taskmgr"
	"github.com/joeycumines/go-schedcore/tasktable"
	"github.com/joeycumines/go-schedcore/timebase"
)

// Scheduler ties together the timebase, task table, task manager, mode
// controller and fault engine into the nine-step cycle described by
// os_Scheduler.c.
type Scheduler struct {
	cfg *config

	table   *tasktable.Table
	mgr     *taskmgr.Manager
	modeCtl *mode.Controller
	fault   *fault.Engine
	tb      timebase.Timebase

	state         fastState
	load          CPULoadMeter
	trap          TrapLog
	chatter       *catrate.Limiter
	osComponentCheck atomic.Uint32

	queue tasktable.Queue
	index int
}

// New constructs a Scheduler. table is the fixed set of tasks; queues
// and hooks bind each mode.Mode to its task queue and switch-over hook
// (a mode absent from queues falls back to Idle's queue, per
// mode.Controller); userFaults are caller-defined fault objects scanned
// after the five standard OS fault objects.
func New(table *tasktable.Table, queues map[mode.Mode]tasktable.Queue, hooks map[mode.Mode]mode.Hook, userFaults []*fault.Object, opts ...Option) (*Scheduler, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	tb := timebase.NewTicker(cfg.tickDuration)
	mgr := taskmgr.NewManager(table, tb, cfg.rescuePeriod, cfg.masterPeriod)
	modeCtl := mode.NewController(queues, hooks)

	s := &Scheduler{
		cfg:     cfg,
		table:   table,
		mgr:     mgr,
		modeCtl: modeCtl,
		tb:      tb,
		chatter: catrate.NewLimiter(map[time.Duration]int{time.Second: 1}),
	}
	s.load.LoadFactor = cfg.loadFactor

	osObjects := fault.NewOSFaultObjects(fault.OSFaultObjectsConfig{
		ResetTriggerBits:    observable.Atomic(s.trap.resetTriggerBitsAddr()),
		OnCPUFailure:        func() uint16 { s.RequestReset(); return 1 },
		LoadMaxBuffer:       observable.Atomic(s.load.loadMaxBufferAddr()),
		LoadWarningLevel:    cfg.loadWarningLevel,
		LoadNormalLevel:     cfg.loadNormalLevel,
		LastTaskReturn:      mgr.LastReturnRef(),
		GlobalTaskPeriodMax: mgr.GlobalTaskPeriodMaxRef(),
		MasterPeriod:        cfg.masterPeriod,
		OSComponentCheck:    observable.Atomic(&s.osComponentCheck),
	})
	s.fault = fault.NewEngine(osObjects, userFaults)

	return s, nil
}

// State returns the scheduler's current RunState.
func (s *Scheduler) State() RunState {
	return s.state.load()
}

// RequestReset requests a warm reset, taking effect at the end of the
// current cycle. Safe to call from any goroutine, including a fault
// object's TripFunction.
func (s *Scheduler) RequestReset() {
	s.state.tryTransition(StateRunning, StateResetting)
}

// Halt immediately marks the scheduler halted; Run will observe this at
// the start of its next cycle and return ErrResetLimitReached.
func (s *Scheduler) Halt() {
	s.state.store(StateHalted)
}

// Run executes the scheduler loop until ctx is cancelled, a reset is
// requested (by a catastrophic fault or RequestReset), or Halt is called.
// A cancelled ctx and a reset request both go through the warm-reset
// sequence, which counts a software reset: Run returns nil while that
// count is below the reset-attempt limit, and halts and returns
// ErrResetLimitReached once it reaches it. A halted scheduler returns
// ErrResetLimitReached.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.state.tryTransition(StateBoot, StateRunning) {
		return ErrAlreadyRunning
	}

	_, q, _ := s.modeCtl.Check(s.mgr.ClearTaskTiming)
	s.queue = q
	s.index = 0
	s.tb.ClearTick()
	s.tb.SetPeriod(s.cfg.masterPeriod)

	for {
		if ctx.Err() != nil {
			s.state.tryTransition(StateRunning, StateResetting)
		}
		if s.state.load() != StateRunning {
			break
		}

		s.cfg.watchdog.Kick()

		s.load.Ticks = 0
		for !s.tb.TickPending() {
			s.load.Ticks++
			if ctx.Err() != nil {
				break
			}
		}
		s.load.Compute()
		s.tb.ClearTick()
		s.tb.SetPeriod(s.cfg.masterPeriod)

		if s.queue.Size() > 0 {
			taskID := s.queue.At(s.index)
			result, err := s.mgr.ProcessOne(s.modeCtl.CurrentMode(), taskID)
			if err != nil {
				s.cfg.logger.Warning().Err(err).Int("task_id", int(taskID)).Log("task rescue timeout, task quarantined")
			} else if result.ReturnValue != 0 {
				s.cfg.logger.Notice().Int("task_id", int(taskID)).Int("return_value", int(result.ReturnValue)).Log("task returned non-zero result")
			}
		}

		var componentFailure uint32
		if s.cfg.statusCapture() == 0 {
			componentFailure = 1
		}
		s.osComponentCheck.Store(componentFailure)

		action, transitions, ferr := s.fault.ScanAll()
		for _, t := range transitions {
			s.logTransition(t)
		}
		if ferr != nil {
			s.cfg.logger.Err().Err(ferr).Log("fault scan reported malformed descriptors")
		}

		switch action {
		case fault.ActionCatastrophic:
			s.RequestReset()
		case fault.ActionCritical:
			s.modeCtl.RequestMode(mode.Fault)
		}

		if s.index >= s.queue.UBound() {
			_, q, switched := s.modeCtl.Check(s.mgr.ClearTaskTiming)
			if switched {
				s.queue = q
				s.load.Reset()
			}
			s.index = 0
		} else {
			s.index++
		}

		if s.state.load() != StateRunning {
			break
		}
	}

	return s.finalize()
}

func (s *Scheduler) logTransition(t fault.Transition) {
	if ok, _ := s.chatter.Allow(t.ID); !ok {
		return
	}
	b := s.cfg.logger.Notice().Int("fault_id", int(t.ID))
	switch t.Kind {
	case fault.Tripped:
		b.Log("fault object tripped")
	case fault.Reset:
		b.Log("fault object reset")
	}
}

// finalize runs the warm-reset-or-halt sequence once the loop exits with
// a pending reset, matching os_Scheduler.c's post-loop trap capture and
// CPU_RESET/halt decision.
func (s *Scheduler) finalize() error {
	if s.state.load() == StateHalted {
		return ErrResetLimitReached
	}

	s.trap.SetResetTriggerBits(s.trap.ResetTriggerBits())
	count := s.trap.MarkSoftwareReset()

	if int(count) >= s.cfg.resetAttemptLimit {
		s.state.store(StateHalted)
		return ErrResetLimitReached
	}

	s.state.store(StateBoot)
	return nil
}

// Table returns the scheduler's fixed task table.
func (s *Scheduler) Table() *tasktable.Table {
	return s.table
}

// CurrentMode returns the operating mode most recently entered by the
// mode controller.
func (s *Scheduler) CurrentMode() mode.Mode {
	return s.modeCtl.CurrentMode()
}

// StartupComplete reports whether the automatic boot progression has
// reached Idle at least once.
func (s *Scheduler) StartupComplete() bool {
	return s.modeCtl.StartupComplete()
}

// TrapLog returns the scheduler's trap/reset-cause log.
func (s *Scheduler) TrapLog() *TrapLog {
	return &s.trap
}

// LoadMeter returns the scheduler's CPU load meter.
func (s *Scheduler) LoadMeter() *CPULoadMeter {
	return &s.load
}
