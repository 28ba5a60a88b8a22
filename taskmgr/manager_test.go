package taskmgr

import (
	"errors"
	"testing"
	"time"

	"github.com/joeycumines/go-schedcore/mode"
	"github.com/joeycumines/go-schedcore/tasktable"
	"github.com/joeycumines/go-schedcore/timebase"
)

func TestManager_ProcessOne_ReturnsTaskResult(t *testing.T) {
	tbl := tasktable.NewTable([]tasktable.Task{
		{ID: 1, Name: "t", Enabled: true, Run: func() uint16 { return 7 }},
	})
	tb := timebase.NewFake()
	mgr := NewManager(tbl, tb, time.Second, 1000)

	result, err := mgr.ProcessOne(mode.Run, 1)
	if err != nil {
		t.Fatalf("ProcessOne() error = %v", err)
	}
	if result.ReturnValue != 7 {
		t.Fatalf("ReturnValue = %d, want 7", result.ReturnValue)
	}
	if result.TaskID != 1 {
		t.Fatalf("TaskID = %d, want 1", result.TaskID)
	}
}

func TestManager_ProcessOne_UnknownTaskIDErrors(t *testing.T) {
	tbl := tasktable.NewTable(nil)
	tb := timebase.NewFake()
	mgr := NewManager(tbl, tb, time.Second, 1000)

	_, err := mgr.ProcessOne(mode.Idle, 42)
	if err == nil {
		t.Fatal("expected error for unknown task id")
	}
}

func TestManager_ProcessOne_DisabledTaskDoesNotRun(t *testing.T) {
	ran := false
	tbl := tasktable.NewTable([]tasktable.Task{
		{ID: 1, Name: "t", Enabled: false, Run: func() uint16 { ran = true; return 1 }},
	})
	tb := timebase.NewFake()
	mgr := NewManager(tbl, tb, time.Second, 1000)

	result, err := mgr.ProcessOne(mode.Idle, 1)
	if err != nil {
		t.Fatalf("ProcessOne() error = %v", err)
	}
	if ran {
		t.Fatal("disabled task's Run was invoked")
	}
	if result.ReturnValue != 0 {
		t.Fatalf("ReturnValue = %d, want 0", result.ReturnValue)
	}
}

func TestManager_ProcessOne_RescueTimeoutQuarantinesTask(t *testing.T) {
	block := make(chan struct{})
	tbl := tasktable.NewTable([]tasktable.Task{
		{ID: 1, Name: "stuck", Enabled: true, Run: func() uint16 { <-block; return 0 }},
	})
	tb := timebase.NewFake()
	mgr := NewManager(tbl, tb, 10*time.Millisecond, 1000)

	_, err := mgr.ProcessOne(mode.Run, 1)
	close(block)

	if err == nil {
		t.Fatal("expected rescue timeout error")
	}
	var rescueErr *RescueError
	if !errors.As(err, &rescueErr) {
		t.Fatalf("error = %v, want *RescueError", err)
	}
	if !errors.Is(err, ErrRescueTimeout) {
		t.Fatal("error does not unwrap to ErrRescueTimeout")
	}

	task := tbl.Get(1)
	if task.Enabled {
		t.Fatal("task must be quarantined (Enabled=false) after rescue timeout")
	}
}

func TestManager_ProcessOne_RecoversPanicAsFailure(t *testing.T) {
	tbl := tasktable.NewTable([]tasktable.Task{
		{ID: 1, Name: "panicky", Enabled: true, Run: func() uint16 { panic("boom") }},
	})
	tb := timebase.NewFake()
	mgr := NewManager(tbl, tb, time.Second, 1000)

	result, err := mgr.ProcessOne(mode.Run, 1)
	if err != nil {
		t.Fatalf("ProcessOne() error = %v", err)
	}
	if result.ReturnValue != 0 {
		t.Fatalf("ReturnValue = %d, want 0 (failure) for recovered panic", result.ReturnValue)
	}
}

func TestManager_ProcessOne_TracksGlobalAndPerTaskMax(t *testing.T) {
	tb := timebase.NewFake()
	tbl := tasktable.NewTable([]tasktable.Task{
		{ID: 1, Name: "a", Enabled: true, Run: func() uint16 { tb.Advance(5); return 0 }},
	})
	mgr := NewManager(tbl, tb, time.Second, 1000)

	_, _ = mgr.ProcessOne(mode.Run, 1)

	task := tbl.Get(1)
	if task.Period != 5 {
		t.Fatalf("Period = %d, want 5", task.Period)
	}
	if task.PeriodMax != 5 {
		t.Fatalf("PeriodMax = %d, want 5", task.PeriodMax)
	}
	if got := mgr.GlobalTaskPeriodMaxRef().Read(); got != 5 {
		t.Fatalf("GlobalTaskPeriodMaxRef() = %d, want 5", got)
	}

	tbl.Get(1).Run = func() uint16 { tb.Advance(2); return 0 }
	_, _ = mgr.ProcessOne(mode.Run, 1)
	if task.PeriodMax != 5 {
		t.Fatalf("PeriodMax regressed after smaller period, got %d", task.PeriodMax)
	}
	if got := mgr.GlobalTaskPeriodMaxRef().Read(); got != 5 {
		t.Fatalf("GlobalTaskPeriodMaxRef() regressed, got %d", got)
	}
}

func TestManager_ClearTaskTiming(t *testing.T) {
	tbl := tasktable.NewTable([]tasktable.Task{
		{ID: 1, Name: "a", Period: 10, PeriodMax: 20, ReturnValue: 5},
	})
	tb := timebase.NewFake()
	mgr := NewManager(tbl, tb, time.Second, 1000)

	mgr.ClearTaskTiming([]uint16{1})
	task := tbl.Get(1)
	if task.Period != 0 || task.PeriodMax != 0 || task.ReturnValue != 0 {
		t.Fatalf("task timing not cleared: %+v", task)
	}
}

func TestManager_LastReturnRef(t *testing.T) {
	tbl := tasktable.NewTable([]tasktable.Task{
		{ID: 1, Name: "a", Enabled: true, Run: func() uint16 { return 3 }},
	})
	tb := timebase.NewFake()
	mgr := NewManager(tbl, tb, time.Second, 1000)

	_, _ = mgr.ProcessOne(mode.Run, 1)
	if got := mgr.LastReturnRef().Read(); got != 3 {
		t.Fatalf("LastReturnRef() = %d, want 3", got)
	}
}
