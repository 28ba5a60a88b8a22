// Package tasktable defines the fixed task table and the per-mode task
// queues the scheduler dispatches from, grounded on the original
// firmware's statically allocated tasks[] array and task_queue_* lists
// (os_TaskManager.c).
package tasktable

// Entry is a single unit of cooperative work. It must return promptly;
// long-running or blocking work exceeding the configured rescue period
// will be forcibly abandoned by the task manager.
type Entry func() uint16

// Task is one statically registered entry in the task table. A Task is
// looked up by ID from a Queue's ordered list of IDs; it carries its own
// enable/quarantine flag and running timing statistics, mirroring
// TASKMGR_TASK_CONTROL_t.
type Task struct {
	ID   uint16
	Name string
	Run  Entry

	// Enabled gates execution: a Task with Enabled == false is skipped
	// by the task manager (see os_ProcessTaskQueue's enabled check), and
	// is also how a rescued (timed-out) task is quarantined for the
	// remainder of the run.
	Enabled bool

	// ReturnValue is the most recent return value of Run (0 when the
	// task was skipped because it is disabled).
	ReturnValue uint16
	// Period is the most recently measured execution time, in ticks.
	Period uint16
	// PeriodMax is the maximum Period observed since the last queue
	// switch (cleared on every mode transition).
	PeriodMax uint16
}

// NoOp is the reserved idle task: a task table must contain NoOp at ID 0
// whenever a mode has no useful work to schedule in some queue slot, so
// that a queue can still list a fixed number of slots without every slot
// doing real work.
var NoOp = Task{
	ID:      0,
	Name:    "idle",
	Run:     func() uint16 { return 0 },
	Enabled: true,
}

// Table is the fixed set of tasks known to the scheduler, indexed by ID.
// It is populated once at construction and never resized at runtime, per
// the no-dynamic-task-creation constraint.
type Table struct {
	tasks []Task
}

// NewTable constructs a Table from a slice of tasks. IDs need not be
// contiguous, but must be unique; the table is queried by ID via Get.
func NewTable(tasks []Task) *Table {
	t := &Table{tasks: make([]Task, len(tasks))}
	copy(t.tasks, tasks)
	return t
}

// Get returns a pointer to the live Task with the given ID, or nil if no
// such task is registered. The pointer aliases the Table's backing
// storage and may be mutated by the task manager (return value, timing
// fields, Enabled).
func (t *Table) Get(id uint16) *Task {
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			return &t.tasks[i]
		}
	}
	return nil
}

// Len returns the number of tasks registered in the table.
func (t *Table) Len() int {
	return len(t.tasks)
}
