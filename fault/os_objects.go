package fault

import "github.com/joeycumines/go-schedcore/observable"

// Fault object IDs reserved for the five standard OS fault objects,
// carried over from fdrv_FaultObjects.c's os_fault_object_list[]
// ordering (these always scan ahead of any user-defined objects).
const (
	IDCPUFailure             uint16 = 1
	IDCPULoadOverrun         uint16 = 2
	IDTaskExecutionFailure   uint16 = 3
	IDTaskTimeQuotaViolation uint16 = 4
	IDOSComponentFailure     uint16 = 5
)

// OSFaultObjectsConfig supplies the observable references and callbacks
// the five standard OS fault objects are wired to. It mirrors the
// per-object configuration table in fdrv_FaultObjects.c.
type OSFaultObjectsConfig struct {
	// ResetTriggerBits observes the trap log's latched reset-cause
	// bitmask; CPUFailure trips when it reads exactly 1.
	ResetTriggerBits observable.Ref
	// OnCPUFailure is invoked once when CPUFailure trips (the original's
	// trip_function: initiate a controlled reset).
	OnCPUFailure func() uint16

	// LoadMaxBuffer observes the CPU load meter's sticky bitwise-OR
	// accumulator of load values.
	LoadMaxBuffer observable.Ref
	// LoadWarningLevel is the load value below which a load overrun
	// warning trips (load is headroom-remaining, so "overrun" is a
	// LessThan comparison).
	LoadWarningLevel uint16
	// LoadNormalLevel is the load value above which the warning clears.
	LoadNormalLevel uint16

	// LastTaskReturn observes the most recently dispatched task's
	// return value.
	LastTaskReturn observable.Ref

	// GlobalTaskPeriodMax observes the task manager's global maximum
	// observed task execution time, in ticks.
	GlobalTaskPeriodMax observable.Ref
	// MasterPeriod is the configured scheduler period, in ticks: the
	// time-quota trip level.
	MasterPeriod uint16

	// OSComponentCheck observes the scheduler's aggregated
	// os_component_check failure bit: non-zero means the most recent
	// status-capture hook call reported a failure (returned zero).
	OSComponentCheck observable.Ref
}

// NewOSFaultObjects constructs the five standard OS fault objects in the
// original's scan order, all enabled.
func NewOSFaultObjects(cfg OSFaultObjectsConfig) []*Object {
	return []*Object{
		{
			ID:                  IDCPUFailure,
			ErrorCode:           0x0001_0001,
			Class:               ClassCatastrophic | ClassUserResponse,
			Enabled:             true,
			Source:              cfg.ResetTriggerBits,
			CompareType:         Equal,
			TripLevel:           1,
			TripCountThreshold:  1,
			ResetLevel:          0,
			ResetCountThreshold: 1,
			TripFunction:        cfg.OnCPUFailure,
		},
		{
			ID:                  IDCPULoadOverrun,
			ErrorCode:           0x0001_0002,
			Class:               ClassWarning,
			Enabled:             true,
			Source:              cfg.LoadMaxBuffer,
			CompareType:         LessThan,
			TripLevel:           cfg.LoadWarningLevel,
			TripCountThreshold:  1,
			ResetLevel:          cfg.LoadNormalLevel,
			ResetCountThreshold: 10,
		},
		{
			ID:                  IDTaskExecutionFailure,
			ErrorCode:           0x0001_0003,
			Class:               ClassFlag,
			Enabled:             true,
			Source:              cfg.LastTaskReturn,
			CompareType:         NotEqual,
			TripLevel:           1,
			TripCountThreshold:  1,
			ResetLevel:          1,
			ResetCountThreshold: 1,
		},
		{
			ID:                  IDTaskTimeQuotaViolation,
			ErrorCode:           0x0001_0004,
			Class:               ClassWarning,
			Enabled:             true,
			Source:              cfg.GlobalTaskPeriodMax,
			CompareType:         GreaterThan,
			TripLevel:           cfg.MasterPeriod,
			TripCountThreshold:  1,
			ResetLevel:          uint16(uint32(cfg.MasterPeriod) * 9 / 10),
			ResetCountThreshold: 10,
		},
		{
			ID:                  IDOSComponentFailure,
			ErrorCode:           0x0001_0005,
			Class:               ClassWarning,
			Enabled:             true,
			Source:              cfg.OSComponentCheck,
			CompareType:         Boolean,
			TripCountThreshold:  1,
			ResetCountThreshold: 100,
		},
	}
}
