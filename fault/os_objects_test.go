package fault

import (
	"testing"

	"github.com/joeycumines/go-schedcore/observable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOSFaultObjects_ScanOrderAndIDs(t *testing.T) {
	var resetBits, loadMax, lastReturn, taskMax, componentFail uint16

	objs := NewOSFaultObjects(OSFaultObjectsConfig{
		ResetTriggerBits:    observable.Var(&resetBits),
		LoadMaxBuffer:       observable.Var(&loadMax),
		LoadWarningLevel:    50,
		LoadNormalLevel:     150,
		LastTaskReturn:      observable.Var(&lastReturn),
		GlobalTaskPeriodMax: observable.Var(&taskMax),
		MasterPeriod:        1000,
		OSComponentCheck:    observable.Var(&componentFail),
	})

	require.Len(t, objs, 5)
	wantIDs := []uint16{IDCPUFailure, IDCPULoadOverrun, IDTaskExecutionFailure, IDTaskTimeQuotaViolation, IDOSComponentFailure}
	for i, id := range wantIDs {
		assert.Equal(t, id, objs[i].ID)
		assert.True(t, objs[i].Enabled)
	}
}

func TestNewOSFaultObjects_CPUFailureTripsOnResetBitsEqualOne(t *testing.T) {
	var resetBits uint16
	var tripped bool

	objs := NewOSFaultObjects(OSFaultObjectsConfig{
		ResetTriggerBits: observable.Var(&resetBits),
		OnCPUFailure:     func() uint16 { tripped = true; return 0 },
	})
	cpuFailure := objs[0]
	require.Equal(t, IDCPUFailure, cpuFailure.ID)
	require.Equal(t, ClassCatastrophic|ClassUserResponse, cpuFailure.Class)

	resetBits = 1
	_, err := cpuFailure.step()
	require.NoError(t, err)
	assert.True(t, tripped)
	assert.True(t, cpuFailure.Latched)
}

func TestNewOSFaultObjects_LoadOverrunWarnsBelowThreshold(t *testing.T) {
	var loadMax uint16 = 150
	objs := NewOSFaultObjects(OSFaultObjectsConfig{
		LoadMaxBuffer:    observable.Var(&loadMax),
		LoadWarningLevel: 50,
		LoadNormalLevel:  150,
	})
	loadOverrun := objs[1]

	loadMax = 10
	_, err := loadOverrun.step()
	require.NoError(t, err)
	assert.True(t, loadOverrun.Latched)
}
