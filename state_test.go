package schedcore

import "testing"

func TestFastState_TryTransition(t *testing.T) {
	var s fastState
	s.store(StateBoot)

	if !s.tryTransition(StateBoot, StateRunning) {
		t.Fatal("tryTransition(Boot, Running) should succeed from Boot")
	}
	if got := s.load(); got != StateRunning {
		t.Fatalf("load() = %v, want Running", got)
	}

	if s.tryTransition(StateBoot, StateRunning) {
		t.Fatal("tryTransition(Boot, Running) should fail when state is already Running")
	}
}

func TestRunState_String(t *testing.T) {
	cases := map[RunState]string{
		StateBoot:      "boot",
		StateRunning:   "running",
		StateResetting: "resetting",
		StateHalted:    "halted",
		RunState(99):   "invalid",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
