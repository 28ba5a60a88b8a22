package schedcore

import "testing"

func TestCountingWatchdog_CountsKicks(t *testing.T) {
	w := NewCountingWatchdog()
	if w.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", w.Count())
	}
	w.Kick()
	w.Kick()
	w.Kick()
	if got := w.Count(); got != 3 {
		t.Fatalf("Count() = %d, want 3", got)
	}
}

func TestNoopWatchdog_KickDoesNotPanic(t *testing.T) {
	var w noopWatchdog
	w.Kick()
}
