package observable

import (
	"sync/atomic"
	"testing"
)

func TestVar_ReadsCurrentValue(t *testing.T) {
	v := uint16(7)
	r := Var(&v)
	if got := r.Read(); got != 7 {
		t.Fatalf("Read() = %d, want 7", got)
	}
	v = 99
	if got := r.Read(); got != 99 {
		t.Fatalf("Read() after mutation = %d, want 99", got)
	}
}

func TestVar_PanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil pointer")
		}
	}()
	Var(nil)
}

func TestFunc_InvokesAccessorEachRead(t *testing.T) {
	calls := 0
	r := Func(func() uint16 {
		calls++
		return uint16(calls)
	})
	if got := r.Read(); got != 1 {
		t.Fatalf("first Read() = %d, want 1", got)
	}
	if got := r.Read(); got != 2 {
		t.Fatalf("second Read() = %d, want 2", got)
	}
}

func TestFunc_PanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil function")
		}
	}()
	Func(nil)
}

func TestAtomic_ReadsTruncatedLower16Bits(t *testing.T) {
	var a atomic.Uint32
	a.Store(0x1_ABCD)
	r := Atomic(&a)
	if got := r.Read(); got != 0xABCD {
		t.Fatalf("Read() = %#x, want 0xABCD", got)
	}
}

func TestAtomic_PanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil pointer")
		}
	}()
	Atomic(nil)
}

func TestConst_AlwaysReadsFixedValue(t *testing.T) {
	r := Const(123)
	if got := r.Read(); got != 123 {
		t.Fatalf("Read() = %d, want 123", got)
	}
	if got := r.Read(); got != 123 {
		t.Fatalf("second Read() = %d, want 123", got)
	}
}
