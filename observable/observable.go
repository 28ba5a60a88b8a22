// Package observable provides read-only handles onto values the fault
// engine and status-capture hooks monitor, standing in for the original
// firmware's raw pointer-to-variable/SFR fault-object source.
package observable

import "sync/atomic"

// Ref is a 16-bit observable reference: something the fault engine can
// sample on every scan without caring whether it is backed by a plain
// variable or a register-style accessor function.
type Ref interface {
	Read() uint16
}

type varRef struct {
	p *uint16
}

func (r varRef) Read() uint16 {
	return *r.p
}

// Var wraps a plain variable as a Ref, dereferencing it on every Read.
// The caller retains ownership of the variable and is responsible for any
// synchronization required if it is written from another goroutine; for
// a lock-free equivalent use Atomic instead.
func Var(v *uint16) Ref {
	if v == nil {
		panic("observable: Var requires a non-nil pointer")
	}
	return varRef{p: v}
}

type funcRef struct {
	fn func() uint16
}

func (r funcRef) Read() uint16 {
	return r.fn()
}

// Func wraps an accessor function as a Ref, e.g. for a value computed on
// demand or backed by a hardware register file.
func Func(fn func() uint16) Ref {
	if fn == nil {
		panic("observable: Func requires a non-nil function")
	}
	return funcRef{fn: fn}
}

type atomicRef struct {
	v *atomic.Uint32
}

func (r atomicRef) Read() uint16 {
	return uint16(r.v.Load())
}

// Atomic wraps an *atomic.Uint32 as a Ref, for values written
// concurrently with fault-engine scans (e.g. the CPU load meter's sticky
// bitwise-OR accumulator).
func Atomic(v *atomic.Uint32) Ref {
	if v == nil {
		panic("observable: Atomic requires a non-nil pointer")
	}
	return atomicRef{v: v}
}

// Const returns a Ref that always reads the same fixed value, useful for
// fault-object compare operands that are constants rather than observed
// state.
func Const(v uint16) Ref {
	return constRef(v)
}

type constRef uint16

func (r constRef) Read() uint16 {
	return uint16(r)
}
