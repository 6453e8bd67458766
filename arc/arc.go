// Package arc implements a lock-free atomic reference-counted cell: a
// conceptual (control-block, data) pair that is replaced as a single
// atomic unit, with refcount accounting that never lets a reader observe
// a freed counter.
//
// The pair is represented as a single atomic.Pointer to a boxed,
// immutable pair rather than as two separately-CASed fields. Go's
// sync/atomic exposes no hardware double-word CAS, and boxing the pair
// behind one pointer gives the same torn-read-free atomicity a wide CAS
// would, using the same technique the standard library itself relies on
// to swap a composite value atomically.
package arc

import "sync/atomic"

// DestroyFunc frees both the data block and the control block behind a
// Local reference. It is invoked exactly once, by whichever goroutine
// drives a refcount from 1 to 0.
type DestroyFunc[T any] func(ctx interface{}, data *T)

// ControlBlock is the caller-conceptual counting block backing a Local
// reference. Unlike a hand-rolled C refcounted pointer, the Go caller
// does not allocate this block
// directly: New allocates it, because Go has no notion of a caller
// supplying raw, unmanaged storage for a struct containing a destructor
// closure. The refcount field is the only part of this struct any
// goroutine other than the owner touches, and only through atomic ops.
type ControlBlock[T any] struct {
	refcount  atomic.Int32
	ctx       interface{}
	destroyFn DestroyFunc[T]
}

// pair is the (control block, data) unit a Cell swaps atomically. Once
// constructed it is never mutated, only replaced. That immutability is
// what lets a single pointer CAS stand in for a wide CAS over both
// fields at once.
type pair[T any] struct {
	ctrl *ControlBlock[T]
	data *T
}

// Local is a strong reference a caller holds: the result of New, Clone,
// or Cell.AtomicLoad. Exactly one Drop must be issued per Local produced. The
// zero value is the null reference.
type Local[T any] struct {
	p *pair[T]
}

// IsNull reports whether this reference is the null reference.
func (l Local[T]) IsNull() bool { return l.p == nil }

// Data returns the referenced data block, or nil for a null reference.
func (l Local[T]) Data() *T {
	if l.p == nil {
		return nil
	}
	return l.p.data
}

// New creates a root strong reference with refcount 1. destroyFn will be
// invoked exactly once, when the last reference drops; it is responsible
// for freeing both data and whatever the caller considers the control
// block's backing storage.
func New[T any](data *T, ctx interface{}, destroyFn DestroyFunc[T]) Local[T] {
	ctrl := &ControlBlock[T]{ctx: ctx, destroyFn: destroyFn}
	ctrl.refcount.Store(1)
	return Local[T]{p: &pair[T]{ctrl: ctrl, data: data}}
}

// Clone produces a second strong reference to the same data, incrementing
// the shared refcount first.
func Clone[T any](src Local[T]) Local[T] {
	if src.p == nil {
		return Local[T]{}
	}
	src.p.ctrl.refcount.Add(1)
	return Local[T]{p: src.p}
}

// Drop releases a strong reference. A null reference is a no-op
// returning 0. Otherwise the refcount is
// atomically decremented; if it reaches 0, destroyFn runs exactly once.
// Drop returns the refcount's value immediately before the decrement.
func Drop[T any](l Local[T]) int32 {
	if l.p == nil {
		return 0
	}
	after := l.p.ctrl.refcount.Add(-1)
	if after == 0 {
		l.p.ctrl.destroyFn(l.p.ctrl.ctx, l.p.data)
	}
	return after + 1
}

// IsEqual reports whether a and b reference the same control block. Two
// null references are equal to each other.
func IsEqual[T any](a, b Local[T]) bool {
	if a.p == nil || b.p == nil {
		return a.p == b.p
	}
	return a.p.ctrl == b.p.ctrl
}
