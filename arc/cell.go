package arc

import (
	"sync/atomic"

	"github.com/rishav/lockfree/internal/spin"
)

// Cell is an atomically replaceable (data, control-block) pair: it
// supports lock-free AtomicStore/AtomicLoad with correct refcount
// accounting, using a sentinel-locking critical section rather than a
// naive clone-then-swap.
//
// A Cell's zero value is not ready to use; construct one with NewCell.
type Cell[T any] struct {
	ptr atomic.Pointer[pair[T]]

	// busy is this cell's private BUSY sentinel: a unique pointer value
	// that can never otherwise be stored in ptr, used as a
	// transient lock marker during AtomicBegin/AtomicCommit. It is scoped
	// per Cell, rather than one shared package value, purely so each Cell
	// owns a pointer identity nothing else can forge.
	busy *pair[T]
}

// NewCell creates an empty (null) ARC cell.
func NewCell[T any]() *Cell[T] {
	return &Cell[T]{busy: &pair[T]{}}
}

// AtomicBegin is the acquire phase of a two-step critical section: CAS
// the cell from its current, non-BUSY value to BUSY, retrying while the
// cell is already BUSY or the CAS loses to a concurrent writer. It
// returns the displaced value as a Local the caller now exclusively
// owns; no other goroutine can reach it through this cell until
// AtomicCommit runs.
//
// AtomicStore and AtomicLoad are both just this acquire/release pair with
// different refcount bookkeeping in between; AtomicBegin/AtomicCommit are
// exposed directly so a caller needing a different read-modify-write
// transaction on a cell is not limited to those two.
func (c *Cell[T]) AtomicBegin() Local[T] {
	for {
		spin.Fence()
		old := c.ptr.Load()
		if old == c.busy {
			continue
		}
		if c.ptr.CompareAndSwap(old, c.busy) {
			return Local[T]{p: old}
		}
	}
}

// AtomicCommit is the release phase: publish next, ending the critical
// section started by AtomicBegin. No CAS is needed here. This goroutine
// is the only one that can hold the cell in the BUSY state, so a plain
// atomic store is enough to make next visible.
func (c *Cell[T]) AtomicCommit(next Local[T]) {
	c.ptr.Store(next.p)
}

// AtomicStore publishes newLocal into the cell: newLocal is cloned first
// so the cell holds its own reference independent of the caller's, the
// previous contents are displaced behind the BUSY sentinel, and then
// dropped with correct refcount accounting, invoking destroyFn if the
// cell held the last reference to what it displaced. Storing a null
// Local is well-defined: it displaces and destroys whatever the cell
// previously held.
func (c *Cell[T]) AtomicStore(newLocal Local[T]) {
	owned := Clone(newLocal)
	old := c.AtomicBegin()
	c.AtomicCommit(owned)
	if old.p != nil {
		after := old.p.ctrl.refcount.Add(-1)
		if after == 0 {
			old.p.ctrl.destroyFn(old.p.ctrl.ctx, old.p.data)
		}
	}
}

// AtomicLoad returns a new strong reference to whatever the cell
// currently holds. The caller must Drop the result. Loading an empty
// cell returns the null reference.
func (c *Cell[T]) AtomicLoad() Local[T] {
	old := c.AtomicBegin()
	if old.p != nil {
		old.p.ctrl.refcount.Add(1)
	}
	c.AtomicCommit(old)
	return old
}
