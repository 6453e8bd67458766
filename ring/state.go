// Package ring implements a bounded, single-slot-per-claim MPMC ring
// buffer coordinator: a shared State handing out unique sequence numbers
// to producers and consumers, and per-goroutine Cursors that claim, wait
// on, and commit those sequence numbers.
//
// The coordinator never owns the element storage. Callers index their own
// capacity-sized array with the sequence number a Cursor returns, masked to
// a slot index. This mirrors disruptor.RingBuffer's separation between the
// atomic cursor bookkeeping and the pre-allocated slot array, generalized
// from a single order-processing queue to an arbitrary-payload ring.
package ring

import (
	"sync/atomic"
)

// State is the shared coordinator for one ring. It holds the four
// monotonic sequence watermarks and nothing else: no element storage, no
// participant registry.
//
// The four atomic counters are each kept on their own cache line
// (grounded on disruptor.RingBufferSlot / disruptor.RingBuffer's explicit
// padding) because producers hammer nextWrite/lastWrite while consumers
// hammer nextRead/lastRead; letting all four share a line would turn every
// claim and commit into cross-core false-sharing traffic.
type State struct {
	capacity int32
	mask     int32

	_ [56]byte

	nextWrite atomic.Int32
	_         [60]byte

	lastWrite atomic.Int32
	_         [60]byte

	nextRead atomic.Int32
	_        [60]byte

	lastRead atomic.Int32
	_        [60]byte
}

// NewState creates a ring coordinator for the given capacity.
//
// capacity must be a power of two and at least 2. The caller is
// responsible for keeping the number of live producer+consumer cursors at
// or below capacity/2; this type has no way to check that at runtime.
func NewState(capacity int32) *State {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic("ring: capacity must be a power of two >= 2")
	}
	s := &State{capacity: capacity, mask: capacity - 1}
	s.nextWrite.Store(-1)
	s.lastWrite.Store(-1)
	s.nextRead.Store(-1)
	s.lastRead.Store(-1)
	return s
}

// Capacity returns the fixed slot count this ring was created with.
func (s *State) Capacity() int32 { return s.capacity }

// NextWrite returns the current producer claim watermark (next_write).
func (s *State) NextWrite() int32 { return s.nextWrite.Load() }

// LastWrite returns the current committed-write watermark (last_write).
func (s *State) LastWrite() int32 { return s.lastWrite.Load() }

// NextRead returns the current consumer claim watermark (next_read).
func (s *State) NextRead() int32 { return s.nextRead.Load() }

// LastRead returns the current committed-read watermark (last_read).
func (s *State) LastRead() int32 { return s.lastRead.Load() }

// index masks a claimed sequence number down to a slot position. capacity
// being a power of two makes this equivalent to a modulo and keeps working
// across signed 32-bit wraparound.
func (s *State) index(pos int32) int32 {
	return pos & s.mask
}
