package ring

import "github.com/rishav/lockfree/internal/spin"

// Cursor is a per-goroutine, non-shared handle onto a ring: a reference
// to the ring it belongs to, plus the sequence number most recently
// claimed by this cursor. A Cursor holds no other resources and can
// simply be dropped when a goroutine stops participating.
//
// A Cursor must be used by exactly one goroutine at a time; sharing one
// across goroutines defeats the total-ordering guarantee the ring relies
// on (each cursor's claims come from the shared State's atomic counters,
// but the in-flight currentPos bookkeeping between BeginWrite/CommitWrite
// is not itself synchronized).
type Cursor struct {
	state      *State
	currentPos int32
}

// NewCursor binds a new cursor to a ring. The cursor starts out having
// claimed nothing.
func NewCursor(s *State) *Cursor {
	return &Cursor{state: s, currentPos: -1}
}

// CurrentPos returns the sequence number most recently claimed by this
// cursor, or -1 if it has never claimed one.
func (c *Cursor) CurrentPos() int32 { return c.currentPos }

// BeginWrite claims the next producer sequence number and spins until the
// corresponding slot is writable.
//
// The caller owns slot index (the returned value) exclusively until it
// calls CommitWrite; exceeding that window without committing stalls
// every later commit on this ring, since commits must publish in strict
// sequence order.
func (c *Cursor) BeginWrite() int32 {
	p := c.state.nextWrite.Add(1)
	c.currentPos = p
	for {
		spin.Fence()
		available := c.state.capacity + c.state.lastRead.Load() - p + 1
		if available >= 1 {
			break
		}
	}
	return c.state.index(p)
}

// CommitWrite publishes the write claimed by the most recent BeginWrite.
// It blocks until every earlier sequence number has published, then
// advances last_write by exactly one using a single CAS, spinning on CAS
// failure.
func (c *Cursor) CommitWrite() {
	p := c.currentPos
	for {
		spin.Fence()
		if c.state.lastWrite.Load() == p-1 {
			if c.state.lastWrite.CompareAndSwap(p-1, p) {
				return
			}
		}
	}
}

// BeginRead claims the next consumer sequence number and spins until the
// corresponding slot is readable.
func (c *Cursor) BeginRead() int32 {
	p := c.state.nextRead.Add(1)
	c.currentPos = p
	for {
		spin.Fence()
		available := c.state.lastWrite.Load() - p + 1
		if available >= 1 {
			break
		}
	}
	return c.state.index(p)
}

// CommitRead publishes the read claimed by the most recent BeginRead.
func (c *Cursor) CommitRead() {
	p := c.currentPos
	for {
		spin.Fence()
		if c.state.lastRead.Load() == p-1 {
			if c.state.lastRead.CompareAndSwap(p-1, p) {
				return
			}
		}
	}
}
