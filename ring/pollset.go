package ring

import "github.com/rishav/lockfree/internal/spin"

// PollSet lets a single consumer goroutine round-robin over several rings
// without ever blocking on one that is empty: a reader watching several
// queues at once should never busy-spin forever just because the ring it
// happens to be checking is momentarily dry. It is built on top of the
// polling API in poll.go, generalized from
// disruptor.EventProcessor.processLoop's single-goroutine spin-and-switch
// structure.
//
// PollSet assumes each Cursor registered with it is the only reader for
// its ring: TryBeginRead peeks at a ring's watermarks before claiming, and
// that peek would go stale if a second, uncoordinated reader could steal
// the same sequence number between the peek and the claim. Rings with
// multiple independent consumers should poll each cursor directly instead.
type PollSet struct {
	cursors []*Cursor
	pos     int
}

// NewPollSet builds a poll set over the given cursors, each already bound
// to a ring via NewCursor.
func NewPollSet(cursors ...*Cursor) *PollSet {
	return &PollSet{cursors: cursors}
}

// TryBeginRead scans the registered cursors in round-robin order, starting
// just after the one served last time, and claims the first readable
// element it finds. It reports ok=false, having claimed nothing, when no
// ring currently has data. A caller spinning over an empty PollSet never
// stalls a commit chain on an abandoned claim, since nothing is claimed
// until a readable element is actually found.
//
// On ok=true the caller owns the returned slot on the returned cursor's
// ring until it calls PollCommitRead (or the blocking CommitRead) on that
// cursor.
func (ps *PollSet) TryBeginRead() (cursorIdx int, slot int32, ok bool) {
	n := len(ps.cursors)
	for i := 0; i < n; i++ {
		idx := (ps.pos + i) % n
		c := ps.cursors[idx]

		spin.Fence()
		candidate := c.state.nextRead.Load() + 1
		if c.state.lastWrite.Load()-candidate+1 < 1 {
			continue
		}

		ps.pos = (idx + 1) % n
		return idx, c.PollBeginRead(), true
	}
	return 0, 0, false
}

// Cursor returns the cursor registered at index i, e.g. to finish a
// PollCommitRead after TryBeginRead reported it.
func (ps *PollSet) Cursor(i int) *Cursor { return ps.cursors[i] }
