package ring

import "github.com/rishav/lockfree/internal/spin"

// PollBeginWrite claims the next producer sequence number without waiting
// for the slot to become writable. The caller must not touch the slot
// until PollWriteReady reports true.
//
// Every claim made through the polling API must eventually be published:
// there is no mechanism to abandon a claim, and an uncommitted claim
// stalls every later commit on this ring forever.
func (c *Cursor) PollBeginWrite() int32 {
	p := c.state.nextWrite.Add(1)
	c.currentPos = p
	return c.state.index(p)
}

// PollWriteReady reports whether the slot claimed by the most recent
// PollBeginWrite is now writable.
func (c *Cursor) PollWriteReady() bool {
	spin.Fence()
	p := c.currentPos
	return c.state.capacity+c.state.lastRead.Load()-p+1 >= 1
}

// PollCommitWrite attempts a single CAS to advance last_write to the
// sequence number claimed by the most recent PollBeginWrite. It reports
// success; on failure the caller must retry later rather than abandon
// the claim.
func (c *Cursor) PollCommitWrite() bool {
	p := c.currentPos
	return c.state.lastWrite.CompareAndSwap(p-1, p)
}

// PollBeginRead is the consumer-side counterpart of PollBeginWrite.
func (c *Cursor) PollBeginRead() int32 {
	p := c.state.nextRead.Add(1)
	c.currentPos = p
	return c.state.index(p)
}

// PollReadReady is the consumer-side counterpart of PollWriteReady.
func (c *Cursor) PollReadReady() bool {
	spin.Fence()
	p := c.currentPos
	return c.state.lastWrite.Load()-p+1 >= 1
}

// PollCommitRead is the consumer-side counterpart of PollCommitWrite.
func (c *Cursor) PollCommitRead() bool {
	p := c.currentPos
	return c.state.lastRead.CompareAndSwap(p-1, p)
}
