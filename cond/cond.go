// Package cond provides a condition variable built on a single
// monotonically-increasing atomic sequence counter, requeue-coupled to
// mutex so that, on backends with a requeue primitive, Broadcast wakes
// exactly one waiter and moves the rest directly onto the mutex's futex
// queue instead of waking all of them into a thundering herd.
package cond

import (
	"github.com/tavianator/futex/atomic"
	"github.com/tavianator/futex/futex"
	"github.com/tavianator/futex/mutex"
	"github.com/tavianator/futex/spinlock"
)

// spinLimit is the number of iterations Wait spends re-checking the
// sequence counter before falling back to a futex sleep. This absorbs very
// short critical sections without a futex round trip, carried verbatim
// from the reference core's COND_SPINS.
const spinLimit = 128

// Cond is a condition variable. The zero value is ready to use, with its
// sequence counter starting at zero.
type Cond struct {
	seq atomic.Int32
}

// Wait releases m, waits for a Signal or Broadcast, and reacquires m before
// returning. The caller must hold m. Spurious wakeups are permitted:
// callers must re-check their own predicate in a loop around Wait, exactly
// as with sync.Cond.
func (c *Cond) Wait(m *mutex.Mutex) {
	s := c.seq.Load(atomic.Relaxed)

	m.Unlock()

	for i := 0; i < spinLimit; i++ {
		if c.seq.Load(atomic.Relaxed) != s {
			m.Lock()
			return
		}
		spinlock.Hint()
	}

	futex.Wait(c.seq.Addr(), s)

	m.Lock()

	// If our wake arrived via Broadcast's requeue, we are back holding m
	// without ever going through Lock's own Exchange(Sleeping, ...) path.
	// Mark the mutex as possibly-sleeping so the next Unlock still issues
	// the futex.Wake it would otherwise skip. Only needed on this path —
	// the fast spin-loop return above never touched the futex queue, so
	// the mutex's own Lock already established the invariant correctly.
	m.MarkSleeping()
}

// Signal wakes one goroutine waiting in Wait, if any.
func (c *Cond) Signal(m *mutex.Mutex) {
	c.seq.FetchAdd(1, atomic.Relaxed)
	futex.Wake(c.seq.Addr(), 1)
}

// Broadcast wakes every goroutine waiting in Wait. One is woken directly;
// the rest are requeued onto m's futex queue so that m.Unlock releases them
// one at a time instead of waking all of them to immediately contend for m.
// On the FreeBSD backend, whose futex.Requeue does not requeue, all of them
// are woken directly.
func (c *Cond) Broadcast(m *mutex.Mutex) {
	c.seq.FetchAdd(1, atomic.Relaxed)
	futex.Requeue(c.seq.Addr(), 1, m.Addr())
}
