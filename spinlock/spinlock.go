// Package spinlock provides a one-bit busy-wait lock built on a single
// atomic bool, using a test-and-test-and-set (TTAS) loop with a CPU
// pause/yield hint between attempts.
//
// Spinlock never suspends the calling goroutine's OS thread and must never
// be held across anything that can block, including a futex sleep. It is
// strictly internal plumbing for futex's bucket table (package futex) —
// the only place in this module that needs a lock cheap enough to take and
// release on every wait/wake without paying for a full mutex's sleep path.
package spinlock

import "github.com/tavianator/futex/atomic"

// Lock is a TTAS spinlock. The zero value is unlocked.
type Lock struct {
	state atomic.Bool
}

// TryLock attempts to acquire the lock without blocking. It first performs
// a relaxed load to avoid bouncing the cache line when the lock is already
// held (test-and-test-and-set), only attempting the acquire exchange if the
// lock looked free.
func (l *Lock) TryLock() bool {
	return !l.state.Load(atomic.Relaxed) && !l.state.Exchange(true, atomic.Acquire)
}

// Lock spins until the lock is acquired, emitting a pause hint between
// attempts so contending spinners don't starve the holder of memory
// bandwidth.
func (l *Lock) Lock() {
	for !l.TryLock() {
		Hint()
	}
}

// Unlock releases the lock.
func (l *Lock) Unlock() {
	l.state.Store(false, atomic.Release)
}
