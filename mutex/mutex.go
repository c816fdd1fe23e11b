// Package mutex provides a futex-assisted mutual-exclusion lock: a
// three-state atomic word (Unlocked, Locked, Sleeping) with a bounded spin
// phase before falling back to futex.Wait.
//
// The Sleeping state is sticky and pessimistic: once any thread has decided
// to sleep, every subsequent locker keeps the state at Sleeping so the
// eventual unlocker knows a futex.Wake is owed. This costs one extra wake
// on the uncontended-again falling edge, but it is what makes the lost
// wakeup invariant hold — an unlocker that observes Sleeping always wakes,
// and a locker that is about to sleep has always first published Sleeping.
//
// Locking is not recursive: relocking a mutex already held by the calling
// goroutine is undefined behavior, exactly as in the reference core.
package mutex

import (
	"github.com/tavianator/futex/atomic"
	"github.com/tavianator/futex/futex"
	"github.com/tavianator/futex/spinlock"
)

// State values for Mutex.state.
const (
	Unlocked int32 = iota
	Locked
	Sleeping
)

// spinLimit is the number of acquire attempts Lock makes before falling
// back to a futex sleep, carried verbatim from the reference core's
// MUTEX_SPINS.
const spinLimit = 128

// Mutex is a non-recursive mutual-exclusion lock. The zero value is an
// unlocked mutex, ready to use.
type Mutex struct {
	state atomic.Int32
}

// TryLock attempts to acquire the mutex without blocking.
func (m *Mutex) TryLock() bool {
	state := m.state.Load(atomic.Relaxed)
	if state != Unlocked {
		return false
	}
	_, ok := m.state.CompareExchangeWeak(Unlocked, Locked, atomic.Acquire, atomic.Relaxed)
	return ok
}

// Lock acquires the mutex, blocking until it does.
func (m *Mutex) Lock() {
	state := Unlocked
	for i := 0; i < spinLimit; i++ {
		if fresh, ok := m.state.CompareExchangeWeak(Unlocked, Locked, atomic.Acquire, atomic.Relaxed); ok {
			return
		} else {
			state = fresh
		}
		spinlock.Hint()
	}

	if state != Sleeping {
		state = m.state.Exchange(Sleeping, atomic.Acquire)
	}

	for state != Unlocked {
		futex.Wait(m.state.Addr(), Sleeping)
		state = m.state.Exchange(Sleeping, atomic.Acquire)
	}
}

// Unlock releases the mutex. The caller must hold it.
func (m *Mutex) Unlock() {
	state := m.state.Exchange(Unlocked, atomic.Release)
	if state == Sleeping {
		futex.Wake(m.state.Addr(), 1)
	}
}

// Addr returns the address of the mutex's state word, for use as a futex
// key. cond uses this to requeue condvar waiters directly onto the mutex.
func (m *Mutex) Addr() *int32 {
	return m.state.Addr()
}

// MarkSleeping sets the mutex's state word to Sleeping. The caller must hold
// the mutex, so the word is already Locked or Sleeping and lock ownership is
// unchanged. It exists for cond: a requeue-assisted
// Broadcast moves a waiter directly onto this mutex's futex queue without
// ever going through Lock's normal Exchange(Sleeping, ...) path, so the
// invariant "Sleeping means some unlocker owes a wake" would otherwise be
// silently broken for that waiter. This is not a layering violation to
// refactor away: the reference core's cond_wait likewise marks the mutex's
// internal word as sleeping directly, and this method is the narrow,
// exported affordance for it.
func (m *Mutex) MarkSleeping() {
	m.state.Store(Sleeping, atomic.Relaxed)
}
