// Package futex provides the two fundamental wait/wake primitives this
// module's mutex and cond are built on: "sleep iff the observed value has
// not changed" and "wake one or more sleepers on a given address".
//
// Wait(addr, value) atomically compares *addr to value with respect to
// wakers; if equal, it blocks until a future Wake/Requeue on addr or a
// spurious wakeup; if not equal, it returns promptly. Callers must always
// recheck their predicate in a loop — spurious wakeups are permitted and,
// on the emulated backend, expected.
//
// Wake(addr, limit) wakes up to limit goroutines currently waiting on addr.
//
// Requeue(addr, limit, other) wakes up to limit waiters on addr and moves
// any remaining waiters from addr's queue to other's queue without waking
// them — atomic from the waiters' perspective, and the key optimization
// behind Cond's requeue-assisted Broadcast. The FreeBSD backend has no
// requeue: its Requeue wakes every waiter on addr and moves none.
//
// Exactly one backend compiles into the binary, selected by build
// constraints: a Linux kernel backend (futex_linux.go) issuing the raw
// futex(2) syscall, a FreeBSD kernel backend (futex_freebsd.go) issuing
// _umtx_op, and a portable emulated backend (futex_emulated.go) for every
// other platform, built from a 64-bucket hashed wait-queue table. Backend
// selection is a build-time concern, not a runtime one: callers never
// branch on which backend is active.
package futex

import "sync"

var initOnce sync.Once

// Init performs one-time process-wide initialization. It must be called
// before any sleep-capable primitive in this module (futex, mutex, cond) is
// used. Calling it more than once is harmless but unnecessary.
func Init() {
	initOnce.Do(initBackend)
}
