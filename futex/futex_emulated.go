//go:build !linux && !freebsd

// This file emulates a kernel futex with a process-global, 64-bucket hashed
// table of wait queues, for platforms with no native futex-like facility.
// It transliterates original_source/futex_signal.c's wait/wake/requeue
// protocol, adapted to Go: a goroutine has no OS-level signal delivery
// address reachable without cgo, so where the reference core sends
// SIGUSR1 via tgkill/pthread_kill and blocks in sigwait, this backend parks
// each waiter on its own one-shot buffered channel — the direct Go
// equivalent of "deliver exactly one wake to this specific sleeper."
// Everything else — the bucket table, the address-to-bucket hash, the
// per-bucket spinlock, the per-waiter spinlock, the home-queue handshake
// that makes requeue safe, and the "drop the lock before the last wake"
// optimization — is carried over unchanged.
package futex

import (
	"sync/atomic"
	"unsafe"

	"github.com/tavianator/futex/spinlock"
	"golang.org/x/sys/cpu"
)

const tableSize = 64

// waiter is a wait-queue entry. Each call to Wait allocates its own (it
// escapes to the heap, since the bucket list points at it) and links it
// into a bucket's list only while that
// goroutine is about to sleep or asleep; it is unlinked under the correct
// bucket's lock before Wait returns.
type waiter struct {
	addr       uintptr
	prev, next *waiter
	lock       spinlock.Lock
	homeQueue  atomic.Pointer[bucket]
	wake       chan struct{}
}

// bucket is one entry of the fixed-size wait-queue table. The CacheLinePad
// keeps adjacent buckets from false-sharing the same cache line under
// concurrent wait/wake traffic, the same reasoning spin.h documents for
// its own false-sharing avoidance.
type bucket struct {
	_    cpu.CacheLinePad
	lock spinlock.Lock
	head waiter // sentinel; head.next/head.prev chain the real waiters
}

var table [tableSize]bucket

func initBackend() {
	for i := range table {
		table[i].head.next = &table[i].head
		table[i].head.prev = &table[i].head
	}
}

// hash mixes a futex address into a bucket index. Address-to-bucket hashing
// must be a bit-mix, not a modulo on raw bits, because futex addresses are
// typically pointer-aligned and share low-bit patterns that would otherwise
// pile every address into a handful of buckets.
//
// https://nullprogram.com/blog/2018/07/31/
func hash(addr uintptr) uintptr {
	i := uint64(addr)
	i ^= i >> 16
	i *= 0x45d9f3b
	i ^= i >> 16
	i *= 0x45d9f3b
	i ^= i >> 16
	return uintptr(i) % tableSize
}

func (b *bucket) pushBack(w *waiter) {
	head := &b.head
	w.prev = head.prev
	w.next = head
	head.prev.next = w
	head.prev = w
}

func (b *bucket) unlink(w *waiter) {
	w.prev.next = w.next
	w.next.prev = w.prev
}

// Wait implements the wait protocol of futex_signal.c's futex_wait: link
// in under the bucket lock (bailing early if the value already changed,
// so we never block a waker pointlessly), sleep, then cooperatively
// re-acquire whatever bucket we currently believe is home, verifying
// agreement before unlinking — this is what keeps a concurrent Requeue from
// racing us into unlinking under the wrong bucket's lock.
func Wait(addr *int32, value int32) {
	key := uintptr(unsafe.Pointer(addr))
	b := &table[hash(key)]

	w := &waiter{addr: key, wake: make(chan struct{}, 1)}

	for !b.lock.TryLock() {
		if atomic.LoadInt32(addr) != value {
			return
		}
		spinlock.Hint()
	}

	b.pushBack(w)
	w.homeQueue.Store(b)

	if atomic.LoadInt32(addr) != value {
		b.unlink(w)
		b.lock.Unlock()
		return
	}
	b.lock.Unlock()

	<-w.wake

	home := b
	for {
		home.lock.Lock()
		w.lock.Lock()
		if w.homeQueue.Load() == home {
			break
		}
		w.lock.Unlock()
		home.lock.Unlock()
		home = w.homeQueue.Load()
	}
	home.unlink(w)
	w.lock.Unlock()
	home.lock.Unlock()
}

// Wake implements futex_wake: walk the bucket, signal up to limit waiters
// whose recorded address matches, and drop the bucket lock before the
// final signal so the woken goroutine never spins trying to take a lock
// this call still holds.
func Wake(addr *int32, limit int) int {
	key := uintptr(unsafe.Pointer(addr))
	b := &table[hash(key)]
	b.lock.Lock()

	count := 0
	head := &b.head
	for n := head.next; n != head && count < limit; {
		next := n.next
		if n.addr == key {
			count++
			if count >= limit || next == head {
				b.lock.Unlock()
				signal(n)
				return count
			}
			signal(n)
		}
		n = next
	}

	b.lock.Unlock()
	return count
}

// Requeue implements the requeue extension: wake up to limit waiters on
// addr, and move every other matching waiter directly onto other's queue
// without waking it, under both buckets' locks held in ascending address
// order to avoid deadlocking against a concurrent requeue the other way.
func Requeue(addr *int32, limit int, other *int32) int {
	srcKey := uintptr(unsafe.Pointer(addr))
	dstKey := uintptr(unsafe.Pointer(other))
	src := &table[hash(srcKey)]
	dst := &table[hash(dstKey)]

	lockBuckets(src, dst)
	defer unlockBuckets(src, dst)

	woken := 0
	head := &src.head
	for n := head.next; n != head; {
		next := n.next
		if n.addr == srcKey {
			if woken < limit {
				woken++
				signal(n)
			} else {
				n.lock.Lock()
				n.addr = dstKey
				n.homeQueue.Store(dst)
				src.unlink(n)
				dst.pushBack(n)
				n.lock.Unlock()
			}
		}
		n = next
	}
	return woken
}

func signal(w *waiter) {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func lockBuckets(a, b *bucket) {
	if a == b {
		a.lock.Lock()
		return
	}
	if uintptr(unsafe.Pointer(a)) < uintptr(unsafe.Pointer(b)) {
		a.lock.Lock()
		b.lock.Lock()
	} else {
		b.lock.Lock()
		a.lock.Lock()
	}
}

func unlockBuckets(a, b *bucket) {
	if a == b {
		a.lock.Unlock()
		return
	}
	if uintptr(unsafe.Pointer(a)) < uintptr(unsafe.Pointer(b)) {
		b.lock.Unlock()
		a.lock.Unlock()
	} else {
		a.lock.Unlock()
		b.lock.Unlock()
	}
}
