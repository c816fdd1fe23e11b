//go:build linux

package futex

import (
	"math"
	stdatomic "sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// initBackend is a no-op on Linux: the kernel futex facility needs no
// process-wide setup, unlike the emulated backend's bucket table.
func initBackend() {}

// Wait maps directly onto FUTEX_WAIT_PRIVATE. The "private" variant tells
// the kernel this futex is only ever shared between threads of the calling
// process, which lets it skip the inter-process VMA lookup FUTEX_WAIT would
// otherwise perform.
func Wait(addr *int32, value int32) {
	futex(addr, unix.FUTEX_WAIT|unix.FUTEX_PRIVATE_FLAG, value, 0)
}

// Wake maps onto FUTEX_WAKE_PRIVATE, waking up to limit waiters on addr.
func Wake(addr *int32, limit int) int {
	n, _ := futex(addr, unix.FUTEX_WAKE|unix.FUTEX_PRIVATE_FLAG, int32(limit), 0)
	return n
}

// Requeue maps onto FUTEX_CMP_REQUEUE_PRIVATE: wake up to limit waiters on
// addr, and move every other waiter straight onto other's wait queue
// without waking them. FUTEX_CMP_REQUEUE additionally compares *addr
// against the value loaded just before the call; a mismatch only means a
// concurrent bump of the sequence counter raced us, which is harmless here
// because the caller (cond.Broadcast) has already incremented addr itself
// before calling Requeue, so EAGAIN simply means "try the plain wake path",
// which a Wake fallback below handles.
func Requeue(addr *int32, limit int, other *int32) int {
	expect := loadRelaxed(addr)
	n, err := requeue(addr, expect, int32(limit), math.MaxInt32, other)
	if err != nil {
		// The value changed between our load and the syscall. Fall
		// back to waking everyone currently queued on addr; they will
		// simply re-check their own predicate.
		return Wake(addr, math.MaxInt32)
	}
	// The kernel reports woken plus requeued waiters, waking up to limit
	// before it requeues any, so the woken count is at most limit.
	if n > limit {
		n = limit
	}
	return n
}

func loadRelaxed(addr *int32) int32 {
	return stdatomic.LoadInt32(addr)
}

func futex(addr *int32, op int, val int32, val2 uintptr) (int, error) {
	r, _, errno := unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(op),
		uintptr(val),
		val2,
		0, 0,
	)
	if errno != 0 {
		return int(r), errno
	}
	return int(r), nil
}

func requeue(addr *int32, expect int32, wakeLimit, requeueLimit int32, other *int32) (int, error) {
	r, _, errno := unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(unix.FUTEX_CMP_REQUEUE|unix.FUTEX_PRIVATE_FLAG),
		uintptr(wakeLimit),
		uintptr(requeueLimit),
		uintptr(unsafe.Pointer(other)),
		uintptr(expect),
	)
	if errno != 0 {
		return int(r), errno
	}
	return int(r), nil
}
