//go:build freebsd

package futex

import (
	"math"
	"unsafe"

	"golang.org/x/sys/unix"
)

// FreeBSD's umtx facility, reached through the _umtx_op(2) syscall. These
// operation codes are a stable part of the FreeBSD ABI (sys/umtx.h); x/sys/unix
// does not wrap them, so they're named directly, the same way
// original_source/futex_freebsd.c names UMTX_OP_WAIT_UINT_PRIVATE and
// UMTX_OP_WAKE_PRIVATE without any higher-level helper.
const (
	umtxOpWaitUintPrivate = 11
	umtxOpWakePrivate     = 12
)

func initBackend() {}

// Wait maps onto UMTX_OP_WAIT_UINT_PRIVATE.
func Wait(addr *int32, value int32) {
	unix.Syscall6(
		unix.SYS__UMTX_OP,
		uintptr(unsafe.Pointer(addr)),
		umtxOpWaitUintPrivate,
		uintptr(uint32(value)),
		0, 0, 0,
	)
}

// Wake maps onto UMTX_OP_WAKE_PRIVATE.
func Wake(addr *int32, limit int) int {
	r, _, _ := unix.Syscall6(
		unix.SYS__UMTX_OP,
		uintptr(unsafe.Pointer(addr)),
		umtxOpWakePrivate,
		uintptr(limit),
		0, 0, 0,
	)
	return int(r)
}

// Requeue has no atomic kernel-level counterpart in the _umtx_op variant
// this backend targets (original_source/futex_freebsd.c only shows wait and
// wake). We fall back to waking everyone: correct, but gives up the
// thundering-herd avoidance a true requeue gives on Linux. This mirrors the
// original source's own scope rather than inventing an umtx op it never
// used.
func Requeue(addr *int32, limit int, other *int32) int {
	return Wake(addr, math.MaxInt32)
}
