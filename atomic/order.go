// Package atomic provides a thin, word-sized atomics façade with named
// memory orderings: load, store, exchange, fetch-add, fetch-or, and
// compare-exchange-weak. The spinlock, mutex and cond layers are built only
// on these operations. The futex backends are not: they are keyed on raw
// *int32 words and use sync/atomic directly.
//
// Go's memory model gives sync/atomic sequential consistency, strictly
// stronger than anything an Order below asks for. The Order parameter is
// kept anyway: it documents, at each call site, exactly what ordering the
// algorithm requires, the same way the C11 core this module is modeled on
// spells out relaxed/acquire/release at every atomic access.
package atomic

// Order names the memory ordering an atomic access requires.
type Order int

const (
	// Relaxed asks only for atomicity, with no ordering against other
	// memory accesses.
	Relaxed Order = iota
	// Acquire prevents memory accesses after this operation from being
	// reordered before it.
	Acquire
	// Release prevents memory accesses before this operation from being
	// reordered after it.
	Release
	// AcqRel combines Acquire and Release, for read-modify-write
	// operations that both publish and observe.
	AcqRel
)
