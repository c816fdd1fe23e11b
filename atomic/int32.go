package atomic

import "sync/atomic"

// Int32 is a word-sized atomic integer with explicit memory orderings.
// The zero value is zero, usable without further initialization.
type Int32 struct {
	v int32
}

// Load reads the current value.
func (a *Int32) Load(_ Order) int32 {
	return atomic.LoadInt32(&a.v)
}

// Store writes v.
func (a *Int32) Store(v int32, _ Order) {
	atomic.StoreInt32(&a.v, v)
}

// Exchange writes v and returns the previous value.
func (a *Int32) Exchange(v int32, _ Order) int32 {
	return atomic.SwapInt32(&a.v, v)
}

// FetchAdd adds delta and returns the value from before the add.
func (a *Int32) FetchAdd(delta int32, _ Order) int32 {
	return atomic.AddInt32(&a.v, delta) - delta
}

// FetchOr ORs mask into the word and returns the value from before the OR.
func (a *Int32) FetchOr(mask int32, _ Order) int32 {
	for {
		old := atomic.LoadInt32(&a.v)
		if old&mask == mask {
			return old
		}
		if atomic.CompareAndSwapInt32(&a.v, old, old|mask) {
			return old
		}
	}
}

// CompareExchangeWeak sets *a to new if its current value equals old,
// reporting whether the swap took place and the word's value: new after a
// successful swap, or the value observed when the swap failed.
// Go's CompareAndSwap never fails spuriously, so "weak" and "strong"
// coincide here; the name is kept because callers are written as if it
// could fail spuriously, exactly as the reference core requires.
func (a *Int32) CompareExchangeWeak(old, new int32, _, _ Order) (int32, bool) {
	if atomic.CompareAndSwapInt32(&a.v, old, new) {
		return new, true
	}
	return atomic.LoadInt32(&a.v), false
}

// Addr returns the address of the underlying word. Used to key a futex
// wait/wake pair on this value, which must never be copied once in use.
func (a *Int32) Addr() *int32 {
	return &a.v
}
