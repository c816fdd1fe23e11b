package atomic

import "testing"

func TestInt32CompareExchangeWeak(t *testing.T) {
	var a Int32
	fresh, swapped := a.CompareExchangeWeak(0, 2, AcqRel, Relaxed)
	if fresh != 2 || !swapped {
		t.Errorf("got %d (swapped %v), expected 2 (swapped true)", fresh, swapped)
	}
	fresh, swapped = a.CompareExchangeWeak(1, 3, AcqRel, Relaxed)
	if fresh != 2 || swapped {
		t.Errorf("got %d (swapped %v), expected 2 (swapped false)", fresh, swapped)
	}
}

func TestInt32FetchAdd(t *testing.T) {
	var a Int32
	a.Store(5, Relaxed)
	old := a.FetchAdd(3, Relaxed)
	if old != 5 {
		t.Errorf("FetchAdd returned %d, expected 5", old)
	}
	if got := a.Load(Relaxed); got != 8 {
		t.Errorf("value after FetchAdd is %d, expected 8", got)
	}
}

func TestInt32FetchOr(t *testing.T) {
	var a Int32
	a.Store(0b0100, Relaxed)
	old := a.FetchOr(0b0011, Relaxed)
	if old != 0b0100 {
		t.Errorf("FetchOr returned %d, expected 4", old)
	}
	if got := a.Load(Relaxed); got != 0b0111 {
		t.Errorf("value after FetchOr is %d, expected 7", got)
	}
	// Already-set bits: FetchOr must still report the prior value.
	old = a.FetchOr(0b0001, Relaxed)
	if old != 0b0111 {
		t.Errorf("FetchOr on no-op mask returned %d, expected 7", old)
	}
}

func TestInt32Exchange(t *testing.T) {
	var a Int32
	a.Store(1, Relaxed)
	old := a.Exchange(2, AcqRel)
	if old != 1 {
		t.Errorf("Exchange returned %d, expected 1", old)
	}
	if got := a.Load(Relaxed); got != 2 {
		t.Errorf("value after Exchange is %d, expected 2", got)
	}
}

func TestBool(t *testing.T) {
	var b Bool
	if b.Load(Relaxed) {
		t.Error("zero value Bool should load false")
	}
	if old := b.Exchange(true, Acquire); old {
		t.Error("Exchange on zero value should return false")
	}
	if !b.Load(Relaxed) {
		t.Error("expected true after Exchange(true)")
	}
	b.Store(false, Release)
	if b.Load(Relaxed) {
		t.Error("expected false after Store(false)")
	}
}
