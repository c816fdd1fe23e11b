package futex

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func init() {
	Init()
}

func TestWaitReturnsImmediatelyOnMismatch(t *testing.T) {
	var v int32 = 1
	done := make(chan struct{})
	go func() {
		Wait(&v, 0) // v is already 1, not 0: must return without blocking
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked despite a value mismatch")
	}
}

func TestWakeWakesWaiter(t *testing.T) {
	var v int32
	woke := make(chan struct{})
	go func() {
		Wait(&v, 0)
		close(woke)
	}()

	// Give the waiter a chance to link in before we wake it.
	time.Sleep(20 * time.Millisecond)

	atomic.StoreInt32(&v, 1)
	for Wake(&v, 1) == 0 {
		time.Sleep(time.Millisecond)
	}

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("Wait never returned after Wake")
	}
}

func TestWakeLimitsWakeCount(t *testing.T) {
	var v int32
	const waiters = 8
	var started sync.WaitGroup
	started.Add(waiters)
	woke := make(chan int, waiters)

	for i := 0; i < waiters; i++ {
		go func() {
			started.Done()
			Wait(&v, 0)
			woke <- 1
		}()
	}
	started.Wait()
	time.Sleep(50 * time.Millisecond)

	n := Wake(&v, 3)
	if n != 3 {
		t.Fatalf("Wake(..., 3) reported %d woken, want 3", n)
	}

	timeout := time.After(200 * time.Millisecond)
	woken := 0
loop:
	for {
		select {
		case <-woke:
			woken++
		case <-timeout:
			break loop
		}
	}
	if woken != 3 {
		t.Fatalf("observed %d waiters return, want exactly 3", woken)
	}
}

func TestRequeueMovesRemainingWaiters(t *testing.T) {
	var src, dst int32
	const waiters = 6
	var started sync.WaitGroup
	started.Add(waiters)
	returned := make(chan struct{}, waiters)

	for i := 0; i < waiters; i++ {
		go func() {
			started.Done()
			Wait(&src, 0)
			returned <- struct{}{}
		}()
	}
	started.Wait()
	time.Sleep(50 * time.Millisecond)

	woken := Requeue(&src, 1, &dst)
	if woken != 1 {
		t.Fatalf("Requeue woke %d, want 1", woken)
	}

	select {
	case <-returned:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("requeued wake did not return")
	}

	// The rest are now parked on dst, not src: waking src must not affect them.
	Wake(&src, waiters)
	select {
	case <-returned:
		t.Fatal("a waiter returned without being requeued-and-woken")
	case <-time.After(50 * time.Millisecond):
	}

	for Wake(&dst, waiters) == 0 {
		time.Sleep(time.Millisecond)
	}

	for i := 0; i < waiters-1; i++ {
		select {
		case <-returned:
		case <-time.After(time.Second):
			t.Fatalf("requeued waiter %d never returned", i)
		}
	}
}
