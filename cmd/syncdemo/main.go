// Command syncdemo is the minimal demonstration program from the
// specification: four goroutines each perform one million mutex-protected
// increments of a shared counter, and the program asserts the final count
// equals threads*iterations. It exists outside the synchronization core on
// purpose — build-system backend selection, logging, and a demo harness are
// all explicitly out of the core's scope.
package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/tavianator/futex/futex"
	"github.com/tavianator/futex/mutex"
)

const (
	threads = 4
	iters   = 1000000
)

func main() {
	futex.Init()

	var m mutex.Mutex
	var count int

	var wg sync.WaitGroup
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iters; j++ {
				m.Lock()
				count++
				m.Unlock()
			}
		}()
	}
	wg.Wait()

	if count != threads*iters {
		fmt.Fprintf(os.Stderr, "program failed: count = %d, want %d\n", count, threads*iters)
		os.Exit(1)
	}
}
