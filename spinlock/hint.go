package spinlock

import _ "unsafe" // for go:linkname

// Hint emits the architecture's spin-wait hint (PAUSE on amd64, YIELD on
// arm64, equivalent elsewhere) between busy-wait attempts, the same
// low-power backoff spin.h gets from
// __builtin_ia32_pause()/__builtin_arm_yield(). Go does not expose that
// instruction directly, so this links against the runtime's own spin-wait
// primitive (sync.Mutex uses the identical instruction during its own
// active-spinning phase). Exported so mutex's and cond's own spin phases
// can use the same hint the reference core's mutex_lock() and cond_wait()
// call directly, independent of the spinlock type itself.
//
//go:linkname Hint sync.runtime_doSpin
func Hint()
