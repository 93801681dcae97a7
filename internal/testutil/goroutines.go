package testutil

import (
	"runtime"
	"testing"
	"time"
)

// GoroutineBaseline records the goroutine count when a test starts
type GoroutineBaseline struct {
	baseline int
}

// NewGoroutineBaseline snapshots runtime.NumGoroutine
func NewGoroutineBaseline() GoroutineBaseline {
	return GoroutineBaseline{baseline: runtime.NumGoroutine()}
}

// AssertNoLeak fails t if more goroutines are running than at the baseline
// once within is over. Workers get the whole window to wind down.
func (g GoroutineBaseline) AssertNoLeak(t *testing.T, within time.Duration) {
	t.Helper()
	deadline := time.Now().Add(within)
	current := runtime.NumGoroutine()
	for current > g.baseline && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
		current = runtime.NumGoroutine()
	}
	if current > g.baseline {
		t.Errorf("goroutine leak: %d running, baseline %d", current, g.baseline)
	}
}
