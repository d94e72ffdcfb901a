// Package leaktest checks that the display loop, the SSE hub and the other
// long-lived goroutines in this module stop when they are told to.
package leaktest

import (
	"runtime"
	"strings"
	"testing"
	"time"
)

// ModulePath marks the frames that belong to this module in a stack dump
const ModulePath = "github.com/osse101/WeddingBot_Go/"

// DefaultSettleTimeout bounds how long Check waits for stopping goroutines
const DefaultSettleTimeout = 2 * time.Second

// GoroutineChecker compares goroutine counts before and after a test body.
// Loops here exit asynchronously after Stop or a cancelled context, so the
// check polls until the count settles instead of sampling once.
type GoroutineChecker struct {
	before  int
	timeout time.Duration
	t       testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{
		before:  runtime.NumGoroutine(),
		timeout: DefaultSettleTimeout,
		t:       t,
	}
}

// WithTimeout changes how long Check waits
func (g *GoroutineChecker) WithTimeout(d time.Duration) *GoroutineChecker {
	g.timeout = d
	return g
}

// Check fails the test when more than tolerance goroutines outlive the body.
// The failure lists the module goroutines still running.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after, ok := waitFor(g.before+tolerance, g.timeout)
	if ok {
		return
	}
	g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d\n%s",
		g.before, after, tolerance, strings.Join(ModuleGoroutines(), "\n\n"))
}

// CheckNoGoroutineLeak runs fn and requires every goroutine it started to exit
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines waits until at most target goroutines are running
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()
	if current, ok := waitFor(target, timeout); !ok {
		t.Errorf("timeout waiting for goroutines: current=%d target=%d", current, target)
	}
}

// ModuleGoroutines returns the stacks of running goroutines that have a
// frame inside this module, excluding the caller's own goroutine.
func ModuleGoroutines() []string {
	buf := make([]byte, 1<<16)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, 2*len(buf))
	}

	var out []string
	for i, stack := range strings.Split(string(buf), "\n\n") {
		if i == 0 {
			continue
		}
		if strings.Contains(stack, ModulePath) {
			out = append(out, stack)
		}
	}
	return out
}

func waitFor(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(10 * time.Millisecond)
	}
}
