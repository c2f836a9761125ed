// Package signals ties terminal control signals and child termination
// notices to the shell's main loop.
//
// The handler goroutine only touches two atomics and kill(2). Reaping is
// deferred to the main loop, which calls TakePendingReap and Drain before
// each read.
package signals

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/josephlewis42/gosh/core/jobs"
	"golang.org/x/sys/unix"
)

// Reaped describes a child collected by Drain.
type Reaped struct {
	PID    int
	JobID  int // 0 if the pid wasn't a registered job
	Status unix.WaitStatus
}

// Coordinator owns the pending reap flag and the foreground slot.
type Coordinator struct {
	pendingReap atomic.Bool
	foreground  atomic.Int64

	mu      sync.Mutex
	signals chan os.Signal
	done    chan struct{}
}

// New creates a Coordinator that isn't receiving signals yet.
func New() *Coordinator {
	return &Coordinator{}
}

// Install starts receiving SIGCHLD, SIGINT, SIGTSTP and SIGQUIT. Calling it
// twice is a no-op.
func (c *Coordinator) Install() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.signals != nil {
		return
	}

	c.signals = make(chan os.Signal, 16)
	c.done = make(chan struct{})
	signal.Notify(c.signals, unix.SIGCHLD, unix.SIGINT, unix.SIGTSTP, unix.SIGQUIT)

	go c.handle(c.signals, c.done)
}

// Stop unregisters the handlers and waits for the handler goroutine to exit.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.signals == nil {
		return
	}

	signal.Stop(c.signals)
	close(c.signals)
	<-c.done
	c.signals = nil
	c.done = nil
}

func (c *Coordinator) handle(signals <-chan os.Signal, done chan<- struct{}) {
	defer close(done)

	for sig := range signals {
		switch sig {
		case unix.SIGCHLD:
			c.NotifyChildExited()
		default:
			c.Forward(sig.(syscall.Signal))
		}
	}
}

// NotifyChildExited marks that at least one child changed state.
func (c *Coordinator) NotifyChildExited() {
	c.pendingReap.Store(true)
}

// TakePendingReap clears the pending reap flag and reports whether it was
// set.
func (c *Coordinator) TakePendingReap() bool {
	return c.pendingReap.Swap(false)
}

// SetForeground records pid as the process terminal signals go to.
func (c *Coordinator) SetForeground(pid int) {
	c.foreground.Store(int64(pid))
}

// ClearForeground empties the foreground slot.
func (c *Coordinator) ClearForeground() {
	c.foreground.Store(0)
}

// Foreground returns the foreground pid or 0 if there is none.
func (c *Coordinator) Foreground() int {
	return int(c.foreground.Load())
}

// Forward sends sig to the foreground process, if any. It reports whether a
// signal was sent.
func (c *Coordinator) Forward(sig syscall.Signal) bool {
	pid := c.Foreground()
	if pid <= 0 {
		return false
	}

	// The process may already be gone, the wait in the main loop notices.
	return unix.Kill(pid, sig) == nil
}

// Drain collects every terminated child without blocking and removes each
// from the registry.
func (c *Coordinator) Drain(registry *jobs.Registry) []Reaped {
	var out []Reaped
	for {
		var status unix.WaitStatus
		pid, err := unix.Wait4(-1, &status, unix.WNOHANG, nil)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil, pid <= 0:
			return out
		}

		reaped := Reaped{PID: pid, Status: status}
		if registry != nil {
			if job, ok := registry.RemoveByPID(pid); ok {
				reaped.JobID = job.ID
			}
		}
		out = append(out, reaped)
	}
}
