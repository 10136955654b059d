package game

import (
	"time"

	"github.com/zyedidia/generic/heap"
)

// Clock supplies wall-clock time to the scheduler.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real monotonic clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a controllable clock for tests and headless runs.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current mocked time.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Timer is a handle to a one-shot deferred callback.
type Timer struct {
	due     time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// Stop cancels the timer. It returns false if the timer already fired or was
// stopped. Stopping a nil timer is allowed.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Active reports whether the timer is still waiting to fire.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped && !t.fired
}

// Scheduler runs deferred callbacks on the simulation goroutine. Callbacks
// never run concurrently with the tick; RunDue is called at the top of every
// Sim.Update, paused or not.
type Scheduler struct {
	clock Clock
	queue *heap.Heap[*Timer]
	seq   uint64
}

// NewScheduler creates a scheduler reading time from clock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		clock: clock,
		queue: heap.New(func(a, b *Timer) bool {
			if a.due.Equal(b.due) {
				return a.seq < b.seq
			}
			return a.due.Before(b.due)
		}),
	}
}

// Now returns the scheduler clock's current time.
func (s *Scheduler) Now() time.Time { return s.clock.Now() }

// After schedules fn to run once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	s.seq++
	t := &Timer{due: s.clock.Now().Add(d), seq: s.seq, fn: fn}
	s.queue.Push(t)
	return t
}

// Rearm stops prev and schedules a replacement, so a logical timer never
// stacks.
func (s *Scheduler) Rearm(prev *Timer, d time.Duration, fn func()) *Timer {
	prev.Stop()
	return s.After(d, fn)
}

// RunDue fires every live timer whose deadline has passed, in deadline order,
// and returns how many ran.
func (s *Scheduler) RunDue() int {
	now := s.clock.Now()
	ran := 0
	for {
		t, ok := s.queue.Peek()
		if !ok || t.due.After(now) {
			return ran
		}
		s.queue.Pop()
		if t.stopped {
			continue
		}
		t.fired = true
		t.fn()
		ran++
	}
}

// Pending counts timers that have neither fired nor been stopped.
func (s *Scheduler) Pending() int {
	n := 0
	// The heap exposes no iterator; drain and rebuild.
	var keep []*Timer
	for s.queue.Size() > 0 {
		t, _ := s.queue.Pop()
		if t.stopped {
			continue
		}
		keep = append(keep, t)
		n++
	}
	for _, t := range keep {
		s.queue.Push(t)
	}
	return n
}

// Clear stops every pending timer.
func (s *Scheduler) Clear() {
	for s.queue.Size() > 0 {
		t, _ := s.queue.Pop()
		t.stopped = true
	}
}
