package game

import (
	"testing"
	"time"
)

func TestScheduler_FiresInDeadlineOrder(t *testing.T) {
	clock := NewManualClock(harnessEpoch)
	s := NewScheduler(clock)
	var got []string
	s.After(300*time.Millisecond, func() { got = append(got, "c") })
	s.After(100*time.Millisecond, func() { got = append(got, "a") })
	s.After(100*time.Millisecond, func() { got = append(got, "b") })

	if n := s.RunDue(); n != 0 {
		t.Fatalf("nothing is due yet, ran %d", n)
	}
	clock.Advance(100 * time.Millisecond)
	if n := s.RunDue(); n != 2 {
		t.Fatalf("expected 2 due, ran %d", n)
	}
	clock.Advance(time.Second)
	s.RunDue()
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestScheduler_StopCancels(t *testing.T) {
	clock := NewManualClock(harnessEpoch)
	s := NewScheduler(clock)
	fired := false
	tm := s.After(time.Millisecond, func() { fired = true })
	if !tm.Active() || s.Pending() != 1 {
		t.Fatal("timer should be pending")
	}
	if !tm.Stop() {
		t.Fatal("first Stop should report true")
	}
	if tm.Stop() {
		t.Fatal("second Stop should report false")
	}
	clock.Advance(time.Second)
	s.RunDue()
	if fired {
		t.Fatal("stopped timer fired")
	}
	if s.Pending() != 0 {
		t.Fatalf("expected nothing pending, got %d", s.Pending())
	}
	var nilTimer *Timer
	if nilTimer.Stop() || nilTimer.Active() {
		t.Fatal("nil timer should be inert")
	}
}

func TestScheduler_RearmReplaces(t *testing.T) {
	clock := NewManualClock(harnessEpoch)
	s := NewScheduler(clock)
	count := 0
	tm := s.After(time.Second, func() { count++ })
	tm = s.Rearm(tm, time.Second, func() { count += 10 })
	tm = s.Rearm(tm, time.Second, func() { count += 100 })
	if s.Pending() != 1 {
		t.Fatalf("rearm should not stack, pending=%d", s.Pending())
	}
	clock.Advance(time.Second)
	s.RunDue()
	if count != 100 || tm.Active() {
		t.Fatalf("only the last callback should run, count=%d", count)
	}
}

func TestScheduler_CallbackMaySchedule(t *testing.T) {
	clock := NewManualClock(harnessEpoch)
	s := NewScheduler(clock)
	ran := 0
	s.After(0, func() {
		ran++
		s.After(0, func() { ran++ })
	})
	s.RunDue()
	if ran != 2 {
		t.Fatalf("a zero-delay timer scheduled from a callback runs in the same pass, ran=%d", ran)
	}
}

func TestScheduler_Clear(t *testing.T) {
	clock := NewManualClock(harnessEpoch)
	s := NewScheduler(clock)
	tm := s.After(time.Millisecond, func() { t.Fatal("cleared timer fired") })
	s.After(time.Hour, func() {})
	s.Clear()
	if tm.Active() || s.Pending() != 0 {
		t.Fatal("Clear should stop everything")
	}
	clock.Advance(2 * time.Hour)
	s.RunDue()
}
