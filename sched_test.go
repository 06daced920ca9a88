package luckdraw

import (
	"testing"
	"time"
)

func TestManualSchedulerFiresInDueOrder(t *testing.T) {
	s := NewManualScheduler()
	var order []string
	s.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	s.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	s.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })

	s.Advance(15 * time.Millisecond)
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("after 15ms: order = %v, want [a]", order)
	}
	s.Advance(50 * time.Millisecond)
	if len(order) != 3 || order[1] != "b" || order[2] != "c" {
		t.Fatalf("after 65ms: order = %v, want [a b c]", order)
	}
}

func TestManualSchedulerStop(t *testing.T) {
	s := NewManualScheduler()
	fired := false
	timer := s.AfterFunc(10*time.Millisecond, func() { fired = true })
	if !timer.Stop() {
		t.Fatal("first Stop should report true")
	}
	if timer.Stop() {
		t.Fatal("second Stop should report false")
	}
	s.Advance(time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}
	if s.Pending() != 0 {
		t.Fatalf("pending = %d, want 0", s.Pending())
	}
}

func TestManualSchedulerChainedCallbacks(t *testing.T) {
	// A callback that schedules another timer within the Advance window: the
	// chained callback fires in the same Advance, at its own due time.
	s := NewManualScheduler()
	var at []time.Time
	s.AfterFunc(10*time.Millisecond, func() {
		at = append(at, s.Now())
		s.AfterFunc(10*time.Millisecond, func() {
			at = append(at, s.Now())
		})
	})
	s.Advance(25 * time.Millisecond)
	if len(at) != 2 {
		t.Fatalf("got %d firings, want 2", len(at))
	}
	if gap := at[1].Sub(at[0]); gap != 10*time.Millisecond {
		t.Fatalf("chained gap = %v, want 10ms", gap)
	}
}

func TestManualSchedulerClockAdvances(t *testing.T) {
	s := NewManualScheduler()
	start := s.Now()
	s.Advance(3 * time.Second)
	if got := s.Now().Sub(start); got != 3*time.Second {
		t.Fatalf("clock advanced %v, want 3s", got)
	}
}

func TestWallSchedulerFires(t *testing.T) {
	s := WallClock()
	done := make(chan struct{})
	s.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wall timer did not fire")
	}
}
