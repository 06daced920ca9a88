package luckdraw

import (
	"sort"
	"sync"
	"time"
)

// Scheduler is the timer source a session runs on. The engine never calls
// time.AfterFunc directly; everything it schedules goes through a Scheduler
// so that tests (and replays) can substitute a ManualScheduler and advance
// virtual time instantly.
type Scheduler interface {
	Now() time.Time
	// AfterFunc schedules fn to run once after d. The returned Timer revokes
	// the callback; every timer the engine schedules is revocable.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a revocable scheduled callback.
type Timer interface {
	// Stop revokes the callback. It reports false if the callback has already
	// fired or been stopped.
	Stop() bool
}

type wallScheduler struct{}

type wallTimer struct{ t *time.Timer }

func (w wallTimer) Stop() bool { return w.t.Stop() }

func (wallScheduler) Now() time.Time { return time.Now() }

func (wallScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return wallTimer{t: time.AfterFunc(d, fn)}
}

// WallClock returns the real-time Scheduler backed by the runtime timers.
func WallClock() Scheduler { return wallScheduler{} }

// ManualScheduler is a virtual-time Scheduler for deterministic tests. Nothing
// fires until Advance is called; Advance runs due callbacks inline, in due
// order (insertion order breaks ties), so a whole animation can be driven
// through in microseconds.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	due     time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewManualScheduler returns a ManualScheduler starting at an arbitrary fixed
// instant.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{now: time.Unix(0, 0).UTC()}
}

func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d < 0 {
		d = 0
	}
	t := &manualTimer{s: s, due: s.now.Add(d), seq: s.seq, fn: fn}
	s.seq++
	s.pending = append(s.pending, t)
	return t
}

// Pending returns the number of live (not fired, not stopped) timers. Useful
// for asserting that cancellation left nothing scheduled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, firing every timer that comes due
// along the way. Callbacks run with the scheduler's clock set to their due
// time and may schedule further timers; those fire too if they fall within
// the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	for {
		t := s.nextDueLocked(target)
		if t == nil {
			break
		}
		t.fired = true
		if t.due.After(s.now) {
			s.now = t.due
		}
		fn := t.fn
		// Run outside the lock: callbacks schedule and stop timers.
		s.mu.Unlock()
		fn()
		s.mu.Lock()
	}
	s.now = target
	s.compactLocked()
	s.mu.Unlock()
}

// nextDueLocked returns the earliest live timer due at or before target.
func (s *ManualScheduler) nextDueLocked(target time.Time) *manualTimer {
	var best *manualTimer
	for _, t := range s.pending {
		if t.fired || t.stopped || t.due.After(target) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *ManualScheduler) compactLocked() {
	live := s.pending[:0]
	for _, t := range s.pending {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	s.pending = live
	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].due.Before(s.pending[j].due)
	})
}
