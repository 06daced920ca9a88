package luckdraw

import (
	"fmt"
	"sync"
	"time"

	"github.com/tanema/gween/ease"
)

// Phase identifies where a draw is in its animation lifecycle.
type Phase uint8

const (
	PhaseIdle         Phase = iota // no draw running
	PhasePriming                   // countdown before the highlight starts moving
	PhaseActive                    // highlight moving at near-full speed
	PhaseDecelerating              // delays stretching out toward the final pick
	PhaseFinished                  // all slots settled on their winners
)

var phaseNames = [...]string{"idle", "priming", "active", "decelerating", "finished"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// activePortion is the fraction of the ramp reported as Active; the remainder
// is Decelerating. The boundary only affects phase reporting; the delay
// curve is one continuous ease-out either side of it.
const activePortion = 0.4

// ClockConfig holds the pacing parameters for one draw. Mode.Clock returns
// the stock table entry for each animation metaphor.
type ClockConfig struct {
	// InitialTick is the delay between highlight advances at full speed.
	InitialTick time.Duration
	// FinalTick is the delay as the highlight comes to rest.
	FinalTick time.Duration
	// Ramp is the window over which the delay eases from InitialTick to
	// FinalTick. A slot's terminal tick fires once its elapsed time crosses
	// the ramp.
	Ramp time.Duration
	// Priming is the countdown between Start and the first highlight.
	Priming time.Duration
	// Stagger delays each winner slot's sequence after the previous one.
	Stagger time.Duration
	// ColorInterval is the palette advance period.
	ColorInterval time.Duration
	// Palette cycles behind the highlight; empty means plain white.
	Palette []Color
}

func (c ClockConfig) validate() error {
	if c.InitialTick <= 0 {
		return &ConfigError{Field: "InitialTick", Reason: "must be positive"}
	}
	if c.FinalTick < c.InitialTick {
		return &ConfigError{Field: "FinalTick", Reason: "must be at least InitialTick"}
	}
	if c.Ramp <= 0 {
		return &ConfigError{Field: "Ramp", Reason: "must be positive"}
	}
	if c.Priming < 0 {
		return &ConfigError{Field: "Priming", Reason: "must not be negative"}
	}
	if c.Stagger < 0 {
		return &ConfigError{Field: "Stagger", Reason: "must not be negative"}
	}
	if c.ColorInterval <= 0 {
		return &ConfigError{Field: "ColorInterval", Reason: "must be positive"}
	}
	return nil
}

// delayAt returns the inter-tick delay after elapsed time into the ramp:
// delay = initial + (final-initial) * (1 - (1-progress)^3). Fast then slow.
func (c ClockConfig) delayAt(elapsed time.Duration) time.Duration {
	t := elapsed
	if t > c.Ramp {
		t = c.Ramp
	}
	ms := ease.OutCubic(
		float32(t)/float32(time.Millisecond),
		float32(c.InitialTick)/float32(time.Millisecond),
		float32(c.FinalTick-c.InitialTick)/float32(time.Millisecond),
		float32(c.Ramp)/float32(time.Millisecond),
	)
	return time.Duration(float64(ms) * float64(time.Millisecond))
}

// PhaseSnapshot is a read-only view of a running clock, shaped for hosts that
// poll instead of subscribing to ticks.
type PhaseSnapshot struct {
	Phase              Phase
	Elapsed            time.Duration // since Start
	CountdownRemaining time.Duration // meaningful in PhasePriming
	Delay              time.Duration // current inter-tick delay of the leading slot
	SlotsDone          int
	Slots              int
	Progress           float64 // mean ramp progress across slots, in [0, 1]
}

// PhaseClock runs the timed highlight sequences for one draw: one sequence
// per winner slot, staggered, each advancing on its own easing ramp and
// forced onto its predetermined winner at the terminal tick. The clock never
// decides winners; it animates toward indices fixed before Start, so the
// visible outcome cannot diverge from the logical one.
//
// Callbacks fire from scheduler callbacks. Set them before Start; hosts that
// need their own event loop should marshal from the callback.
type PhaseClock struct {
	cfg        ClockConfig
	sched      Scheduler
	rng        RandomSource
	tokenCount int
	winners    []int

	// RetireWinners stops the roaming highlight from landing on tokens whose
	// slot has already settled. Leave false when repeats are allowed, so a
	// token that wins twice can still be highlighted for its second slot.
	RetireWinners bool

	// OnTick fires on every highlight advance, including the terminal one.
	OnTick func(slot, tokenIndex int, color Color)
	// OnSlotDone fires when a slot settles on its winner's token index.
	OnSlotDone func(slot, tokenIndex int)
	// OnFinished fires once, after every slot has settled.
	OnFinished func()

	mu      sync.Mutex
	phase   Phase
	started time.Time
	primer  Timer
	slots   []slotRun
	done    int
}

type slotRun struct {
	timer    Timer
	elapsed  time.Duration
	finished bool
}

// NewPhaseClock validates cfg and the winner indices up front; bad pacing
// parameters fail here, before any timer exists, never as NaN mid-animation.
// winners holds the token index each slot must settle on.
func NewPhaseClock(cfg ClockConfig, tokenCount int, winners []int, rng RandomSource, sched Scheduler) (*PhaseClock, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if tokenCount < 1 {
		return nil, &ConfigError{Field: "tokenCount", Reason: "must be at least 1"}
	}
	if len(winners) == 0 {
		return nil, &ConfigError{Field: "winners", Reason: "at least one slot required"}
	}
	for i, w := range winners {
		if w < 0 || w >= tokenCount {
			return nil, &ConfigError{Field: "winners", Reason: fmt.Sprintf("slot %d index %d out of range", i, w)}
		}
	}
	if rng == nil {
		rng = DefaultSource()
	}
	if sched == nil {
		sched = WallClock()
	}
	return &PhaseClock{
		cfg:        cfg,
		sched:      sched,
		rng:        rng,
		tokenCount: tokenCount,
		winners:    append([]int(nil), winners...),
		phase:      PhaseIdle,
		slots:      make([]slotRun, len(winners)),
	}, nil
}

// Start begins the priming countdown. It may only be called once per clock;
// a finished or cancelled clock is torn down, not restarted.
func (c *PhaseClock) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseIdle {
		return &ConfigError{Field: "phase", Reason: "clock already started; build a new one per draw"}
	}
	if c.started != (time.Time{}) {
		return &ConfigError{Field: "phase", Reason: "cancelled clock cannot be restarted"}
	}
	c.phase = PhasePriming
	c.started = c.sched.Now()
	c.primer = c.sched.AfterFunc(c.cfg.Priming, c.activate)
	return nil
}

// Cancel revokes every scheduled tick and returns the clock to Idle. It is
// normal control flow, not an error; no further callbacks fire. Cancelling a
// finished clock is a no-op.
func (c *PhaseClock) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseIdle || c.phase == PhaseFinished {
		return
	}
	if c.primer != nil {
		c.primer.Stop()
		c.primer = nil
	}
	for i := range c.slots {
		if c.slots[i].timer != nil {
			c.slots[i].timer.Stop()
			c.slots[i].timer = nil
		}
	}
	c.phase = PhaseIdle
}

// Phase returns the current phase.
func (c *PhaseClock) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// SlotsDone reports how many winner slots have settled, out of the total.
func (c *PhaseClock) SlotsDone() (done, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done, len(c.slots)
}

// Snapshot returns a point-in-time view of the clock.
func (c *PhaseClock) Snapshot() PhaseSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := PhaseSnapshot{
		Phase:     c.phase,
		SlotsDone: c.done,
		Slots:     len(c.slots),
		Progress:  c.progressLocked(),
	}
	if c.started != (time.Time{}) && c.phase != PhaseIdle {
		s.Elapsed = c.sched.Now().Sub(c.started)
	}
	if c.phase == PhasePriming {
		if rem := c.cfg.Priming - s.Elapsed; rem > 0 {
			s.CountdownRemaining = rem
		}
	}
	for i := range c.slots {
		if !c.slots[i].finished {
			s.Delay = c.cfg.delayAt(c.slots[i].elapsed)
			break
		}
	}
	return s
}

func (c *PhaseClock) progressLocked() float64 {
	if len(c.slots) == 0 {
		return 0
	}
	sum := 0.0
	for i := range c.slots {
		p := float64(c.slots[i].elapsed) / float64(c.cfg.Ramp)
		if c.slots[i].finished || p > 1 {
			p = 1
		}
		sum += p
	}
	return sum / float64(len(c.slots))
}

// activate moves Priming -> Active and schedules each slot's first tick,
// staggered by the configured delay.
func (c *PhaseClock) activate() {
	c.mu.Lock()
	if c.phase != PhasePriming {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseActive
	c.primer = nil
	for k := range c.slots {
		slot := k
		c.slots[k].timer = c.sched.AfterFunc(time.Duration(k)*c.cfg.Stagger, func() { c.step(slot) })
	}
	c.mu.Unlock()
}

// step advances one slot's highlight by one tick. Non-terminal ticks sample a
// roaming index and reschedule; the terminal tick is forced to the slot's
// precomputed winner, never re-rolled.
func (c *PhaseClock) step(slot int) {
	c.mu.Lock()
	if c.phase != PhaseActive && c.phase != PhaseDecelerating {
		c.mu.Unlock()
		return
	}
	run := &c.slots[slot]
	if run.finished {
		c.mu.Unlock()
		return
	}

	color := ColorAt(c.cfg.Palette, c.cfg.ColorInterval, c.sched.Now().Sub(c.started))

	if run.elapsed >= c.cfg.Ramp {
		// Terminal tick: land on the winner computed before the animation began.
		index := c.winners[slot]
		run.finished = true
		run.timer = nil
		c.done++
		finished := c.done == len(c.slots)
		if finished {
			c.phase = PhaseFinished
		}
		onTick, onSlotDone, onFinished := c.OnTick, c.OnSlotDone, c.OnFinished
		c.mu.Unlock()

		if onTick != nil {
			onTick(slot, index, color)
		}
		if onSlotDone != nil {
			onSlotDone(slot, index)
		}
		if finished && onFinished != nil {
			onFinished()
		}
		return
	}

	index := c.roamLocked(slot)
	if c.phase == PhaseActive && float64(run.elapsed) >= activePortion*float64(c.cfg.Ramp) {
		c.phase = PhaseDecelerating
	}
	delay := c.cfg.delayAt(run.elapsed)
	run.elapsed += delay
	run.timer = c.sched.AfterFunc(delay, func() { c.step(slot) })
	onTick := c.OnTick
	c.mu.Unlock()

	if onTick != nil {
		onTick(slot, index, color)
	}
}

// roamLocked samples the next highlight index uniformly over tokens that are
// still in play. With RetireWinners set, tokens already claimed by a settled
// slot are skipped so the roaming light never teases a spent winner.
func (c *PhaseClock) roamLocked(slot int) int {
	if !c.RetireWinners {
		return c.rng.Intn(c.tokenCount)
	}
	retired := make(map[int]bool, c.done)
	for k := range c.slots {
		if c.slots[k].finished {
			retired[c.winners[k]] = true
		}
	}
	eligible := make([]int, 0, c.tokenCount)
	for i := 0; i < c.tokenCount; i++ {
		if !retired[i] {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return c.winners[slot]
	}
	return eligible[c.rng.Intn(len(eligible))]
}
