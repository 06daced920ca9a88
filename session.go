package luckdraw

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// defaultResizeDebounce coalesces bursts of viewport changes into a single
// layout recomputation.
const defaultResizeDebounce = 120 * time.Millisecond

// Callbacks is the engine's outbound surface. All fields are optional.
// Callbacks fire from scheduler callbacks (timer goroutines under the wall
// clock); hosts with their own event loop should marshal from them rather
// than block.
type Callbacks struct {
	// OnHighlight fires on every highlight advance of every slot.
	OnHighlight func(slot, tokenIndex int, color Color)
	// OnSlotDone fires when one winner slot settles.
	OnSlotDone func(slot int, winner Item)
	// OnProgress reports the fraction of winner slots settled, in [0, 1].
	OnProgress func(fraction float64)
	// OnPositionsChanged delivers fresh token positions: once at Start and
	// once per debounced resize.
	OnPositionsChanged func(positions []TokenPosition, spec LayoutSpec)
	// OnFinished delivers the draw result after every slot has settled. It
	// never fires for a cancelled session.
	OnFinished func(DrawResult)
	// OnError reports runtime invariant violations (e.g. a layout that failed
	// its own bounds check). Errors share the callback channel with normal
	// events but arrive only here, never through OnFinished.
	OnError func(error)
}

// Options configures an Orchestrator. Zero values select the wall clock, the
// crypto-seeded RandomSource, the default budget, and the default debounce.
type Options struct {
	Scheduler      Scheduler
	Random         RandomSource
	Budget         PerformanceBudget
	ResizeDebounce time.Duration
}

// Orchestrator composes Selector, PhaseClock, and the layout engine into the
// start/cancel/resize contract the presentation layer consumes. It runs at
// most one live session; starting a new draw tears the previous one down
// completely; controllers are never reused with stale timers.
type Orchestrator struct {
	sched    Scheduler
	rng      RandomSource
	budget   PerformanceBudget
	debounce time.Duration

	mu      sync.Mutex
	current *SessionHandle
}

// NewOrchestrator builds an Orchestrator from opts.
func NewOrchestrator(opts Options) *Orchestrator {
	o := &Orchestrator{
		sched:    opts.Scheduler,
		rng:      opts.Random,
		budget:   opts.Budget,
		debounce: opts.ResizeDebounce,
	}
	if o.sched == nil {
		o.sched = WallClock()
	}
	if o.rng == nil {
		o.rng = DefaultSource()
	}
	if o.budget == (PerformanceBudget{}) {
		o.budget = DefaultBudget()
	}
	if o.debounce <= 0 {
		o.debounce = defaultResizeDebounce
	}
	return o
}

// SessionHandle identifies one live draw. All methods are safe for concurrent
// use; the session's phase state is owned here and exposed only as snapshots.
type SessionHandle struct {
	ID uuid.UUID

	orc    *Orchestrator
	items  []Item
	result DrawResult
	clock  *PhaseClock
	cb     Callbacks

	mu          sync.Mutex
	viewport    Viewport
	margins     Insets
	spec        LayoutSpec
	resizeTimer Timer
	pending     Viewport
	cancelled   bool
	finished    bool
}

// Start validates the request, fixes the draw outcome, and begins the
// animation. The full DrawResult is computed before any timer is scheduled,
// which is the engine's core correctness guarantee: the animation can only
// ever land on what was already selected.
//
// Any previously started session is cancelled first; "draw again" is exactly
// a fresh Start.
func (o *Orchestrator) Start(mode Mode, req DrawRequest, viewport Viewport, margins Insets, cb Callbacks) (*SessionHandle, error) {
	o.mu.Lock()
	prev := o.current
	o.mu.Unlock()
	if prev != nil {
		prev.Cancel()
	}

	if len(req.Items) > o.budget.maxTokens() {
		return nil, &ConfigError{
			Field:  "Items",
			Reason: fmt.Sprintf("%d tokens exceeds the budget of %d", len(req.Items), o.budget.maxTokens()),
		}
	}

	// Outcome first, animation second.
	result, err := Select(req, o.rng)
	if err != nil {
		return nil, err
	}

	indexByID := make(map[string]int, len(req.Items))
	for i, it := range req.Items {
		if _, dup := indexByID[it.ID]; !dup {
			indexByID[it.ID] = i
		}
	}
	winnerIndices := make([]int, len(result.Winners))
	for k, w := range result.Winners {
		winnerIndices[k] = indexByID[w.ID]
	}

	cfg := o.budget.apply(mode.Clock())
	clock, err := NewPhaseClock(cfg, len(req.Items), winnerIndices, o.rng, o.sched)
	if err != nil {
		return nil, err
	}
	clock.RetireWinners = !req.AllowRepeat

	h := &SessionHandle{
		ID:       uuid.New(),
		orc:      o,
		items:    req.Items,
		result:   result,
		clock:    clock,
		cb:       cb,
		viewport: viewport,
		margins:  margins,
	}

	clock.OnTick = func(slot, tokenIndex int, color Color) {
		if h.live() && cb.OnHighlight != nil {
			cb.OnHighlight(slot, tokenIndex, color)
		}
	}
	clock.OnSlotDone = func(slot, tokenIndex int) {
		if !h.live() {
			return
		}
		if cb.OnSlotDone != nil {
			cb.OnSlotDone(slot, h.items[tokenIndex])
		}
		if cb.OnProgress != nil {
			done, total := clock.SlotsDone()
			cb.OnProgress(float64(done) / float64(total))
		}
	}
	clock.OnFinished = func() {
		h.mu.Lock()
		if h.cancelled {
			h.mu.Unlock()
			return
		}
		h.finished = true
		h.mu.Unlock()
		if cb.OnFinished != nil {
			cb.OnFinished(h.result)
		}
	}

	o.mu.Lock()
	o.current = h
	o.mu.Unlock()

	h.emitLayout(viewport)
	if cb.OnProgress != nil {
		cb.OnProgress(0)
	}
	if err := clock.Start(); err != nil {
		return nil, err
	}
	return h, nil
}

// Current returns the live session handle, or nil.
func (o *Orchestrator) Current() *SessionHandle {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

func (h *SessionHandle) live() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.cancelled
}

// Cancel stops the session: every scheduled tick and any pending resize is
// revoked, the pending result is discarded, and no further callbacks fire.
// Cancellation is normal control flow, not an error.
func (h *SessionHandle) Cancel() {
	h.mu.Lock()
	if h.cancelled {
		h.mu.Unlock()
		return
	}
	h.cancelled = true
	if h.resizeTimer != nil {
		h.resizeTimer.Stop()
		h.resizeTimer = nil
	}
	h.mu.Unlock()

	h.clock.Cancel()

	h.orc.mu.Lock()
	if h.orc.current == h {
		h.orc.current = nil
	}
	h.orc.mu.Unlock()
}

// Resize records a new viewport and schedules a debounced layout
// recomputation. Rapid successive calls coalesce: only the last viewport
// within the quiet period is laid out, and OnPositionsChanged fires once.
// Resizing never re-runs selection and never restarts the animation.
func (h *SessionHandle) Resize(viewport Viewport) {
	h.mu.Lock()
	if h.cancelled {
		h.mu.Unlock()
		return
	}
	h.pending = viewport
	if h.resizeTimer != nil {
		h.resizeTimer.Stop()
	}
	h.resizeTimer = h.orc.sched.AfterFunc(h.orc.debounce, h.applyResize)
	h.mu.Unlock()
}

func (h *SessionHandle) applyResize() {
	h.mu.Lock()
	if h.cancelled {
		h.mu.Unlock()
		return
	}
	h.resizeTimer = nil
	viewport := h.pending
	h.viewport = viewport
	h.mu.Unlock()

	h.emitLayout(viewport)
}

// emitLayout recomputes positions for the viewport and publishes them. A
// layout that fails its own bounds post-condition is reported through OnError
// and replaced by the minimal safe default: no positions at all.
func (h *SessionHandle) emitLayout(viewport Viewport) {
	h.mu.Lock()
	margins := h.margins
	spec := Layout(len(h.items), viewport, margins)
	h.spec = spec
	h.mu.Unlock()

	positions, err := Positions(spec, len(h.items))
	if err != nil {
		if h.cb.OnError != nil {
			h.cb.OnError(err)
		}
		positions = nil
	}
	if h.cb.OnPositionsChanged != nil {
		h.cb.OnPositionsChanged(positions, spec)
	}
}

// Result returns the draw outcome once the session has finished.
func (h *SessionHandle) Result() (DrawResult, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.finished {
		return DrawResult{}, false
	}
	return h.result, true
}

// Phase returns the current animation phase.
func (h *SessionHandle) Phase() Phase {
	return h.clock.Phase()
}

// Snapshot returns a point-in-time view of the animation clock.
func (h *SessionHandle) Snapshot() PhaseSnapshot {
	return h.clock.Snapshot()
}

// Layout returns the most recently computed LayoutSpec.
func (h *SessionHandle) Layout() LayoutSpec {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.spec
}
