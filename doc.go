// Package luckdraw is the drawing-session engine behind an animated random
// picker: it selects winners fairly from a user-supplied list, paces a
// multi-phase highlight animation, and computes non-overlapping token
// positions for the host's viewport. It renders nothing itself: the
// presentation layer subscribes to callbacks and draws however it likes
// (the examples/ directory renders with Ebitengine).
//
// # Quick start
//
//	orc := luckdraw.NewOrchestrator(luckdraw.Options{})
//	handle, err := orc.Start(
//		luckdraw.ModeGridLottery,
//		luckdraw.DrawRequest{Items: items, Quantity: 2},
//		luckdraw.Viewport{Width: 1366, Height: 768},
//		luckdraw.Insets{Top: 64},
//		luckdraw.Callbacks{
//			OnHighlight: func(slot, token int, c luckdraw.Color) { /* tint token */ },
//			OnFinished:  func(r luckdraw.DrawResult) { /* announce winners */ },
//		},
//	)
//
// # The one invariant that matters
//
// Winners are computed by [Select] before any timer is scheduled; the
// animation is cosmetic and its terminal tick is forced onto the precomputed
// winner. The UI can never display a different winner than the logical
// result.
//
// # Structure
//
// [Select] and [SelectWeighted] are pure sampling functions over a seedable
// [RandomSource]. [PhaseClock] is the timed state machine (Idle, Priming,
// Active, Decelerating, Finished) whose tick delay follows an ease-out cubic
// ramp. [Layout] and [Positions] map a token count and viewport onto a
// centered, never-overflowing grid with device-tier breakpoints.
// [Orchestrator] composes the three behind Start/Cancel/Resize.
//
// # Determinism and testing
//
// Everything time-driven runs on a [Scheduler]; tests inject a
// [ManualScheduler] and drive whole sessions through virtual time. Everything
// random runs on a [RandomSource]; [NewSeededSource] makes draws replayable.
package luckdraw
