package luckdraw

import "time"

// Mode selects one of the five animation metaphors. All modes share the same
// phase machine; they differ only in pacing and palette (see Mode.Clock).
type Mode uint8

const (
	ModeSlotMachine  Mode = iota // spinning reels that settle one by one
	ModeBulletScreen             // names streaming across the screen
	ModeBlinking                 // one card blinks, slowing until it sticks
	ModeGridLottery              // light chasing around a wall of cells
	ModeCardFlip                 // face-down cards, winners flip up
)

var modeNames = [...]string{
	ModeSlotMachine:  "slot_machine",
	ModeBulletScreen: "bullet_screen",
	ModeBlinking:     "blinking",
	ModeGridLottery:  "grid_lottery",
	ModeCardFlip:     "card_flip",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode returns the Mode named by s, as it appears in session profiles.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if s == name {
			return Mode(m), nil
		}
	}
	return 0, ErrUnknownMode
}

// Palettes cycle behind the highlight while a draw runs. Warm tones for the
// fast modes, cooler ones for the slow burners.
var (
	paletteFestive = []Color{
		{0.95, 0.26, 0.21, 1}, // red
		{1.00, 0.76, 0.03, 1}, // amber
		{0.30, 0.69, 0.31, 1}, // green
		{0.13, 0.59, 0.95, 1}, // blue
		{0.61, 0.15, 0.69, 1}, // purple
	}
	paletteNeon = []Color{
		{0.00, 0.90, 1.00, 1},
		{1.00, 0.18, 0.57, 1},
		{0.65, 1.00, 0.00, 1},
		{1.00, 0.92, 0.23, 1},
	}
)

// clockTable holds the per-mode pacing parameters. InitialTick is the fastest
// highlight delay, FinalTick the slowest; Ramp is the window the ease-out
// cubic stretches the delay over.
var clockTable = [...]ClockConfig{
	ModeSlotMachine: {
		InitialTick:   50 * time.Millisecond,
		FinalTick:     450 * time.Millisecond,
		Ramp:          4 * time.Second,
		Priming:       800 * time.Millisecond,
		Stagger:       600 * time.Millisecond,
		ColorInterval: 200 * time.Millisecond,
		Palette:       paletteNeon,
	},
	ModeBulletScreen: {
		InitialTick:   35 * time.Millisecond,
		FinalTick:     300 * time.Millisecond,
		Ramp:          3 * time.Second,
		Priming:       400 * time.Millisecond,
		Stagger:       300 * time.Millisecond,
		ColorInterval: 150 * time.Millisecond,
		Palette:       paletteNeon,
	},
	ModeBlinking: {
		InitialTick:   80 * time.Millisecond,
		FinalTick:     600 * time.Millisecond,
		Ramp:          5 * time.Second,
		Priming:       1 * time.Second,
		Stagger:       800 * time.Millisecond,
		ColorInterval: 200 * time.Millisecond,
		Palette:       paletteFestive,
	},
	ModeGridLottery: {
		InitialTick:   60 * time.Millisecond,
		FinalTick:     500 * time.Millisecond,
		Ramp:          4500 * time.Millisecond,
		Priming:       800 * time.Millisecond,
		Stagger:       700 * time.Millisecond,
		ColorInterval: 200 * time.Millisecond,
		Palette:       paletteFestive,
	},
	ModeCardFlip: {
		InitialTick:   70 * time.Millisecond,
		FinalTick:     550 * time.Millisecond,
		Ramp:          4 * time.Second,
		Priming:       600 * time.Millisecond,
		Stagger:       500 * time.Millisecond,
		ColorInterval: 250 * time.Millisecond,
		Palette:       paletteFestive,
	},
}

// Clock returns the pacing parameters for the mode. The returned config is a
// copy; callers may tweak it before constructing a PhaseClock.
func (m Mode) Clock() ClockConfig {
	if int(m) < len(clockTable) {
		return clockTable[m]
	}
	return clockTable[ModeGridLottery]
}

// ColorAt returns the palette entry active at the given elapsed time, with the
// palette advancing one entry per interval. It is a pure function of elapsed
// wall-clock time so hosts can drive their own cycling without timers.
// An empty palette yields ColorWhite.
func ColorAt(palette []Color, interval, elapsed time.Duration) Color {
	if len(palette) == 0 {
		return ColorWhite
	}
	if interval <= 0 || elapsed < 0 {
		return palette[0]
	}
	step := int(elapsed/interval) % len(palette)
	return palette[step]
}
