package luckdraw

import (
	"fmt"
	"math"
)

// DeviceTier is a breakpoint-derived layout profile.
type DeviceTier uint8

const (
	TierMobile  DeviceTier = iota // viewport width < 768
	TierTablet                    // viewport width < 1024
	TierDesktop                   // everything wider
)

var tierNames = [...]string{"mobile", "tablet", "desktop"}

func (t DeviceTier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return "unknown"
}

// Breakpoints, in CSS pixels.
const (
	tabletBreakpoint  = 768.0
	desktopBreakpoint = 1024.0
)

// TierFor returns the device tier for a viewport width.
func TierFor(width float64) DeviceTier {
	switch {
	case width < tabletBreakpoint:
		return TierMobile
	case width < desktopBreakpoint:
		return TierTablet
	default:
		return TierDesktop
	}
}

// tierProfile holds base token metrics per tier, before any overflow scaling.
type tierProfile struct {
	tokenWidth  float64
	tokenHeight float64
	spacing     float64
	maxColumns  int
}

var tierProfiles = [...]tierProfile{
	TierMobile:  {tokenWidth: 88, tokenHeight: 120, spacing: 12, maxColumns: 3},
	TierTablet:  {tokenWidth: 104, tokenHeight: 144, spacing: 16, maxColumns: 4},
	TierDesktop: {tokenWidth: 120, tokenHeight: 168, spacing: 20, maxColumns: 5},
}

// minSafeScale is the scale floor below which tokens are considered too small
// to read; MaxSafeTokens counts how many fit above it.
const minSafeScale = 0.4

// maxJitterDegrees bounds the cosmetic rotation offset on each token.
const maxJitterDegrees = 4.0

// LayoutSpec describes how tokens are arranged for one (viewport, count)
// pair: tier, scaled token metrics, and grid shape. It is a pure function of
// its inputs; identical inputs always produce an identical spec, so specs
// are safe to cache and compare in regression tests.
type LayoutSpec struct {
	Tier        DeviceTier
	TokenWidth  float64
	TokenHeight float64
	Spacing     float64
	Columns     int
	Rows        int
	// Scale is the uniform shrink applied so the grid fits the available
	// region; 1 means no shrinking was needed.
	Scale float64
	// MaxSafeTokens is how many tokens this viewport could hold without
	// scaling below the legibility floor. Zero when the region is degenerate.
	MaxSafeTokens int

	availWidth  float64
	availHeight float64
}

// Layout computes the LayoutSpec for tokenCount tokens in the given viewport,
// minus reserved UI margins. Degenerate inputs (no tokens, or a viewport with
// no usable area) yield a zero-grid spec rather than an error.
func Layout(tokenCount int, viewport Viewport, margins Insets) LayoutSpec {
	availW := viewport.Width - margins.Left - margins.Right
	availH := viewport.Height - margins.Top - margins.Bottom

	spec := LayoutSpec{
		Tier:  TierFor(viewport.Width),
		Scale: 1,
	}
	if availW <= 0 || availH <= 0 {
		return spec
	}
	spec.availWidth = availW
	spec.availHeight = availH

	prof := tierProfiles[spec.Tier]
	spec.MaxSafeTokens = maxSafeTokens(prof, availW, availH)

	if tokenCount <= 0 {
		return spec
	}

	cols := prof.maxColumns
	if tokenCount < cols {
		cols = tokenCount
	}
	rows := (tokenCount + cols - 1) / cols

	reqW := float64(cols)*prof.tokenWidth + float64(cols-1)*prof.spacing
	reqH := float64(rows)*prof.tokenHeight + float64(rows-1)*prof.spacing

	scale := math.Min(availW/reqW, availH/reqH)
	if scale > 1 {
		scale = 1
	}

	spec.Columns = cols
	spec.Rows = rows
	spec.Scale = scale
	spec.TokenWidth = prof.tokenWidth * scale
	spec.TokenHeight = prof.tokenHeight * scale
	spec.Spacing = prof.spacing * scale
	return spec
}

// maxSafeTokens finds the largest count that fits the region without dropping
// below minSafeScale. Counts are probed incrementally; the grid math is cheap
// and the probe stops at the first failing count.
func maxSafeTokens(prof tierProfile, availW, availH float64) int {
	const probeCap = 1000
	for n := 1; n <= probeCap; n++ {
		cols := prof.maxColumns
		if n < cols {
			cols = n
		}
		rows := (n + cols - 1) / cols
		reqW := float64(cols)*prof.tokenWidth + float64(cols-1)*prof.spacing
		reqH := float64(rows)*prof.tokenHeight + float64(rows-1)*prof.spacing
		if math.Min(availW/reqW, availH/reqH) < minSafeScale {
			return n - 1
		}
	}
	return probeCap
}

// Positions lays out tokenCount tokens on the spec's grid. Rows fill top to
// bottom; a final short row is centered rather than left-aligned. Coordinates
// are token centers relative to the center of the available region.
//
// Every bounding box is validated against the available region before the
// slice is returned; a violation yields an InvariantError and no positions.
// The only randomness is the rotation jitter, which is derived from the token
// index, so repeated calls are bit-identical.
func Positions(spec LayoutSpec, tokenCount int) ([]TokenPosition, error) {
	if tokenCount <= 0 || spec.Columns == 0 || spec.availWidth <= 0 || spec.availHeight <= 0 {
		return nil, nil
	}

	rows := (tokenCount + spec.Columns - 1) / spec.Columns
	gridH := float64(rows)*spec.TokenHeight + float64(rows-1)*spec.Spacing

	positions := make([]TokenPosition, 0, tokenCount)
	for row := 0; row < rows; row++ {
		inRow := spec.Columns
		if remaining := tokenCount - row*spec.Columns; remaining < inRow {
			inRow = remaining
		}
		rowW := float64(inRow)*spec.TokenWidth + float64(inRow-1)*spec.Spacing
		y := -gridH/2 + spec.TokenHeight/2 + float64(row)*(spec.TokenHeight+spec.Spacing)
		for col := 0; col < inRow; col++ {
			index := row*spec.Columns + col
			x := -rowW/2 + spec.TokenWidth/2 + float64(col)*(spec.TokenWidth+spec.Spacing)
			positions = append(positions, TokenPosition{
				Index:           index,
				X:               x,
				Y:               y,
				RotationDegrees: jitterDegrees(index),
				Width:           spec.TokenWidth,
				Height:          spec.TokenHeight,
			})
		}
	}

	if err := validateBounds(spec, positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// validateBounds checks the layout post-condition: every token's bounding box
// must lie within [0, availWidth] x [0, availHeight] once translated from the
// center origin. Rotation jitter is cosmetic and deliberately excluded.
func validateBounds(spec LayoutSpec, positions []TokenPosition) error {
	const eps = 1e-6
	region := Rect{Width: spec.availWidth, Height: spec.availHeight}
	for _, p := range positions {
		left := p.X + spec.availWidth/2 - p.Width/2
		top := p.Y + spec.availHeight/2 - p.Height/2
		if left < -eps || top < -eps ||
			left+p.Width > region.Width+eps || top+p.Height > region.Height+eps {
			return &InvariantError{
				Op:     "layout",
				Detail: fmt.Sprintf("token %d box (%.2f,%.2f %gx%g) escapes %gx%g region", p.Index, left, top, p.Width, p.Height, region.Width, region.Height),
			}
		}
	}
	return nil
}

// jitterDegrees derives a stable rotation offset in [-maxJitterDegrees,
// +maxJitterDegrees] from the token index (splitmix64 finalizer). Hash-based
// rather than drawn from a RandomSource so layouts stay reproducible.
func jitterDegrees(index int) float64 {
	h := uint64(index) + 0x9E3779B97F4A7C15
	h ^= h >> 30
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 27
	h *= 0x94D049BB133111EB
	h ^= h >> 31
	unit := float64(h>>11) / (1 << 53) // [0, 1)
	return (unit*2 - 1) * maxJitterDegrees
}
