package luckdraw

import "time"

// Item is one entry in the pool a draw selects from. ID must be unique within
// a single draw; items with identical display names are disambiguated by ID.
// Items are immutable once a draw starts.
type Item struct {
	ID   string
	Name string
}

// DrawRequest describes one draw: the pool, how many winners to pick, and
// whether the same item may win more than once.
//
// When AllowRepeat is false, Quantity must not exceed the number of items;
// Select reports ErrInvalidQuantity otherwise.
type DrawRequest struct {
	Items       []Item
	Quantity    int
	AllowRepeat bool
}

// DrawResult is the outcome of one draw. Winners preserve selection order:
// Winners[0] is the first pick, which is semantically meaningful (e.g.
// "round 1 winner").
type DrawResult struct {
	Winners []Item
	DrawnAt time.Time
}

// Viewport is the size of the rendering surface available to a session,
// in pixels. Pushed by the host on layout change.
type Viewport struct {
	Width, Height float64
}

// Insets reserves host UI space (headers, toolbars, safe areas) that the
// layout must not place tokens into.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the neutral highlight tint.
var ColorWhite = Color{1, 1, 1, 1}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// TokenPosition places one visual token (card, cell, reel slot) on screen.
// X and Y locate the token's center relative to a container-centered origin.
// RotationDegrees is a cosmetic jitter; it never affects the token's bounding
// box or the layout's overflow guarantees.
type TokenPosition struct {
	Index           int
	X, Y            float64
	RotationDegrees float64
	Width, Height   float64
}
