package luckdraw

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyItemList reports a draw over an empty pool.
	ErrEmptyItemList = errors.New("luckdraw: item list is empty")
	// ErrInvalidQuantity reports a quantity below 1, or above the pool size
	// when repeats are not allowed.
	ErrInvalidQuantity = errors.New("luckdraw: invalid winner quantity")
	// ErrWeightMismatch reports a weighted draw where items and weights
	// differ in length.
	ErrWeightMismatch = errors.New("luckdraw: items and weights differ in length")
	// ErrInvalidWeight reports a weight that is not positive and finite.
	ErrInvalidWeight = errors.New("luckdraw: weights must be positive and finite")
	// ErrUnknownMode reports a mode name that matches no animation metaphor.
	ErrUnknownMode = errors.New("luckdraw: unknown mode")
)

// ConfigError reports an invalid construction-time parameter. These are
// caller bugs: they surface synchronously, before any timer is scheduled,
// and are never silently corrected.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("luckdraw: invalid %s: %s", e.Field, e.Reason)
}

// InvariantError reports a broken internal post-condition, such as a computed
// layout whose tokens escape their container. It is fatal to that computation
// only: the session reports it through OnError and substitutes a minimal safe
// default instead of crashing the host.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("luckdraw: %s invariant violated: %s", e.Op, e.Detail)
}
