package luckdraw

import (
	"math"
	"time"
)

// Select picks req.Quantity winners from req.Items.
//
// Without repeats it performs a Fisher–Yates shuffle of a working copy and
// consumes winners from the front of the permutation, so every item wins at
// most once and every ordered outcome is equally likely. With repeats each
// winner is sampled independently from the full pool, so the same item may
// appear more than once and Quantity may exceed the pool size.
//
// Select has no side effects: given a seeded RandomSource the winner sequence
// is fully determined by the request. A nil rng uses DefaultSource.
func Select(req DrawRequest, rng RandomSource) (DrawResult, error) {
	if len(req.Items) == 0 {
		return DrawResult{}, ErrEmptyItemList
	}
	if req.Quantity < 1 {
		return DrawResult{}, ErrInvalidQuantity
	}
	if !req.AllowRepeat && req.Quantity > len(req.Items) {
		return DrawResult{}, ErrInvalidQuantity
	}
	if rng == nil {
		rng = DefaultSource()
	}

	winners := make([]Item, req.Quantity)
	if req.AllowRepeat {
		for i := range winners {
			winners[i] = req.Items[rng.Intn(len(req.Items))]
		}
	} else {
		pool := make([]Item, len(req.Items))
		copy(pool, req.Items)
		for i := len(pool) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			pool[i], pool[j] = pool[j], pool[i]
		}
		copy(winners, pool[:req.Quantity])
	}

	return DrawResult{Winners: winners, DrawnAt: time.Now().UTC()}, nil
}

// SelectWeighted picks quantity winners with probability proportional to
// weights, sampling with replacement. It reports ErrWeightMismatch when items
// and weights differ in length and ErrInvalidWeight when any weight is zero,
// negative, or not finite.
func SelectWeighted(items []Item, weights []float64, quantity int, rng RandomSource) (DrawResult, error) {
	if len(items) == 0 {
		return DrawResult{}, ErrEmptyItemList
	}
	if len(items) != len(weights) {
		return DrawResult{}, ErrWeightMismatch
	}
	if quantity < 1 {
		return DrawResult{}, ErrInvalidQuantity
	}
	total := 0.0
	for _, w := range weights {
		if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return DrawResult{}, ErrInvalidWeight
		}
		total += w
	}
	if rng == nil {
		rng = DefaultSource()
	}

	winners := make([]Item, quantity)
	for i := range winners {
		r := rng.Float64() * total
		idx := len(items) - 1 // last item absorbs float rounding
		acc := 0.0
		for j, w := range weights {
			acc += w
			if r < acc {
				idx = j
				break
			}
		}
		winners[i] = items[idx]
	}

	return DrawResult{Winners: winners, DrawnAt: time.Now().UTC()}, nil
}
