package luckdraw

import (
	"testing"
)

func namedItems(names ...string) []Item {
	items := make([]Item, len(names))
	for i, n := range names {
		items[i] = Item{ID: n, Name: n}
	}
	return items
}

func TestSelectCountMatchesQuantity(t *testing.T) {
	req := DrawRequest{Items: namedItems("a", "b", "c", "d", "e"), Quantity: 2}
	res, err := Select(req, NewSeededSource(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Winners) != 2 {
		t.Fatalf("got %d winners, want 2", len(res.Winners))
	}
}

func TestSelectNoRepeatWinnersDistinct(t *testing.T) {
	items := namedItems("a", "b", "c", "d", "e")
	for seed := uint64(0); seed < 50; seed++ {
		res, err := Select(DrawRequest{Items: items, Quantity: 5}, NewSeededSource(seed))
		if err != nil {
			t.Fatal(err)
		}
		seen := map[string]bool{}
		for _, w := range res.Winners {
			if seen[w.ID] {
				t.Fatalf("seed %d: duplicate winner %q without AllowRepeat", seed, w.ID)
			}
			seen[w.ID] = true
		}
	}
}

func TestSelectRepeatAllowsQuantityBeyondPool(t *testing.T) {
	req := DrawRequest{Items: namedItems("a", "b", "c"), Quantity: 5, AllowRepeat: true}
	res, err := Select(req, NewSeededSource(7))
	if err != nil {
		t.Fatalf("quantity > pool must succeed with AllowRepeat: %v", err)
	}
	if len(res.Winners) != 5 {
		t.Fatalf("got %d winners, want 5", len(res.Winners))
	}
}

func TestSelectDeterministicUnderSeed(t *testing.T) {
	req := DrawRequest{Items: namedItems("a", "b", "c", "d", "e", "f"), Quantity: 3}
	first, err := Select(req, NewSeededSource(99))
	if err != nil {
		t.Fatal(err)
	}
	second, err := Select(req, NewSeededSource(99))
	if err != nil {
		t.Fatal(err)
	}
	for i := range first.Winners {
		if first.Winners[i] != second.Winners[i] {
			t.Fatalf("winner %d differs across runs: %v vs %v", i, first.Winners[i], second.Winners[i])
		}
	}
}

func TestSelectOrderIsMeaningful(t *testing.T) {
	// Two different seeds should (almost always) order a full draw differently.
	items := namedItems("a", "b", "c", "d", "e", "f", "g", "h")
	req := DrawRequest{Items: items, Quantity: len(items)}
	one, _ := Select(req, NewSeededSource(1))
	two, _ := Select(req, NewSeededSource(2))
	same := true
	for i := range one.Winners {
		if one.Winners[i] != two.Winners[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("distinct seeds produced identical full permutations")
	}
}

func TestSelectValidation(t *testing.T) {
	if _, err := Select(DrawRequest{Quantity: 1}, nil); err != ErrEmptyItemList {
		t.Errorf("empty items: got %v, want ErrEmptyItemList", err)
	}
	items := namedItems("a", "b")
	if _, err := Select(DrawRequest{Items: items, Quantity: 0}, nil); err != ErrInvalidQuantity {
		t.Errorf("quantity 0: got %v, want ErrInvalidQuantity", err)
	}
	if _, err := Select(DrawRequest{Items: items, Quantity: 3}, nil); err != ErrInvalidQuantity {
		t.Errorf("quantity > pool without repeat: got %v, want ErrInvalidQuantity", err)
	}
	if _, err := Select(DrawRequest{Items: items, Quantity: 3, AllowRepeat: true}, nil); err != nil {
		t.Errorf("quantity > pool with repeat: got %v, want success", err)
	}
}

func TestSelectDisambiguatesByID(t *testing.T) {
	// Same display name, different IDs: both may win one no-repeat draw.
	items := []Item{{ID: "1", Name: "Sam"}, {ID: "2", Name: "Sam"}}
	res, err := Select(DrawRequest{Items: items, Quantity: 2}, NewSeededSource(3))
	if err != nil {
		t.Fatal(err)
	}
	if res.Winners[0].ID == res.Winners[1].ID {
		t.Fatalf("identity must be by ID: got %q twice", res.Winners[0].ID)
	}
}

func TestSelectUniformity(t *testing.T) {
	// Every item should win the single-slot draw about equally often.
	items := namedItems("a", "b", "c", "d")
	rng := NewSeededSource(42)
	const trials = 40000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		res, err := Select(DrawRequest{Items: items, Quantity: 1}, rng)
		if err != nil {
			t.Fatal(err)
		}
		counts[res.Winners[0].ID]++
	}
	want := float64(trials) / float64(len(items))
	for id, n := range counts {
		if diff := (float64(n) - want) / want; diff > 0.05 || diff < -0.05 {
			t.Errorf("item %q won %d times, want ~%.0f", id, n, want)
		}
	}
}

func TestSelectWeightedValidation(t *testing.T) {
	items := namedItems("a", "b")
	if _, err := SelectWeighted(items, []float64{1}, 1, nil); err != ErrWeightMismatch {
		t.Errorf("length mismatch: got %v, want ErrWeightMismatch", err)
	}
	if _, err := SelectWeighted(items, []float64{1, 0}, 1, nil); err != ErrInvalidWeight {
		t.Errorf("zero weight: got %v, want ErrInvalidWeight", err)
	}
	if _, err := SelectWeighted(items, []float64{1, -2}, 1, nil); err != ErrInvalidWeight {
		t.Errorf("negative weight: got %v, want ErrInvalidWeight", err)
	}
	if _, err := SelectWeighted(nil, nil, 1, nil); err != ErrEmptyItemList {
		t.Errorf("empty items: got %v, want ErrEmptyItemList", err)
	}
}

func TestSelectWeightedProportions(t *testing.T) {
	items := namedItems("common", "rare")
	weights := []float64{3, 1}
	rng := NewSeededSource(8)
	const trials = 40000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		res, err := SelectWeighted(items, weights, 1, rng)
		if err != nil {
			t.Fatal(err)
		}
		counts[res.Winners[0].ID]++
	}
	freq := float64(counts["common"]) / float64(trials)
	// should be around 0.75
	if freq < 0.73 || freq > 0.77 {
		t.Fatalf("common won with frequency %.3f, want ~0.75", freq)
	}
}
