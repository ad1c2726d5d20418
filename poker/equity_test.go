package poker

import (
	"math/rand"
	"testing"
)

func TestWinProbabilityLeopard(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	hand := h("As", "Ah", "Ac")

	prob := WinProbability(hand, 1, nil, PercentileIterations, rng)
	if prob < 0.9 {
		t.Errorf("ace leopard vs one random hand = %.3f, want > 0.9", prob)
	}
}

func TestWinProbabilityWeakHandMultiway(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	weak := h("2s", "5h", "9c")

	single := WinProbability(weak, 1, nil, DefaultIterations, rng)
	multi := WinProbability(weak, 3, nil, DefaultIterations, rng)

	if single > 0.6 {
		t.Errorf("9-high vs one opponent = %.3f, suspiciously strong", single)
	}
	if multi >= single {
		t.Errorf("more opponents should not raise win rate: 1-way %.3f, 3-way %.3f", single, multi)
	}
}

func TestWinProbabilityExcludedCards(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	hand := h("Ks", "Kh", "9c")

	// Revealing the other two kings removes the worst beats from the sample
	// space; the estimate must stay a sane probability either way.
	excluded := h("Kd", "Kc", "2d")
	prob := WinProbability(hand, 2, excluded, DefaultIterations, rng)
	if prob < 0 || prob > 1 {
		t.Fatalf("probability out of range: %f", prob)
	}

	baseline := WinProbability(hand, 2, nil, DefaultIterations, rng)
	if baseline < 0 || baseline > 1 {
		t.Fatalf("baseline out of range: %f", baseline)
	}
}

func TestWinProbabilityDegenerateInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	if got := WinProbability(h("As", "Kh"), 1, nil, 100, rng); got != 0 {
		t.Errorf("short hero hand should yield 0, got %f", got)
	}
	if got := WinProbability(h("As", "Kh", "Qc"), 0, nil, 100, rng); got != 0 {
		t.Errorf("zero opponents should yield 0, got %f", got)
	}
	if got := WinProbability(h("As", "Kh", "Qc"), 1, nil, 0, rng); got != 0 {
		t.Errorf("zero iterations should yield 0, got %f", got)
	}

	// Excluding nearly the whole deck starves the sampler; it must bail out
	// instead of dealing cards it does not have.
	deck := NewDeck()
	if got := WinProbability(h("As", "Kh", "Qc"), 4, deck[:45], 100, rng); got != 0 {
		t.Errorf("starved deck should yield 0, got %f", got)
	}
}

func TestWinProbabilityTieIsNotAWin(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	hero := h("5s", "4d", "3h")

	// Exclude everything except the tying straight 5♥4♣3♦, so every trial
	// deals the opponent an equal score.
	tie := h("5h", "4c", "3d")
	keep := make(map[Card]bool, 6)
	for _, c := range append(append([]Card{}, hero...), tie...) {
		keep[c] = true
	}
	var excluded []Card
	for _, c := range NewDeck() {
		if !keep[c] {
			excluded = append(excluded, c)
		}
	}

	if got := WinProbability(hero, 1, excluded, 50, rng); got != 0 {
		t.Errorf("tied trials counted as wins: got %f, want 0", got)
	}
}

func TestHandPercentileOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	strong := HandPercentile(h("As", "Ah", "Ac"), nil, rng)
	weak := HandPercentile(h("2s", "5h", "9c"), nil, rng)

	if strong <= weak {
		t.Errorf("leopard percentile %.3f should exceed 9-high percentile %.3f", strong, weak)
	}
}
