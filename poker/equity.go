package poker

import (
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Default iteration counts. Multi-opponent estimates use more trials because
// variance grows with the field size.
const (
	DefaultIterations    = 800
	PercentileIterations = 500
)

// workerResult holds one Monte Carlo worker's tally.
type workerResult struct {
	wins   int
	trials int
}

// WinProbability estimates the chance that hero beats every one of
// `opponents` random unknown hands, drawn from the deck minus hero's cards
// and minus excluded (cards already revealed through compares).
//
// A trial counts as a win only when hero's score strictly exceeds every
// sampled opponent's score. The whole simulation stops early if the
// remaining deck cannot cover opponents*3 cards; the divisor stays at
// iterations, matching the estimator this game has always shipped with.
//
// Sampling is randomized, so callers should assert bounds, not exact values.
func WinProbability(hero []Card, opponents int, excluded []Card, iterations int, rng *rand.Rand) float64 {
	if len(hero) != 3 || opponents <= 0 || iterations <= 0 {
		return 0
	}

	heroScore := Evaluate(hero).Score
	remaining := removeCards(removeCards(NewDeck(), hero), excluded)

	need := opponents * 3
	if len(remaining) < need {
		return 0
	}

	workers := runtime.NumCPU()
	if workers > 4 {
		workers = 4
	}
	if workers > iterations {
		workers = 1
	}

	results := make([]workerResult, workers)
	var g errgroup.Group

	per := iterations / workers
	for w := 0; w < workers; w++ {
		trials := per
		if w == workers-1 {
			trials = iterations - per*(workers-1)
		}
		// Seeds are drawn on the caller's goroutine so the worker RNGs stay
		// derived from the injected one.
		seed := rng.Int63()
		idx := w

		g.Go(func() error {
			local := rand.New(rand.NewSource(seed))
			deck := make([]Card, len(remaining))
			wins := 0

			for trial := 0; trial < trials; trial++ {
				copy(deck, remaining)
				for i := len(deck) - 1; i > 0; i-- {
					j := local.Intn(i + 1)
					deck[i], deck[j] = deck[j], deck[i]
				}

				heroWins := true
				for opp := 0; opp < opponents; opp++ {
					oppScore := Evaluate(deck[opp*3 : opp*3+3]).Score
					// Ties are not wins, same rule as CompareHands.
					if oppScore >= heroScore {
						heroWins = false
						break
					}
				}
				if heroWins {
					wins++
				}
			}

			results[idx] = workerResult{wins: wins, trials: trials}
			return nil
		})
	}
	_ = g.Wait() // Workers never error

	wins := 0
	for _, r := range results {
		wins += r.wins
	}
	return float64(wins) / float64(iterations)
}

// HandPercentile estimates the chance the hand beats one random unknown
// hand, a rough "how good is this holding" percentile.
func HandPercentile(hand []Card, excluded []Card, rng *rand.Rand) float64 {
	return WinProbability(hand, 1, excluded, PercentileIterations, rng)
}
