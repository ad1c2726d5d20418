package game

import (
	"math/rand"

	"github.com/cardroom/zhajinhua/poker"
)

// Advice is the advisory overlay's recommendation tier.
type Advice string

const (
	AdviseFold    Advice = "Fold"
	AdviseCall    Advice = "Call"
	AdviseRaise   Advice = "Raise"
	AdviseCaution Advice = "Caution"
)

// Analysis is the advisory result shown to a human player who has looked at
// their cards. It is read-only with respect to the table.
type Analysis struct {
	WinRate      float64 `json:"winRate"`
	HandStrength float64 `json:"handStrength"`
	Advice       Advice  `json:"advice"`
	HandName     string  `json:"handName"`
	KnownCards   int     `json:"knownCardsCount"`
}

// Advise estimates the seat's win probability against the live opposition,
// excluding every card already revealed through compares. Returns nil when
// there is nothing sensible to analyze: no such seat, cards unseen, seat not
// live, or the hand not fully dealt.
func Advise(t *Table, playerID int, rng *rand.Rand) *Analysis {
	p := t.Player(playerID)
	if p == nil || !p.HasSeenCards || p.Status != Playing || len(p.Hand) != 3 {
		return nil
	}

	opponents := len(t.LiveOpponents(playerID))
	if opponents == 0 {
		return nil
	}

	winRate := poker.WinProbability(p.Hand, opponents, t.Revealed, poker.DefaultIterations, rng)
	strength := poker.HandPercentile(p.Hand, t.Revealed, rng)
	result := poker.Evaluate(p.Hand)

	advice := AdviseFold
	switch {
	case winRate > 0.7:
		advice = AdviseRaise
	case winRate > 0.4:
		advice = AdviseCall
	case winRate > 0.2 && opponents <= 1:
		advice = AdviseCaution
	}

	return &Analysis{
		WinRate:      winRate,
		HandStrength: strength,
		Advice:       advice,
		HandName:     result.Name,
		KnownCards:   len(t.Revealed),
	}
}
