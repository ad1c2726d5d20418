package poker

import (
	"sort"
)

// Category is the rank class of a 3-card hand, strongest last.
type Category int

const (
	HighCard Category = iota + 1
	Pair
	Straight
	Flush
	StraightFlush
	Leopard // three of a kind
)

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case StraightFlush:
		return "Straight Flush"
	case Leopard:
		return "Leopard (Bao Zi)"
	default:
		return "Unknown"
	}
}

// Category base offsets. These keep score ranges disjoint per category, so
// total ordering across categories falls out of plain integer comparison.
const (
	highCardBase      = 100000
	pairBase          = 200000
	straightBase      = 300000
	flushBase         = 400000
	straightFlushBase = 500000
	leopardBase       = 600000
)

// HandResult is the outcome of evaluating a 3-card hand. Score is a fully
// ordered tie-break value; equal scores are a genuine tie.
type HandResult struct {
	Category Category `json:"category"`
	Score    int      `json:"score"`
	Name     string   `json:"name"`
}

// incompleteResult is returned for hands that cannot be evaluated yet, for
// example mid-deal. Score 0 sorts below every real hand.
var incompleteResult = HandResult{Category: HighCard, Score: 0, Name: "Dealing..."}

// Evaluate scores a 3-card hand. A hand with fewer than three valid cards
// returns the incomplete sentinel rather than an error; the caller can keep
// asking as cards arrive.
func Evaluate(hand []Card) HandResult {
	valid := make([]Card, 0, 3)
	for _, c := range hand {
		if c.Valid() {
			valid = append(valid, c)
		}
	}
	if len(valid) < 3 {
		return incompleteResult
	}

	sorted := make([]Card, 3)
	copy(sorted, valid[:3])
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank > sorted[j].Rank })

	r0, r1, r2 := sorted[0].Rank, sorted[1].Rank, sorted[2].Rank

	isFlush := sorted[0].Suit == sorted[1].Suit && sorted[1].Suit == sorted[2].Suit
	isStraight := r0 == r1+1 && r1 == r2+1
	lowAceStraight := r0 == Ace && r1 == 3 && r2 == 2
	if lowAceStraight {
		isStraight = true
	}
	isTrips := r0 == r1 && r1 == r2
	isPair := r0 == r1 || r1 == r2

	val := r0*256 + r1*16 + r2
	if lowAceStraight {
		// A-3-2 plays as the lowest straight: score it with the ace as one.
		val = 3*256 + 2*16 + 1
	}

	switch {
	case isTrips:
		return HandResult{Category: Leopard, Score: leopardBase + val, Name: Leopard.String()}
	case isFlush && isStraight:
		return HandResult{Category: StraightFlush, Score: straightFlushBase + val, Name: StraightFlush.String()}
	case isFlush:
		return HandResult{Category: Flush, Score: flushBase + val, Name: Flush.String()}
	case isStraight:
		return HandResult{Category: Straight, Score: straightBase + val, Name: Straight.String()}
	case isPair:
		pairRank, kicker := r0, r2
		if r0 != r1 {
			pairRank, kicker = r1, r0
		}
		return HandResult{Category: Pair, Score: pairBase + pairRank*4096 + kicker, Name: Pair.String()}
	default:
		return HandResult{Category: HighCard, Score: highCardBase + val, Name: HighCard.String()}
	}
}

// CompareHands reports whether a strictly beats b. An equal score is a tie
// and is not a win, so in a challenge the defender keeps their seat.
func CompareHands(a, b []Card) bool {
	return Evaluate(a).Score > Evaluate(b).Score
}
