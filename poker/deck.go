package poker

import (
	"math/rand"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// NewDeck returns all 52 cards in suit-major order. The order carries no
// meaning; callers shuffle before dealing.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			deck = append(deck, NewCard(suit, rank))
		}
	}
	return deck
}

// Shuffle returns a uniformly random permutation of deck using Fisher-Yates.
// The input is not mutated. A nil or empty input yields an empty slice.
func Shuffle(deck []Card, rng *rand.Rand) []Card {
	if len(deck) == 0 {
		return []Card{}
	}
	out := make([]Card, len(deck))
	copy(out, deck)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// removeCards returns deck minus every card in exclude, comparing by
// (suit, rank) identity.
func removeCards(deck []Card, exclude []Card) []Card {
	if len(exclude) == 0 {
		return deck
	}
	excluded := make(map[Card]struct{}, len(exclude))
	for _, c := range exclude {
		excluded[Card{Suit: c.Suit, Rank: c.Rank, Label: RankLabel(c.Rank)}] = struct{}{}
	}
	out := make([]Card, 0, len(deck))
	for _, c := range deck {
		if _, ok := excluded[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}
