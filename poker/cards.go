package poker

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit is a card suit, represented by its display symbol.
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Clubs    Suit = "♣"
	Diamonds Suit = "♦"

	// SuitJoker is reserved for the 54-card variant and never appears in a
	// standard deck.
	SuitJoker Suit = "🃏"
)

// Suits lists the four standard suits in deck order.
var Suits = []Suit{Spades, Hearts, Clubs, Diamonds}

// Rank constants. Ranks run 2-14 with Ace high.
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

// Card is an immutable card value. Identity is the (Suit, Rank) pair.
type Card struct {
	Suit  Suit   `json:"suit"`
	Rank  int    `json:"rank"`
	Label string `json:"label"`
}

// NewCard creates a card with its display label filled in.
func NewCard(suit Suit, rank int) Card {
	return Card{Suit: suit, Rank: rank, Label: RankLabel(rank)}
}

// RankLabel returns the display label for a rank ("2".."10", "J", "Q", "K", "A").
func RankLabel(rank int) string {
	switch rank {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	case 16, 17:
		return "JOKER"
	default:
		return strconv.Itoa(rank)
	}
}

// String returns the display form, e.g. "A♠" or "10♥".
func (c Card) String() string {
	return c.Label + string(c.Suit)
}

// Valid reports whether the card is a real deck card.
func (c Card) Valid() bool {
	if c.Rank < 2 || c.Rank > Ace {
		return false
	}
	switch c.Suit {
	case Spades, Hearts, Clubs, Diamonds:
		return true
	}
	return false
}

// ParseCard parses a compact card string like "As", "Kh" or "10d". Suit
// symbols are accepted too.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	suitPart := s[len(s)-1]
	rankPart := s[:len(s)-1]

	var suit Suit
	switch suitPart {
	case 's', 'S':
		suit = Spades
	case 'h', 'H':
		suit = Hearts
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	default:
		// Allow the multi-byte suit symbols themselves.
		for _, sym := range Suits {
			if strings.HasSuffix(s, string(sym)) {
				suit = sym
				rankPart = strings.TrimSuffix(s, string(sym))
			}
		}
		if suit == "" {
			return Card{}, fmt.Errorf("invalid suit: %q", s)
		}
	}

	var rank int
	switch strings.ToUpper(rankPart) {
	case "T", "10":
		rank = 10
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		n, err := strconv.Atoi(rankPart)
		if err != nil || n < 2 || n > 9 {
			return Card{}, fmt.Errorf("invalid rank: %q", rankPart)
		}
		rank = n
	}

	return NewCard(suit, rank), nil
}

// ParseCards parses a list of cards, whitespace separated ("As Kd Qh") or
// concatenated ("AsKdQh", "10d9c8h").
func ParseCards(s string) ([]Card, error) {
	cards := make([]Card, 0, 3)
	for _, field := range strings.Fields(s) {
		parsed, err := parseCardRun(field)
		if err != nil {
			return nil, err
		}
		cards = append(cards, parsed...)
	}
	return cards, nil
}

// parseCardRun splits one field into cards. Each card is a rank token ("10"
// or a single character) followed by a one-rune suit.
func parseCardRun(s string) ([]Card, error) {
	var cards []Card
	runes := []rune(s)
	for i := 0; i < len(runes); {
		start := i
		if runes[i] == '1' {
			if i+1 >= len(runes) || runes[i+1] != '0' {
				return nil, fmt.Errorf("invalid card string: %q", s)
			}
			i += 2
		} else {
			i++
		}
		if i >= len(runes) {
			return nil, fmt.Errorf("invalid card string: %q", s)
		}
		i++
		c, err := ParseCard(string(runes[start:i]))
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// FormatCards renders cards as a space separated string.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
