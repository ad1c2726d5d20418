package poker

import (
	"math/rand"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("deck has %d cards, want %d", len(deck), DeckSize)
	}

	seen := make(map[Card]bool)
	for _, c := range deck {
		if !c.Valid() {
			t.Errorf("invalid card in fresh deck: %+v", c)
		}
		if seen[c] {
			t.Errorf("duplicate card: %v", c)
		}
		seen[c] = true
	}
}

func TestShuffleIsPure(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	deck := NewDeck()
	before := make([]Card, len(deck))
	copy(before, deck)

	shuffled := Shuffle(deck, rng)

	for i := range deck {
		if deck[i] != before[i] {
			t.Fatal("Shuffle mutated its input")
		}
	}
	if len(shuffled) != DeckSize {
		t.Fatalf("shuffled deck has %d cards", len(shuffled))
	}

	// Same multiset of cards.
	seen := make(map[Card]bool)
	for _, c := range shuffled {
		seen[c] = true
	}
	if len(seen) != DeckSize {
		t.Error("shuffle lost or duplicated cards")
	}
}

func TestShuffleInvalidInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := Shuffle(nil, rng); len(got) != 0 {
		t.Errorf("Shuffle(nil) = %v, want empty", got)
	}
	if got := Shuffle([]Card{}, rng); len(got) != 0 {
		t.Errorf("Shuffle(empty) = %v, want empty", got)
	}
}

func TestParseCardRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want Card
	}{
		{"As", NewCard(Spades, Ace)},
		{"kh", NewCard(Hearts, King)},
		{"Td", NewCard(Diamonds, 10)},
		{"10d", NewCard(Diamonds, 10)},
		{"2c", NewCard(Clubs, 2)},
		{"Q♥", NewCard(Hearts, Queen)},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.in)
		if err != nil {
			t.Errorf("ParseCard(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCard(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "X", "1s", "Az", "15h"} {
		if _, err := ParseCard(bad); err == nil {
			t.Errorf("ParseCard(%q) should fail", bad)
		}
	}
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		in   string
		want []Card
	}{
		{"As Kd Qh", []Card{NewCard(Spades, Ace), NewCard(Diamonds, King), NewCard(Hearts, Queen)}},
		{"AsKdQh", []Card{NewCard(Spades, Ace), NewCard(Diamonds, King), NewCard(Hearts, Queen)}},
		{"10d9c8h", []Card{NewCard(Diamonds, 10), NewCard(Clubs, 9), NewCard(Hearts, 8)}},
		{"TsKd 2c", []Card{NewCard(Spades, 10), NewCard(Diamonds, King), NewCard(Clubs, 2)}},
		{"A♠K♦Q♥", []Card{NewCard(Spades, Ace), NewCard(Diamonds, King), NewCard(Hearts, Queen)}},
		{"", []Card{}},
	}
	for _, tt := range tests {
		got, err := ParseCards(tt.in)
		if err != nil {
			t.Errorf("ParseCards(%q): %v", tt.in, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseCards(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseCards(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
			}
		}
	}

	for _, bad := range []string{"AsKdQ", "1sKd", "AsXz", "As1"} {
		if _, err := ParseCards(bad); err == nil {
			t.Errorf("ParseCards(%q) should fail", bad)
		}
	}
}

func TestCardString(t *testing.T) {
	if got := NewCard(Spades, Ace).String(); got != "A♠" {
		t.Errorf("ace of spades renders as %q", got)
	}
	if got := NewCard(Hearts, 10).String(); got != "10♥" {
		t.Errorf("ten of hearts renders as %q", got)
	}
}
