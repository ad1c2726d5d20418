package main

import (
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cardroom/zhajinhua/poker"
)

var (
	// Style definitions
	oddsHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	oddsHandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	oddsWinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	oddsCategoryStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("12"))
)

// OddsCmd estimates win probability for one or more hands.
type OddsCmd struct {
	Hands      []string `kong:"arg,required,help='Hands like AsKdQh (one argument per hand)'"`
	Opponents  int      `kong:"short='o',default='1',help='Number of unseen opponents'"`
	Iterations int      `kong:"short='i',default='10000',help='Number of simulated deals'"`
	Seed       *int64   `kong:"help='Random seed for reproducible results'"`
}

func (c *OddsCmd) Run() error {
	if c.Opponents < 1 {
		return fmt.Errorf("need at least one opponent")
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	hands, err := parseHands(c.Hands)
	if err != nil {
		return err
	}
	if err := validateNoDuplicates(hands); err != nil {
		return err
	}

	var excluded []poker.Card
	for _, hand := range hands {
		excluded = append(excluded, hand...)
	}

	start := time.Now()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		oddsHeaderStyle.Render("hand"),
		oddsHeaderStyle.Render("category"),
		oddsHeaderStyle.Render("win"))

	for _, hand := range hands {
		result := poker.Evaluate(hand)
		winRate := poker.WinProbability(hand, c.Opponents, excluded, c.Iterations, rng)

		fmt.Fprintf(w, "%s\t%s\t%s\n",
			oddsHandStyle.Render(poker.FormatCards(hand)),
			oddsCategoryStyle.Render(result.Name),
			oddsWinStyle.Render(fmt.Sprintf("%.1f%%", winRate*100)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d opponents, %d iterations in %v\n",
		c.Opponents, c.Iterations, time.Since(start).Truncate(time.Millisecond))
	return nil
}

func parseHands(handStrings []string) ([][]poker.Card, error) {
	var hands [][]poker.Card
	for i, handStr := range handStrings {
		hand, err := poker.ParseCards(handStr)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hand) != 3 {
			return nil, fmt.Errorf("hand %d: must contain exactly 3 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func validateNoDuplicates(hands [][]poker.Card) error {
	seen := make(map[string]bool)
	for i, hand := range hands {
		for _, card := range hand {
			key := card.String()
			if seen[key] {
				return fmt.Errorf("duplicate card in hand %d: %s", i+1, card)
			}
			seen[key] = true
		}
	}
	return nil
}
