package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cardroom/zhajinhua/internal/client"
	"github.com/cardroom/zhajinhua/internal/game"
	"github.com/cardroom/zhajinhua/internal/server"
	"github.com/cardroom/zhajinhua/poker"
)

// PlayCmd runs a single local table against bots.
type PlayCmd struct {
	Bots       int    `kong:"default='3',help='Number of bot opponents (1-3)'"`
	Difficulty string `kong:"default='Medium',help='Bot difficulty: Easy, Medium or Hard'"`
	Ante       int    `kong:"default='10',help='Ante per hand'"`
	Chips      int    `kong:"default='1000',help='Starting chips'"`
	Seed       *int64 `kong:"help='Random seed for reproducible games'"`
}

var botLineup = []string{"Li Wei", "Fat Brother", "Auntie Zhang"}

func (c *PlayCmd) Run() error {
	if c.Bots < 1 || c.Bots > 3 {
		return fmt.Errorf("bots must be between 1 and 3")
	}
	difficulty, err := game.ParseDifficulty(c.Difficulty)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	seats := []game.SeatConfig{{Name: "You"}}
	for i := 0; i < c.Bots; i++ {
		seats = append(seats, game.SeatConfig{Name: botLineup[i], IsBot: true})
	}

	table := game.NewTable(rng, seats,
		game.WithAnte(c.Ante),
		game.WithStartChips(c.Chips))

	fmt.Println(client.Title())
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		if err := table.StartHand(); err != nil {
			fmt.Println("Game over:", err)
			return nil
		}

		if err := runHand(table, difficulty, rng, reader); err != nil {
			return err
		}

		fmt.Print("\nPlay another hand? (y/n) ")
		line, err := reader.ReadString('\n')
		if err != nil || !strings.HasPrefix(strings.TrimSpace(strings.ToLower(line)), "y") {
			return nil
		}
	}
}

func runHand(table *game.Table, difficulty game.Difficulty, rng *rand.Rand, reader *bufio.Reader) error {
	for table.Phase == game.Betting {
		render(table)

		actor := table.Players[table.TurnIndex]
		if actor.IsBot {
			decision := game.DecideTurn(
				poker.Evaluate(actor.Hand),
				actor.HasSeenCards,
				difficulty,
				rng,
				table.LiveOpponents(actor.ID),
			)
			if err := table.Apply(actor.ID, decision.Action, decision.Target); err != nil {
				// Impossible moves become folds so the hand can finish.
				if err := table.Apply(actor.ID, game.Fold, game.NoTarget); err != nil {
					return err
				}
			}
			continue
		}

		quit, err := promptHuman(table, actor, rng, reader)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}

	render(table)
	if winner := table.Winner(); winner != nil {
		fmt.Printf("\n%s wins the hand with %s!\n", winner.Name, poker.Evaluate(winner.Hand).Name)
	}
	return nil
}

// promptHuman reads one command and applies it. It loops until the table
// accepts an action or the player quits.
func promptHuman(table *game.Table, actor *game.Player, rng *rand.Rand, reader *bufio.Reader) (bool, error) {
	for {
		fmt.Print("\n[l]ook [c]all [r]aise [f]old [v]s <seat> [a]dvice [q]uit > ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return true, nil
		}
		fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
		if len(fields) == 0 {
			continue
		}

		var action game.Action
		target := game.NoTarget
		switch fields[0] {
		case "l", "look":
			action = game.Look
		case "c", "call":
			action = game.Call
		case "r", "raise":
			action = game.Raise
		case "f", "fold":
			action = game.Fold
		case "v", "vs", "compare":
			if len(fields) < 2 {
				fmt.Println("compare needs a seat number, e.g. 'vs 2'")
				continue
			}
			seat, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("bad seat number:", fields[1])
				continue
			}
			action = game.Compare
			target = seat
		case "a", "advice":
			printAdvice(table, actor, rng)
			continue
		case "q", "quit":
			return true, nil
		default:
			fmt.Println("unknown command:", fields[0])
			continue
		}

		if err := table.Apply(actor.ID, action, target); err != nil {
			fmt.Println("can't do that:", err)
			continue
		}
		return false, nil
	}
}

func printAdvice(table *game.Table, actor *game.Player, rng *rand.Rand) {
	analysis := game.Advise(table, actor.ID, rng)
	if analysis == nil {
		fmt.Println("look at your cards first")
		return
	}
	fmt.Printf("%s  win %.0f%%  advice: %s\n",
		analysis.HandName,
		analysis.WinRate*100,
		analysis.Advice)
}

func render(table *game.Table) {
	fmt.Println()
	fmt.Println(client.RenderView(server.Snapshot("local", table, 0)))
}
