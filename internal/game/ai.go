package game

import (
	"fmt"
	"math/rand"

	"github.com/cardroom/zhajinhua/poker"
)

// Difficulty tunes a bot's willingness to look, bluff, and challenge.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// String returns the string representation of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// ParseDifficulty parses a difficulty name, case sensitive to the wire form.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "Easy", "easy":
		return Easy, nil
	case "Medium", "medium":
		return Medium, nil
	case "Hard", "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}

// lookThreshold: a blind bot looks at its cards when the draw exceeds this.
// Easy bots peek half the time; Hard bots stay blind and lean on cheap
// blind pricing.
func (d Difficulty) lookThreshold() float64 {
	switch d {
	case Easy:
		return 0.5
	case Hard:
		return 0.9
	default:
		return 0.85
	}
}

// Score floors the policy keys off, tracking the evaluator's category bases.
const (
	callFloor  = 103000 // roughly a queen-high, the floor for playable high cards
	raiseFloor = 200000 // pair or better
)

// BotDecision is the turn policy's output: one action plus a compare target
// when the action is Compare.
type BotDecision struct {
	Action Action
	Target int
}

// DecideTurn converts a bot's hand strength into a legal action. It is a
// pure function of its inputs: evaluation result, whether the bot has
// looked, difficulty, one random draw source, and the live compare targets.
// Stronger hands bias toward Raise/Call, weak hands toward Fold; it need
// not be reproducible across versions, only directionally consistent.
func DecideTurn(result poker.HandResult, hasSeen bool, diff Difficulty, rng *rand.Rand, targets []int) BotDecision {
	draw := rng.Float64()

	if !hasSeen && draw > diff.lookThreshold() {
		return BotDecision{Action: Look, Target: NoTarget}
	}

	score := result.Score
	var action Action

	if diff == Easy {
		if score > callFloor {
			if draw > 0.4 {
				action = Call
			} else {
				action = Fold
			}
		} else {
			if draw > 0.6 {
				action = Call
			} else {
				action = Fold
			}
		}
	} else {
		switch {
		case score > raiseFloor:
			action = Raise
		case score > callFloor:
			if draw > 0.9 && len(targets) > 0 {
				action = Compare
			} else if draw > 0.4 {
				action = Call
			} else {
				action = Fold
			}
		default:
			// Occasional blind bluff keeps the table honest.
			if draw > 0.8 {
				action = Raise
			} else {
				action = Fold
			}
		}
	}

	if action == Compare {
		if len(targets) == 0 {
			return BotDecision{Action: Call, Target: NoTarget}
		}
		return BotDecision{Action: Compare, Target: targets[rng.Intn(len(targets))]}
	}
	return BotDecision{Action: action, Target: NoTarget}
}
