package game

import (
	"github.com/cardroom/zhajinhua/poker"
)

// Status is a player's state within the current hand.
type Status int

const (
	Waiting Status = iota
	Playing
	Folded
	Lost // eliminated, by comparison or by going broke
	Won
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case Waiting:
		return "Waiting"
	case Playing:
		return "Playing"
	case Folded:
		return "Folded"
	case Lost:
		return "Lost"
	case Won:
		return "Won"
	default:
		return "Unknown"
	}
}

// Player is one seat at the table. All fields are owned by the Table; chips
// and pot only ever move through its transitions.
type Player struct {
	ID               int
	Name             string
	IsBot            bool
	Chips            int
	Hand             []poker.Card
	Status           Status
	HasSeenCards     bool
	CurrentBetAmount int // last contribution in this betting round
	TotalInvested    int // cumulative contribution this hand
	ActionFeedback   string
}

// CostFactor is the action cost multiplier: a player who has looked at their
// cards pays double, a blind player pays the base unit.
func (p *Player) CostFactor() int {
	if p.HasSeenCards {
		return 2
	}
	return 1
}
