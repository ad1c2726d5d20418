package game

import (
	"errors"
	"fmt"

	"github.com/cardroom/zhajinhua/poker"
)

// Action is one of the betting-phase moves.
type Action int

const (
	Look Action = iota
	Fold
	Call
	Raise
	Compare
)

// NoTarget is passed for actions that take no target seat.
const NoTarget = -1

// String returns the wire name of the action.
func (a Action) String() string {
	switch a {
	case Look:
		return "Look"
	case Fold:
		return "Fold"
	case Call:
		return "Call"
	case Raise:
		return "Raise"
	case Compare:
		return "Compare"
	default:
		return "Unknown"
	}
}

// ParseAction parses a wire action name.
func ParseAction(s string) (Action, error) {
	switch s {
	case "Look":
		return Look, nil
	case "Fold":
		return Fold, nil
	case "Call":
		return Call, nil
	case "Raise":
		return Raise, nil
	case "Compare":
		return Compare, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

var (
	ErrBadPhase     = errors.New("wrong phase")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrNotPlaying   = errors.New("player is not live")
	ErrNoTarget     = errors.New("compare needs a live target")
	ErrCorruptState = errors.New("no live seat found within skip bound")
)

// Apply processes one betting action for the seat with the given id. Only
// the seat at the turn pointer, while Playing, may act; everything else is
// rejected without state change. target is a seat id for Compare and
// NoTarget otherwise.
func (t *Table) Apply(playerID int, action Action, target int) error {
	if t.Phase != Betting {
		return fmt.Errorf("%w: %s during %s", ErrBadPhase, action, t.Phase)
	}

	p := t.Player(playerID)
	if p == nil {
		return fmt.Errorf("no seat with id %d", playerID)
	}
	if t.Players[t.TurnIndex].ID != playerID {
		return fmt.Errorf("%w: seat %d acting on seat %d's turn", ErrNotYourTurn, playerID, t.Players[t.TurnIndex].ID)
	}
	if p.Status != Playing {
		return fmt.Errorf("%w: seat %d is %s", ErrNotPlaying, playerID, p.Status)
	}

	// Feedback badges describe the latest action only.
	for _, other := range t.Players {
		other.ActionFeedback = ""
	}

	unitCost := t.BetUnit * p.CostFactor()

	switch action {
	case Look:
		p.HasSeenCards = true
		p.ActionFeedback = "Look"
		t.addLog(fmt.Sprintf("%s checked cards.", p.Name), "action")
		// Looking does not consume the turn.
		return nil

	case Fold:
		p.Status = Folded
		p.ActionFeedback = "Fold"
		t.addLog(fmt.Sprintf("%s folds.", p.Name), "action")

	case Call:
		t.applyCall(p, unitCost)

	case Raise:
		// The unit doubles for everyone before affordability is checked.
		// A raiser who cannot cover the new cost downgrades to a call at
		// the stale pre-raise price, but the table keeps the doubled unit.
		t.BetUnit *= 2
		raiseCost := t.BetUnit * p.CostFactor()
		if p.Chips < raiseCost {
			if p.Chips < unitCost {
				p.Status = Lost
				p.ActionFeedback = "Broke"
				t.addLog(fmt.Sprintf("%s is broke!", p.Name), "action")
			} else {
				t.pay(p, unitCost)
				p.ActionFeedback = "Call"
				t.addLog(fmt.Sprintf("%s calls %d (couldn't raise).", p.Name, unitCost), "action")
			}
		} else {
			t.pay(p, raiseCost)
			p.ActionFeedback = "Raise"
			t.addLog(fmt.Sprintf("%s raises to %d!", p.Name, t.BetUnit), "action")
		}

	case Compare:
		if err := t.applyCompare(p, target, unitCost); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown action %d", action)
	}

	return t.finishAction()
}

// applyCall charges the call cost, or busts the player when they cannot
// cover it. Insufficient funds force elimination, never partial payment.
func (t *Table) applyCall(p *Player, cost int) {
	if p.Chips < cost {
		p.Status = Lost
		p.ActionFeedback = "Broke"
		t.addLog(fmt.Sprintf("%s is broke!", p.Name), "action")
		return
	}
	t.pay(p, cost)
	p.ActionFeedback = "Call"
	t.addLog(fmt.Sprintf("%s calls %d.", p.Name, cost), "action")
}

// applyCompare runs the PK sub-protocol: the initiator pays double the unit
// cost win or lose, both hands are revealed, and the strictly lower score
// is eliminated. A tie keeps the defender and eliminates the challenger.
func (t *Table) applyCompare(p *Player, targetID, unitCost int) error {
	if targetID == NoTarget {
		return ErrNoTarget
	}
	target := t.Player(targetID)
	if target == nil || target.ID == p.ID || target.Status != Playing {
		return fmt.Errorf("%w: seat %d", ErrNoTarget, targetID)
	}

	cost := unitCost * 2
	if p.Chips < cost {
		p.Status = Folded
		p.ActionFeedback = "Fold"
		t.addLog(fmt.Sprintf("%s folded.", p.Name), "action")
		return nil
	}
	t.pay(p, cost)

	t.Revealed = append(t.Revealed, p.Hand...)
	t.Revealed = append(t.Revealed, target.Hand...)

	if poker.CompareHands(p.Hand, target.Hand) {
		target.Status = Lost
		target.ActionFeedback = "Lost PK"
		p.ActionFeedback = "Won PK"
		t.addLog(fmt.Sprintf("%s defeats %s!", p.Name, target.Name), "action")
	} else {
		p.Status = Lost
		p.ActionFeedback = "Lost PK"
		target.ActionFeedback = "Won PK"
		t.addLog(fmt.Sprintf("%s lost to %s!", p.Name, target.Name), "action")
	}
	return nil
}

// pay moves chips into the pot and records the contribution.
func (t *Table) pay(p *Player, cost int) {
	p.Chips -= cost
	p.TotalInvested += cost
	p.CurrentBetAmount = cost
	t.Pot += cost
}

// finishAction settles the hand if one live seat remains, otherwise moves
// the turn pointer to the next Playing seat.
func (t *Table) finishAction() error {
	var last *Player
	live := 0
	for _, p := range t.Players {
		if p.Status == Playing {
			live++
			last = p
		}
	}
	if live == 1 {
		t.settleWin(last)
		return nil
	}
	if live == 0 {
		// Every seat died in the same step; the state machine has no
		// winner to pay, which should be unreachable.
		return ErrCorruptState
	}
	return t.advanceTurn()
}

// advanceTurn moves to the next Playing seat in rotation. The skip count is
// bounded; exceeding it means the live-seat invariant is broken.
func (t *Table) advanceTurn() error {
	n := len(t.Players)
	next := (t.TurnIndex + 1) % n
	for skips := 0; skips < n; skips++ {
		if t.Players[next].Status == Playing {
			t.TurnIndex = next
			return nil
		}
		next = (next + 1) % n
	}
	return ErrCorruptState
}

// settleWin awards the pot and ends the hand. The table stays in Showdown
// until the next StartHand.
func (t *Table) settleWin(winner *Player) {
	t.Phase = Showdown
	winner.Chips += t.Pot
	winner.Status = Won
	t.Pot = 0
	t.addLog(fmt.Sprintf("%s WINS!", winner.Name), "win")
}

// Winner returns the Won seat during Showdown, or nil.
func (t *Table) Winner() *Player {
	if t.Phase != Showdown {
		return nil
	}
	for _, p := range t.Players {
		if p.Status == Won {
			return p
		}
	}
	return nil
}
