package game

import (
	"fmt"
	"math/rand"

	"github.com/cardroom/zhajinhua/poker"
)

// Phase is the table's position in the round lifecycle.
type Phase int

const (
	Lobby Phase = iota
	Idle
	Dealing
	Betting
	Showdown
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case Lobby:
		return "Lobby"
	case Idle:
		return "Idle"
	case Dealing:
		return "Dealing"
	case Betting:
		return "Betting"
	case Showdown:
		return "Showdown"
	default:
		return "Unknown"
	}
}

// Default stakes, carried over from the game this engine started as.
const (
	DefaultAnte       = 10
	DefaultStartChips = 1000
)

// maxLogEntries bounds the table log; older entries are dropped.
const maxLogEntries = 5

// LogEntry is one line of the bounded table log.
type LogEntry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Kind string `json:"kind"` // info, action, win
}

// SeatConfig describes one seat when creating a table.
type SeatConfig struct {
	Name  string
	IsBot bool
}

// TableOption configures a Table during creation.
type TableOption func(*Table)

// WithAnte sets the mandatory per-hand starting contribution.
func WithAnte(ante int) TableOption {
	return func(t *Table) { t.ante = ante }
}

// WithStartChips sets every seat's starting stack.
func WithStartChips(chips int) TableOption {
	return func(t *Table) { t.startChips = chips }
}

// Table is the authoritative game state for one room. It is created once and
// mutated in place; chips carry over across hands.
type Table struct {
	Players     []*Player
	Pot         int
	BetUnit     int
	DealerIndex int
	TurnIndex   int
	Phase       Phase
	Logs        []LogEntry

	// Revealed holds every card exposed through a compare this hand; the
	// probability estimator excludes them from its sample space.
	Revealed []poker.Card

	ante       int
	startChips int
	rng        *rand.Rand
	logSeq     int
}

// NewTable creates a table with the given seats, all Waiting, phase Idle.
// The RNG is required so dealing is deterministic under test.
func NewTable(rng *rand.Rand, seats []SeatConfig, opts ...TableOption) *Table {
	if rng == nil {
		panic("rng is required for table creation")
	}

	t := &Table{
		Phase:      Idle,
		ante:       DefaultAnte,
		startChips: DefaultStartChips,
		rng:        rng,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.BetUnit = t.ante
	for i, seat := range seats {
		t.Players = append(t.Players, &Player{
			ID:     i,
			Name:   seat.Name,
			IsBot:  seat.IsBot,
			Chips:  t.startChips,
			Status: Waiting,
		})
	}
	return t
}

// Ante returns the table's ante.
func (t *Table) Ante() int { return t.ante }

// StartChips returns the configured starting stack.
func (t *Table) StartChips() int { return t.startChips }

// Player returns the seat with the given id, or nil.
func (t *Table) Player(id int) *Player {
	for _, p := range t.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayingCount returns the number of seats still live in this hand.
func (t *Table) PlayingCount() int {
	n := 0
	for _, p := range t.Players {
		if p.Status == Playing {
			n++
		}
	}
	return n
}

// LiveOpponents returns the ids of seats still Playing, excluding id.
func (t *Table) LiveOpponents(id int) []int {
	var out []int
	for _, p := range t.Players {
		if p.ID != id && p.Status == Playing {
			out = append(out, p.ID)
		}
	}
	return out
}

// CanStart reports whether a new hand could begin: at least two seats can
// cover the ante.
func (t *Table) CanStart() bool {
	n := 0
	for _, p := range t.Players {
		if p.Chips >= t.ante {
			n++
		}
	}
	return n >= 2
}

// StartHand runs the Idle -> Dealing -> Betting transition: per-hand reset,
// interleaved deal, ante collection, dealer and turn advancement.
func (t *Table) StartHand() error {
	if t.Phase != Idle && t.Phase != Showdown {
		return fmt.Errorf("%w: cannot deal during %s", ErrBadPhase, t.Phase)
	}

	playing := 0
	for _, p := range t.Players {
		p.Hand = nil
		p.HasSeenCards = false
		p.CurrentBetAmount = 0
		p.TotalInvested = 0
		p.ActionFeedback = ""
		if p.Chips >= t.ante {
			p.Status = Playing
			playing++
		} else {
			// Cannot cover the ante: sits this hand out as busted.
			p.Status = Lost
		}
	}
	if playing < 2 {
		return fmt.Errorf("%w: need two players who can cover the ante", ErrBadPhase)
	}

	t.Phase = Dealing
	t.Pot = 0
	t.Revealed = nil

	deck := poker.Shuffle(poker.NewDeck(), t.rng)
	next := len(deck)

	// One card per live seat per pass, starting left of the dealer. The
	// order matters for replay fidelity, not for evaluation.
	n := len(t.Players)
	for pass := 0; pass < 3; pass++ {
		for i := 0; i < n; i++ {
			p := t.Players[(t.DealerIndex+1+i)%n]
			if p.Status != Playing {
				continue
			}
			next--
			if next < 0 {
				panic("deck exhausted while dealing")
			}
			p.Hand = append(p.Hand, deck[next])
		}
	}

	for _, p := range t.Players {
		if p.Status != Playing {
			continue
		}
		p.Chips -= t.ante
		p.TotalInvested = t.ante
		p.CurrentBetAmount = t.ante
	}
	t.Pot = t.ante * playing
	t.BetUnit = t.ante

	t.DealerIndex = (t.DealerIndex + 1) % n
	t.TurnIndex = (t.DealerIndex + 1) % n
	if t.Players[t.TurnIndex].Status != Playing {
		if err := t.advanceTurn(); err != nil {
			return err
		}
	}

	t.Phase = Betting
	t.addLog("Dealing complete.", "info")
	return nil
}

// AddLogLine appends an external line (for example commentary) to the
// bounded log.
func (t *Table) AddLogLine(text, kind string) {
	t.addLog(text, kind)
}

func (t *Table) addLog(text, kind string) {
	t.logSeq++
	entry := LogEntry{
		ID:   fmt.Sprintf("log-%d", t.logSeq),
		Text: text,
		Kind: kind,
	}
	t.Logs = append(t.Logs, entry)
	if len(t.Logs) > maxLogEntries {
		t.Logs = t.Logs[len(t.Logs)-maxLogEntries:]
	}
}
