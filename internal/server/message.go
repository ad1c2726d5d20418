package server

import (
	"encoding/json"
	"time"

	"github.com/cardroom/zhajinhua/internal/game"
)

// MessageType identifies a replication message. The set matches the wire
// contract the browser clients speak.
type MessageType string

const (
	// Client -> host
	MessageTypeJoinRequest MessageType = "JOIN_REQUEST"
	MessageTypeAction      MessageType = "ACTION"

	// Host -> clients
	MessageTypeStateUpdate MessageType = "STATE_UPDATE"
	MessageTypeError       MessageType = "ERROR"
)

// String returns the string representation of the message type.
func (mt MessageType) String() string {
	return string(mt)
}

// Message is the envelope every replication message travels in.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Decode unmarshals the payload into v.
func (m *Message) Decode(v interface{}) error {
	return json.Unmarshal(m.Data, v)
}

// Client -> host payloads

// JoinRequestData asks the host for a seat. The host reassigns the first
// available bot seat to the requester.
type JoinRequestData struct {
	Name string `json:"name"`
}

// ActionData is a betting intent. Target is only set for Compare.
type ActionData struct {
	PlayerID int    `json:"playerId"`
	Action   string `json:"action"`
	Target   *int   `json:"payload,omitempty"`
}

// Host -> client payloads

// PlayerSnapshot is one seat in a state snapshot. Hand is empty unless the
// viewer is entitled to see it.
type PlayerSnapshot struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	IsBot            bool     `json:"isBot"`
	Chips            int      `json:"chips"`
	HandSize         int      `json:"handSize"`
	Hand             []string `json:"hand,omitempty"`
	Status           string   `json:"status"`
	HasSeenCards     bool     `json:"hasSeenCards"`
	CurrentBetAmount int      `json:"currentBetAmount"`
	TotalInvested    int      `json:"totalInvested"`
	ActionFeedback   string   `json:"actionFeedback,omitempty"`
}

// StateUpdateData is a full snapshot of the room. Receivers replace their
// local view wholesale; they never merge.
type StateUpdateData struct {
	RoomID      string           `json:"roomId"`
	Players     []PlayerSnapshot `json:"players"`
	Pot         int              `json:"pot"`
	BetUnit     int              `json:"currentBetUnit"`
	DealerIndex int              `json:"dealerIndex"`
	TurnIndex   int              `json:"turnIndex"`
	Phase       string           `json:"gamePhase"`
	Logs        []game.LogEntry  `json:"logs"`
	Revealed    []string         `json:"revealedCards,omitempty"`
	YourSeat    int              `json:"yourSeat"`
}

// ErrorData reports a rejected intent or protocol problem.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Snapshot builds a redacted snapshot of the table for one viewer seat.
// A seat's cards are included when the viewer owns them, when the hand has
// been revealed through a compare, or at showdown for the winner's reveal.
// Pass seat -1 for an observer who sees only public information.
func Snapshot(roomID string, t *game.Table, viewerSeat int) StateUpdateData {
	revealed := make(map[string]bool, len(t.Revealed))
	revealedLabels := make([]string, 0, len(t.Revealed))
	for _, c := range t.Revealed {
		revealed[c.String()] = true
		revealedLabels = append(revealedLabels, c.String())
	}

	players := make([]PlayerSnapshot, 0, len(t.Players))
	for _, p := range t.Players {
		snap := PlayerSnapshot{
			ID:               p.ID,
			Name:             p.Name,
			IsBot:            p.IsBot,
			Chips:            p.Chips,
			HandSize:         len(p.Hand),
			Status:           p.Status.String(),
			HasSeenCards:     p.HasSeenCards,
			CurrentBetAmount: p.CurrentBetAmount,
			TotalInvested:    p.TotalInvested,
			ActionFeedback:   p.ActionFeedback,
		}

		// A blind seat does not see its own cards either; looking is what
		// buys the information and doubles the cost factor.
		visible := (p.ID == viewerSeat && p.HasSeenCards) ||
			(t.Phase == game.Showdown && p.Status == game.Won)
		if !visible && len(p.Hand) == 3 {
			// A hand exposed by a compare is public for everyone.
			visible = true
			for _, c := range p.Hand {
				if !revealed[c.String()] {
					visible = false
					break
				}
			}
		}
		if visible {
			for _, c := range p.Hand {
				snap.Hand = append(snap.Hand, c.String())
			}
		}
		players = append(players, snap)
	}

	return StateUpdateData{
		RoomID:      roomID,
		Players:     players,
		Pot:         t.Pot,
		BetUnit:     t.BetUnit,
		DealerIndex: t.DealerIndex,
		TurnIndex:   t.TurnIndex,
		Phase:       t.Phase.String(),
		Logs:        append([]game.LogEntry(nil), t.Logs...),
		Revealed:    revealedLabels,
		YourSeat:    viewerSeat,
	}
}
