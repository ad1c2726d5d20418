package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardroom/zhajinhua/internal/game"
	"github.com/cardroom/zhajinhua/internal/server"
)

func testView() server.StateUpdateData {
	return server.StateUpdateData{
		RoomID:  "main",
		Pot:     40,
		BetUnit: 10,
		Phase:   "Betting",
		Players: []server.PlayerSnapshot{
			{ID: 0, Name: "You", Chips: 990, HandSize: 3, Hand: []string{"A♠", "K♠", "Q♠"}, Status: "Playing", HasSeenCards: true},
			{ID: 1, Name: "Li Wei", IsBot: true, Chips: 990, HandSize: 3, Status: "Playing"},
			{ID: 2, Name: "Old Wang", IsBot: true, Chips: 990, Status: "Folded"},
		},
		TurnIndex:   1,
		DealerIndex: 0,
		YourSeat:    0,
	}
}

func TestRenderViewShowsOwnHandOnly(t *testing.T) {
	out := RenderView(testView())

	assert.Contains(t, out, "A♠")
	assert.Contains(t, out, "You (you)")
	assert.Contains(t, out, "Li Wei")
	assert.Contains(t, out, "🂠", "hidden hands render as card backs")
	assert.Contains(t, out, "folded")
}

func TestRenderViewBlindSeatSeesCardBacks(t *testing.T) {
	view := testView()
	// Before looking, the host redacts even the viewer's own hand.
	view.Players[0].Hand = nil
	view.Players[0].HasSeenCards = false

	out := RenderView(view)
	assert.NotContains(t, out, "A♠", "blind seat must not see its own cards")
	assert.Contains(t, out, "🂠", "own hand renders as backs until looked at")
	assert.Contains(t, out, "blind")
}

func TestRenderViewMarksActor(t *testing.T) {
	view := testView()
	out := RenderView(view)
	assert.Contains(t, out, "▶")
}

func TestRenderViewIncludesLogs(t *testing.T) {
	view := testView()
	view.Logs = append(view.Logs, game.LogEntry{Text: "Dealing complete."})
	out := RenderView(view)
	assert.Contains(t, out, "Dealing complete.")
}
