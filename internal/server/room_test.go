package server

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/zhajinhua/internal/game"
)

// Room tests drive the loop by hand: intents are enqueued by timers and
// helpers, drained with nextIntent and applied with handle. Nothing runs
// concurrently, so assertions on the table are race-free.

func testRoom(t *testing.T, clock quartz.Clock, autoDeal bool) *Room {
	t.Helper()
	cfg := RoomConfig{
		Name:       "main",
		Ante:       10,
		StartChips: 1000,
		Difficulty: "Medium",
		Bots:       []string{"Li Wei", "Fat Brother", "Auntie Zhang"},
		AutoDeal:   autoDeal,
	}
	rng := rand.New(rand.NewSource(99))
	room := NewRoom("main", cfg, clock, rng, testLogger(), nil)
	t.Cleanup(room.Stop)
	return room
}

func testConn(room *Room) *Connection {
	return NewConnection(nil, room, testLogger())
}

func nextIntent(t *testing.T, r *Room) intent {
	t.Helper()
	select {
	case in := <-r.intents:
		return in
	default:
		t.Fatal("expected a pending intent")
		return intent{}
	}
}

func recvMessage(t *testing.T, c *Connection) *Message {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	default:
		t.Fatal("expected a queued message")
		return nil
	}
}

func recvStateUpdate(t *testing.T, c *Connection) StateUpdateData {
	t.Helper()
	msg := recvMessage(t, c)
	require.Equal(t, MessageTypeStateUpdate, msg.Type)
	var data StateUpdateData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	return data
}

func TestRoomAttachSendsSnapshot(t *testing.T) {
	room := testRoom(t, quartz.NewMock(t), false)
	conn := testConn(room)

	room.handle(intent{kind: intentAttach, conn: conn})

	snap := recvStateUpdate(t, conn)
	assert.Equal(t, -1, snap.YourSeat, "unseated viewer observes")
	assert.Len(t, snap.Players, 3)
}

func TestRoomJoinTakesFirstBotSeat(t *testing.T) {
	room := testRoom(t, quartz.NewMock(t), false)
	conn := testConn(room)
	room.handle(intent{kind: intentAttach, conn: conn})
	_ = recvMessage(t, conn)

	room.handle(intent{kind: intentJoin, conn: conn, name: "Ada"})

	seat := room.table.Players[0]
	assert.False(t, seat.IsBot)
	assert.Equal(t, "Ada", seat.Name)
	assert.Equal(t, 0, room.conns[conn])

	snap := recvStateUpdate(t, conn)
	assert.Equal(t, 0, snap.YourSeat)

	// The first join kicks off the opening hand.
	assert.Equal(t, game.Betting, room.table.Phase)
	assert.Equal(t, 990, seat.Chips, "fresh stack minus the ante")
}

func TestRoomJoinWhenFull(t *testing.T) {
	room := testRoom(t, quartz.NewMock(t), false)
	for _, p := range room.table.Players {
		p.IsBot = false
	}
	conn := testConn(room)

	room.handle(intent{kind: intentJoin, conn: conn, name: "Ada"})

	msg := recvMessage(t, conn)
	require.Equal(t, MessageTypeError, msg.Type)
	var data ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "room_full", data.Code)
}

func TestRoomDetachRevertsSeatToBot(t *testing.T) {
	room := testRoom(t, quartz.NewMock(t), false)
	conn := testConn(room)
	room.handle(intent{kind: intentAttach, conn: conn})
	room.handle(intent{kind: intentJoin, conn: conn, name: "Ada"})

	room.handle(intent{kind: intentDetach, conn: conn})

	assert.True(t, room.table.Players[0].IsBot)
	_, attached := room.conns[conn]
	assert.False(t, attached)
}

func TestRoomRejectsActionOutOfTurn(t *testing.T) {
	room := testRoom(t, quartz.NewMock(t), false)
	conn := testConn(room)
	room.handle(intent{kind: intentAttach, conn: conn})
	room.handle(intent{kind: intentStart})
	_ = recvMessage(t, conn) // attach snapshot
	_ = recvMessage(t, conn) // deal snapshot

	notActor := (room.table.TurnIndex + 1) % len(room.table.Players)
	room.handle(intent{kind: intentAction, conn: conn, player: notActor, action: game.Call, target: game.NoTarget})

	msg := recvMessage(t, conn)
	require.Equal(t, MessageTypeError, msg.Type)
	var data ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "rejected", data.Code)
}

func TestRoomBotActsWhenTimerFires(t *testing.T) {
	mock := quartz.NewMock(t)
	room := testRoom(t, mock, false)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	room.handle(intent{kind: intentStart})
	require.Equal(t, game.Betting, room.table.Phase)
	require.NotNil(t, room.timer, "a bot is on the clock")

	actor := room.table.Players[room.table.TurnIndex]
	potBefore := room.table.Pot
	logsBefore := len(room.table.Logs)
	seenBefore := actor.HasSeenCards

	mock.Advance(botDelayMax).MustWait(ctx)
	in := nextIntent(t, room)
	require.Equal(t, intentBotFire, in.kind)
	room.handle(in)

	acted := room.table.Pot != potBefore ||
		len(room.table.Logs) != logsBefore ||
		actor.HasSeenCards != seenBefore ||
		actor.Status != game.Playing
	assert.True(t, acted, "bot turn must change the table")
}

func TestRoomStaleBotTimerIsDropped(t *testing.T) {
	mock := quartz.NewMock(t)
	room := testRoom(t, mock, false)

	room.handle(intent{kind: intentStart})
	staleGen := room.timerGen

	// A newer schedule supersedes the armed timer.
	room.scheduleBot()
	require.Greater(t, room.timerGen, staleGen)

	potBefore := room.table.Pot
	turnBefore := room.table.TurnIndex
	room.handle(intent{kind: intentBotFire, gen: staleGen})

	assert.Equal(t, potBefore, room.table.Pot)
	assert.Equal(t, turnBefore, room.table.TurnIndex)
}

func TestRoomAutoDealAfterShowdown(t *testing.T) {
	mock := quartz.NewMock(t)
	room := testRoom(t, mock, true)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	room.handle(intent{kind: intentStart})

	// Fold every bot but one; the survivor wins and ends the hand.
	for room.table.Phase == game.Betting {
		room.handle(intent{kind: intentAction, player: room.table.TurnIndex, action: game.Fold, target: game.NoTarget})
	}
	require.Equal(t, game.Showdown, room.table.Phase)
	require.NotNil(t, room.timer, "auto-deal timer armed")

	handBefore := room.table.DealerIndex
	mock.Advance(showdownPause).MustWait(ctx)
	in := nextIntent(t, room)
	require.Equal(t, intentDealFire, in.kind)
	room.handle(in)

	assert.Equal(t, game.Betting, room.table.Phase, "next hand dealt")
	assert.NotEqual(t, handBefore, room.table.DealerIndex, "button moved")
}

func TestRoomCommentLandsInLog(t *testing.T) {
	room := testRoom(t, quartz.NewMock(t), false)

	before := len(room.table.Logs)
	room.handle(intent{kind: intentComment, text: "What a fold!"})

	require.Len(t, room.table.Logs, before+1)
	assert.Equal(t, "What a fold!", room.table.Logs[before].Text)
}
