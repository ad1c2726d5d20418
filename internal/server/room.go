package server

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/zhajinhua/internal/game"
	"github.com/cardroom/zhajinhua/poker"
)

// Authority is the single-writer role over one table: it alone starts hands
// and applies actions. Everything else only sends intents and consumes
// snapshots.
type Authority interface {
	StartHand() error
	ApplyAction(playerID int, action game.Action, target int) error
}

// Bot turn pacing. The delay is uniform in [botDelayMin, botDelayMax).
const (
	botDelayMin = 1 * time.Second
	botDelayMax = 2500 * time.Millisecond
)

// showdownPause is how long an auto-dealing room lingers on the result
// before the next hand.
const showdownPause = 4 * time.Second

// intentKind discriminates the commands drained by the room loop.
type intentKind int

const (
	intentAttach intentKind = iota
	intentDetach
	intentJoin
	intentAction
	intentStart
	intentBotFire
	intentDealFire
	intentComment
)

// intent is one unit of work for the room loop. Every state transition
// flows through exactly one of these, so transitions are atomic and FIFO.
type intent struct {
	kind   intentKind
	conn   *Connection
	name   string
	player int
	action game.Action
	target int
	gen    int
	text   string
}

// Room owns the authoritative table for one room id. A single goroutine
// drains the intents channel; nothing else touches the table.
type Room struct {
	id          string
	table       *game.Table
	difficulty  game.Difficulty
	autoDeal    bool
	clock       quartz.Clock
	rng         *rand.Rand
	logger      *log.Logger
	commentator *Commentator

	intents chan intent
	ctx     context.Context
	cancel  context.CancelFunc

	// Everything below is owned by the run goroutine.
	conns    map[*Connection]int // connection -> seat id, -1 while unseated
	timer    *quartz.Timer
	timerGen int // invalidates timers scheduled for a superseded turn
}

// NewRoom creates a room from config. Call Start to begin processing.
func NewRoom(id string, cfg RoomConfig, clock quartz.Clock, rng *rand.Rand, logger *log.Logger, commentator *Commentator) *Room {
	difficulty, err := game.ParseDifficulty(cfg.Difficulty)
	if err != nil {
		difficulty = game.Medium
	}

	seats := make([]game.SeatConfig, 0, len(cfg.Bots))
	for _, name := range cfg.Bots {
		seats = append(seats, game.SeatConfig{Name: name, IsBot: true})
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Room{
		id:          id,
		table:       game.NewTable(rng, seats, game.WithAnte(cfg.Ante), game.WithStartChips(cfg.StartChips)),
		difficulty:  difficulty,
		autoDeal:    cfg.AutoDeal,
		clock:       clock,
		rng:         rng,
		logger:      logger.WithPrefix("room").With("room", id),
		commentator: commentator,
		intents:     make(chan intent, 64),
		ctx:         ctx,
		cancel:      cancel,
		conns:       make(map[*Connection]int),
	}
}

// ID returns the room id.
func (r *Room) ID() string { return r.id }

// Start launches the room loop.
func (r *Room) Start() {
	go r.run()
}

// Stop shuts the room down; pending timers are cancelled.
func (r *Room) Stop() {
	r.cancel()
}

// StartHand implements Authority by queueing a deal request.
func (r *Room) StartHand() error {
	return r.enqueue(intent{kind: intentStart})
}

// ApplyAction implements Authority by queueing an action intent.
func (r *Room) ApplyAction(playerID int, action game.Action, target int) error {
	return r.enqueue(intent{kind: intentAction, conn: nil, player: playerID, action: action, target: target})
}

// Attach registers a connection with the room.
func (r *Room) Attach(conn *Connection) {
	_ = r.enqueue(intent{kind: intentAttach, conn: conn})
}

// Detach removes a connection. Its seat, if any, reverts to a bot.
func (r *Room) Detach(conn *Connection) {
	_ = r.enqueue(intent{kind: intentDetach, conn: conn})
}

// Join requests a seat for the named player on the given connection.
func (r *Room) Join(conn *Connection, name string) {
	_ = r.enqueue(intent{kind: intentJoin, conn: conn, name: name})
}

// Action forwards a client action intent.
func (r *Room) Action(conn *Connection, playerID int, action game.Action, target int) {
	_ = r.enqueue(intent{kind: intentAction, conn: conn, player: playerID, action: action, target: target})
}

func (r *Room) enqueue(in intent) error {
	select {
	case r.intents <- in:
		return nil
	case <-r.ctx.Done():
		return r.ctx.Err()
	}
}

func (r *Room) run() {
	// Kick the first hand off in auto-deal rooms.
	if r.autoDeal {
		_ = r.enqueue(intent{kind: intentStart})
	}
	for {
		select {
		case in := <-r.intents:
			r.handle(in)
		case <-r.ctx.Done():
			r.stopTimer()
			return
		}
	}
}

// handle applies one intent. Runs only on the room loop goroutine.
func (r *Room) handle(in intent) {
	switch in.kind {
	case intentAttach:
		r.conns[in.conn] = -1
		r.sendSnapshot(in.conn)

	case intentDetach:
		seat, ok := r.conns[in.conn]
		if !ok {
			return
		}
		delete(r.conns, in.conn)
		if seat >= 0 {
			if p := r.table.Player(seat); p != nil {
				p.IsBot = true
				r.logger.Info("Seat reverted to bot", "seat", seat, "name", p.Name)
			}
			r.broadcast()
			// The departed human may have been on the clock.
			r.scheduleBot()
		}

	case intentJoin:
		r.handleJoin(in.conn, in.name)

	case intentAction:
		r.handleAction(in)

	case intentStart:
		r.handleStart()

	case intentBotFire:
		r.handleBotFire(in.gen)

	case intentDealFire:
		if in.gen == r.timerGen {
			r.handleStart()
		}

	case intentComment:
		if in.text != "" {
			r.table.AddLogLine(in.text, "info")
			r.broadcast()
		}
	}
}

// handleJoin seats the requester at the first bot seat and rebroadcasts.
// A full table (no bot seats) drops the request with an error reply.
func (r *Room) handleJoin(conn *Connection, name string) {
	if conn == nil {
		return
	}
	if _, ok := r.conns[conn]; !ok {
		r.conns[conn] = -1
	}

	for _, p := range r.table.Players {
		if !p.IsBot {
			continue
		}
		p.IsBot = false
		p.Name = name
		p.Chips = r.table.StartChips()
		r.conns[conn] = p.ID
		r.logger.Info("Player joined", "name", name, "seat", p.ID)
		r.table.AddLogLine(name+" joined!", "info")
		r.broadcast()
		// The first seated player gets the table moving.
		if r.table.Phase == game.Idle && r.table.CanStart() {
			r.handleStart()
		}
		return
	}

	r.sendError(conn, "room_full", "no free seat in this room")
}

func (r *Room) handleAction(in intent) {
	err := r.table.Apply(in.player, in.action, in.target)
	if err != nil {
		r.logger.Warn("Rejected action", "player", in.player, "action", in.action, "error", err)
		if in.conn != nil {
			r.sendError(in.conn, "rejected", err.Error())
		}
		return
	}

	r.afterTransition(in.player, in.action)
}

func (r *Room) handleStart() {
	if err := r.table.StartHand(); err != nil {
		r.logger.Warn("Cannot start hand", "error", err)
		return
	}
	r.logger.Info("Hand started", "pot", r.table.Pot, "dealer", r.table.DealerIndex)
	r.broadcast()
	r.scheduleBot()
}

// afterTransition broadcasts the new state, schedules the next bot turn or
// the next hand, and fires commentary.
func (r *Room) afterTransition(actorID int, action game.Action) {
	r.broadcast()
	r.requestCommentary(actorID, action)

	if r.table.Phase == game.Showdown {
		r.stopTimer()
		if r.autoDeal {
			r.timerGen++
			gen := r.timerGen
			r.timer = r.clock.AfterFunc(showdownPause, func() {
				_ = r.enqueue(intent{kind: intentDealFire, gen: gen})
			})
		}
		return
	}
	r.scheduleBot()
}

// scheduleBot arms the AI turn timer when a bot is on the clock. Any
// previously armed timer is superseded; a stale fire is dropped by the
// generation check.
func (r *Room) scheduleBot() {
	r.stopTimer()
	if r.table.Phase != game.Betting {
		return
	}
	actor := r.table.Players[r.table.TurnIndex]
	if !actor.IsBot || actor.Status != game.Playing {
		return
	}

	r.timerGen++
	gen := r.timerGen
	delay := botDelayMin + time.Duration(r.rng.Int63n(int64(botDelayMax-botDelayMin)))
	r.timer = r.clock.AfterFunc(delay, func() {
		_ = r.enqueue(intent{kind: intentBotFire, gen: gen})
	})
}

// handleBotFire runs one bot decision. The generation guard rejects fires
// scheduled for a turn that has since moved on.
func (r *Room) handleBotFire(gen int) {
	if gen != r.timerGen || r.table.Phase != game.Betting {
		return
	}
	actor := r.table.Players[r.table.TurnIndex]
	if !actor.IsBot || actor.Status != game.Playing {
		return
	}

	decision := game.DecideTurn(
		poker.Evaluate(actor.Hand),
		actor.HasSeenCards,
		r.difficulty,
		r.rng,
		r.table.LiveOpponents(actor.ID),
	)

	if err := r.table.Apply(actor.ID, decision.Action, decision.Target); err != nil {
		// The fallback keeps the hand moving if the policy picked an
		// impossible move.
		r.logger.Error("Bot action failed, folding", "seat", actor.ID, "error", err)
		if err := r.table.Apply(actor.ID, game.Fold, game.NoTarget); err != nil {
			r.logger.Error("Bot fold failed", "seat", actor.ID, "error", err)
			return
		}
		r.afterTransition(actor.ID, game.Fold)
		return
	}

	if decision.Action == game.Look {
		// Looking keeps the turn; decide again after another pause.
		r.broadcast()
		r.scheduleBot()
		return
	}
	r.afterTransition(actor.ID, decision.Action)
}

func (r *Room) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// broadcast sends every attached connection its own redacted snapshot.
func (r *Room) broadcast() {
	for conn, seat := range r.conns {
		snapshot := Snapshot(r.id, r.table, seat)
		msg, err := NewMessage(MessageTypeStateUpdate, snapshot)
		if err != nil {
			r.logger.Error("Failed to build snapshot", "error", err)
			return
		}
		if err := conn.SendMessage(msg); err != nil {
			r.logger.Error("Failed to send snapshot", "seat", seat, "error", err)
		}
	}
}

func (r *Room) sendSnapshot(conn *Connection) {
	seat := r.conns[conn]
	msg, err := NewMessage(MessageTypeStateUpdate, Snapshot(r.id, r.table, seat))
	if err != nil {
		return
	}
	_ = conn.SendMessage(msg)
}

func (r *Room) sendError(conn *Connection, code, text string) {
	msg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: text})
	if err != nil {
		return
	}
	_ = conn.SendMessage(msg)
}

// requestCommentary asks the external text service for a quip, off the room
// loop. Failures produce nothing; the game never waits on it.
func (r *Room) requestCommentary(actorID int, action game.Action) {
	if r.commentator == nil {
		return
	}

	summary := SummarizeForCommentary(r.table, actorID, action)
	go func() {
		text := r.commentator.Generate(r.ctx, summary)
		if text == "" {
			return
		}
		_ = r.enqueue(intent{kind: intentComment, text: text})
	}()
}
