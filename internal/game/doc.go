// Package game implements the core Zha Jin Hua round logic.
//
// The main type is Table, which owns the authoritative state of one room for
// its whole lifetime: seats, chips, pot, bet unit, dealer and turn pointers,
// and the current phase. Hands are a sub-lifecycle: StartHand resets the
// per-hand fields, deals, and collects antes; Apply processes one betting
// action at a time and settles the pot the moment a single live seat remains.
//
// # Basic Usage
//
//	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
//	t := game.NewTable(rng, []game.SeatConfig{
//	    {Name: "Alice"},
//	    {Name: "Li Wei", IsBot: true},
//	})
//	if err := t.StartHand(); err != nil { ... }
//	err := t.Apply(0, game.Call, game.NoTarget)
//
// For deterministic testing pass a fixed-seed RNG; the package draws
// randomness from nowhere else.
//
// # Architecture
//
// Table delegates scoring to the poker package and stays transport-free: it
// never logs, sleeps, or talks to a network. A single owner (the server's
// Room, or the local play loop) applies actions sequentially; the package
// does no locking of its own.
package game
