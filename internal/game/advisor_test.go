package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdviseRequiresSeenLiveSeat(t *testing.T) {
	table := startedTable(t, 42)
	rng := rand.New(rand.NewSource(1))

	// Cards not yet seen.
	assert.Nil(t, Advise(table, 0, rng))

	table.Players[0].HasSeenCards = true
	table.Players[0].Status = Folded
	assert.Nil(t, Advise(table, 0, rng))

	// Unknown seat.
	assert.Nil(t, Advise(table, 99, rng))
}

func TestAdviseStrongHand(t *testing.T) {
	table := startedTable(t, 42)
	rng := rand.New(rand.NewSource(7))

	me := table.Players[0]
	me.HasSeenCards = true
	me.Hand = mustCards(t, "As Ah Ac")

	analysis := Advise(table, 0, rng)
	require.NotNil(t, analysis)
	assert.Equal(t, AdviseRaise, analysis.Advice)
	assert.Greater(t, analysis.WinRate, 0.7)
	assert.Greater(t, analysis.HandStrength, 0.9)
	assert.Equal(t, "Leopard (Bao Zi)", analysis.HandName)
}

func TestAdviseCountsRevealedCards(t *testing.T) {
	table := startedTable(t, 42)
	rng := rand.New(rand.NewSource(9))

	me := table.Players[0]
	me.HasSeenCards = true
	table.Revealed = mustCards(t, "2d 5d 9d Kd Kc 3s")

	analysis := Advise(table, 0, rng)
	require.NotNil(t, analysis)
	assert.Equal(t, 6, analysis.KnownCards)
}

func TestAdviseNoLiveOpponents(t *testing.T) {
	table := startedTable(t, 42)
	rng := rand.New(rand.NewSource(2))

	for _, p := range table.Players[1:] {
		p.Status = Folded
	}
	table.Players[0].HasSeenCards = true
	assert.Nil(t, Advise(table, 0, rng))
}
