package game

import (
	"testing"

	"github.com/matryer/is"
)

func TestUnplayLastMove(t *testing.T) {
	is := is.New(t)
	g := NewLiveGame(false)
	is.True(!g.UnplayLastMove())

	var states []State
	for _, slot := range openingSlots {
		states = append(states, g.State)
		_, err := g.DropToken(slot)
		is.NoErr(err)
	}
	is.Equal(g.Turn(), len(openingSlots))
	is.Equal(g.Drops()[6], Drop{Player: 0, Slot: 4, Score: 4, Round: 0})

	// A rejected drop is not recorded.
	_, err := g.DropToken(8)
	is.True(err != nil)
	is.Equal(g.Turn(), len(openingSlots))

	for i := len(states) - 1; i >= 0; i-- {
		is.True(g.UnplayLastMove())
		is.Equal(g.State, states[i])
	}
	is.Equal(g.Turn(), 0)
}

func TestResetToFirstState(t *testing.T) {
	is := is.New(t)
	g := NewLiveGame(true)
	for _, slot := range openingSlots[:5] {
		_, err := g.DropToken(slot)
		is.NoErr(err)
	}
	g.ResetToFirstState()
	is.Equal(g.State, *NewGame(true))
	is.Equal(len(g.Drops()), 0)
}
