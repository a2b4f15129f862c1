package game

// Drop is one played turn.
type Drop struct {
	Player int
	Slot   int
	Score  uint
	// Round the drop was played in.
	Round int
}

// Game is a live game that remembers every drop and can take them back.
// The search never uses Game; it works on bare State copies.
type Game struct {
	State

	stateStack []State
	drops      []Drop
}

// NewLiveGame starts a Game with the given rule option.
func NewLiveGame(lastRoundHalved bool) *Game {
	return &Game{State: *NewGame(lastRoundHalved)}
}

// NewLiveGameFrom starts a Game from an arbitrary position. Drops made
// before that position are not known.
func NewLiveGameFrom(s *State) *Game {
	return &Game{State: *s}
}

// DropToken plays slot for the player on turn and records it.
func (g *Game) DropToken(slot int) (uint, error) {
	before := g.State
	player, round := g.onturn, g.round
	score, err := g.State.DropToken(slot)
	if err != nil {
		return 0, err
	}
	g.stateStack = append(g.stateStack, before)
	g.drops = append(g.drops, Drop{Player: player, Slot: slot, Score: score, Round: round})
	return score, nil
}

// UnplayLastMove restores the state from before the last drop. It
// returns false if there is nothing to take back.
func (g *Game) UnplayLastMove() bool {
	n := len(g.stateStack)
	if n == 0 {
		return false
	}
	g.State = g.stateStack[n-1]
	g.stateStack = g.stateStack[:n-1]
	g.drops = g.drops[:n-1]
	return true
}

// ResetToFirstState unplays every recorded drop.
func (g *Game) ResetToFirstState() {
	if len(g.stateStack) == 0 {
		return
	}
	g.State = g.stateStack[0]
	g.stateStack = g.stateStack[:0]
	g.drops = g.drops[:0]
}

// Drops returns the recorded drops, oldest first.
func (g *Game) Drops() []Drop {
	return g.drops
}

// Turn is the number of recorded drops.
func (g *Game) Turn() int {
	return len(g.drops)
}
