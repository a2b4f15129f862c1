package negamax

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/domino14/tumbledrop/fingerprint"
	"github.com/domino14/tumbledrop/game"
)

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    childNodes := orderMoves(childNodes)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
**/

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// evaluateDone is the result of a finished game for the player on turn:
// a win is +Inf and a loss -Inf, no matter the margin.
func evaluateDone(s *game.State) float64 {
	switch spread := s.Evaluation(); {
	case spread > 0:
		return posInf
	case spread < 0:
		return negInf
	}
	return 0
}

// evaluate is the static value of s for the player on turn.
func evaluate(s *game.State) float64 {
	if s.IsGameOver() {
		return evaluateDone(s)
	}
	return float64(s.Evaluation())
}

type searcher struct {
	table *Table
	// nodes counts visited positions; nil turns counting off.
	nodes *atomic.Uint64
}

// Predict searches s depth plies deep (depth 0 looks one drop ahead)
// within the window (alpha, beta) and returns the examined moves, best
// first. The table is read and updated; s is not modified.
func Predict(s *game.State, t *Table, depth int, alpha, beta float64) MoveList {
	sr := &searcher{table: t}
	var ml MoveList
	sr.predict(s, depth, alpha, beta, &ml)
	return ml
}

func (sr *searcher) predict(s *game.State, depth int, α, β float64, moves *MoveList) {
	if s.IsGameOver() {
		moves.setTerminal(evaluateDone(s))
		return
	}

	key := fingerprint.Compute(s)
	stored := sr.table.Lookup(key)
	if stored != nil && stored.Depth >= depth {
		best := stored.Moves.PrincipalValue()
		if best > stored.Alpha && best < stored.Beta {
			*moves = stored.Moves
			return
		} else if best >= stored.Beta {
			α = max(α, best)
		} else if best <= stored.Alpha {
			β = min(β, best)
		}
		// The stored list is reused on a cutoff even though it was only
		// a bound for its own window.
		if α >= β {
			*moves = stored.Moves
			return
		}
	}

	bestValue := negInf
	n := moves.fill(s)
	if stored != nil {
		sortByValues(moves.slots[:n], &stored.Moves.values)
	}

	examined := 0
	var child game.State
	for i := 0; i < n; i++ {
		slot := int(moves.slots[i])
		child.CopyFrom(s)
		if _, err := child.DropToken(slot); err != nil {
			panic(fmt.Sprintf("generated an illegal drop at slot %d: %v", slot, err))
		}
		if sr.nodes != nil {
			sr.nodes.Add(1)
		}

		var value float64
		if depth <= 0 {
			value = -evaluate(&child)
		} else {
			var childMoves MoveList
			sr.predict(&child, depth-1, -β, -max(α, bestValue), &childMoves)
			value = -childMoves.PrincipalValue()
		}
		moves.values[slot] = value
		examined++

		bestValue = max(bestValue, value)
		if bestValue >= β {
			break // beta cut-off
		}
	}

	sortByValues(moves.slots[:examined], &moves.values)
	moves.count = examined

	// Never replace a deeper result with a shallower one.
	if stored == nil || stored.Depth <= depth {
		if stored == nil {
			stored = sr.table.Store(key)
		}
		stored.Depth = depth
		stored.Alpha = α
		stored.Beta = β
		stored.Moves = *moves
	}
}
